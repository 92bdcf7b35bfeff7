package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizzes/internal/repository"
	"github.com/stemsi/quizzes/internal/response"
	"github.com/stemsi/quizzes/internal/validator"
)

func newErrorRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("error").Parse(`{{.status}} {{.title}}: {{.message}}`)))
	r.Use(ErrorResponder(zerolog.Nop()))
	r.GET("/", handler)
	return r
}

func TestErrorResponder_Classification(t *testing.T) {
	tests := []struct {
		name   string
		attach func(c *gin.Context)
		status int
		code   response.ErrCode
	}{
		{
			name:   "not found",
			attach: func(c *gin.Context) { _ = c.Error(fmt.Errorf("quiz 9: %w", repository.ErrQuizNotFound)) },
			status: http.StatusNotFound,
			code:   response.ErrNotFound,
		},
		{
			name:   "bind",
			attach: func(c *gin.Context) { _ = c.Error(errors.New("bad body")).SetType(gin.ErrorTypeBind) },
			status: http.StatusBadRequest,
			code:   response.ErrInvalidPayload,
		},
		{
			name:   "internal",
			attach: func(c *gin.Context) { _ = c.Error(errors.New("db down")) },
			status: http.StatusInternalServerError,
			code:   response.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newErrorRouter(func(c *gin.Context) { tt.attach(c) })
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			var body response.Response
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error == nil || body.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", body.Error, tt.code)
			}
			if body.Metadata.View != response.ViewError {
				t.Errorf("view = %q", body.Metadata.View)
			}
		})
	}
}

func TestErrorResponder_BindFields(t *testing.T) {
	r := newErrorRouter(func(c *gin.Context) {
		err := &validator.PayloadError{
			Err:    errors.New("answer is required"),
			Fields: map[string]string{"answer": "answer is a required field"},
		}
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || body.Error.Code != response.ErrInvalidPayload {
		t.Fatalf("error = %+v", body.Error)
	}
	if got := body.Error.Fields["answer"]; got != "answer is a required field" {
		t.Errorf("fields = %v", body.Error.Fields)
	}
}

func TestErrorResponder_BindDetail(t *testing.T) {
	r := newErrorRouter(func(c *gin.Context) {
		_ = c.Error(errors.New("unexpected EOF")).SetType(gin.ErrorTypeBind)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || body.Error.Fields["detail"] != "unexpected EOF" {
		t.Errorf("error = %+v", body.Error)
	}
}

func TestErrorResponder_NoFieldsOutsideBind(t *testing.T) {
	r := newErrorRouter(func(c *gin.Context) { _ = c.Error(errors.New("db down")) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || len(body.Error.Fields) != 0 {
		t.Errorf("error = %+v", body.Error)
	}
}

func TestErrorResponder_HTML(t *testing.T) {
	r := newErrorRouter(func(c *gin.Context) { _ = c.Error(repository.ErrQuizNotFound) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "404 Not found") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestErrorResponder_KeepsWrittenResponse(t *testing.T) {
	r := newErrorRouter(func(c *gin.Context) {
		c.String(http.StatusOK, "done")
		_ = c.Error(errors.New("late failure"))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK || w.Body.String() != "done" {
		t.Errorf("got %d %q, want untouched response", w.Code, w.Body.String())
	}
}
