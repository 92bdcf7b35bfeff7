package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type card struct {
	Question string `json:"question" validate:"notblank,max=20"`
	Answer   string `json:"answer" validate:"notblank"`
}

func TestStructAcceptsValidModel(t *testing.T) {
	if err := Struct(&card{Question: "Capital of Italy?", Answer: "Rome"}); err != nil {
		t.Fatalf("Struct() = %v, want nil", err)
	}
}

func TestStructReportsEveryBlankField(t *testing.T) {
	err := Struct(&card{Question: "   ", Answer: ""})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Struct() = %v, want *ValidationError", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("got %d field errors, want 2: %+v", len(ve.Fields), ve.Fields)
	}

	fields := ve.FieldMap()
	if fields["question"] != "question must not be blank" {
		t.Fatalf("question message = %q", fields["question"])
	}
	if fields["answer"] != "answer must not be blank" {
		t.Fatalf("answer message = %q", fields["answer"])
	}
	if ve.Fields[0].Value != "   " {
		t.Fatalf("rejected value = %q, want the submitted whitespace", ve.Fields[0].Value)
	}
}

func TestStructTranslatesBuiltinRules(t *testing.T) {
	err := Struct(&card{Question: strings.Repeat("x", 21), Answer: "a"})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Struct() = %v, want *ValidationError", err)
	}
	if ve.Fields[0].Tag != "max" {
		t.Fatalf("tag = %q, want max", ve.Fields[0].Tag)
	}
	if !strings.Contains(ve.Fields[0].Message, "maximum of 20 characters") {
		t.Fatalf("message = %q", ve.Fields[0].Message)
	}
	if !strings.Contains(ve.Fields[0].Notice(), `got "xxxx`) {
		t.Fatalf("notice = %q, want the rejected value", ve.Fields[0].Notice())
	}
}

func TestTranslateErrorsFallsBackToDetail(t *testing.T) {
	fields := TranslateErrors(errors.New("unexpected EOF"))
	if fields["detail"] != "unexpected EOF" {
		t.Fatalf("fields = %v", fields)
	}
}

type answerPayload struct {
	Answer string `json:"answer" binding:"required"`
}

func bindJSON(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst answerPayload
	return Bind(c, &dst)
}

func TestBindTranslatesFieldErrors(t *testing.T) {
	var pe *PayloadError
	if err := bindJSON(t, `{}`); !errors.As(err, &pe) {
		t.Fatalf("Bind() = %v, want *PayloadError", err)
	}
	if got := pe.Fields["answer"]; got != "answer is a required field" {
		t.Fatalf("fields = %v", pe.Fields)
	}
}

func TestBindReportsMalformedBody(t *testing.T) {
	var pe *PayloadError
	if err := bindJSON(t, `{"answer":`); !errors.As(err, &pe) {
		t.Fatalf("Bind() = %v, want *PayloadError", err)
	}
	if pe.Fields["detail"] == "" {
		t.Fatalf("fields = %v, want a detail entry", pe.Fields)
	}
}

func TestBindAcceptsValidBody(t *testing.T) {
	if err := bindJSON(t, `{"answer":"Rome"}`); err != nil {
		t.Fatalf("Bind() = %v, want nil", err)
	}
}
