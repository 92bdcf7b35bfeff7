package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

func newCompressRouter(body string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Compress())
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
	})
	return r
}

func TestCompress_LargeBody(t *testing.T) {
	body := strings.Repeat("<p>Capital of France?</p>", 100)
	r := newCompressRouter(body)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Encoding"); got != "br" {
		t.Fatalf("Content-Encoding = %q, want br", got)
	}
	if got := w.Header().Get("Vary"); got != "Accept-Encoding" {
		t.Errorf("Vary = %q", got)
	}
	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(plain) != body {
		t.Errorf("round trip mismatch: %d bytes, want %d", len(plain), len(body))
	}
}

func TestCompress_SmallBody(t *testing.T) {
	r := newCompressRouter("short")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Encoding"); got != "" {
		t.Errorf("Content-Encoding = %q, want none", got)
	}
	if w.Body.String() != "short" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestCompress_NotAccepted(t *testing.T) {
	body := strings.Repeat("x", 4096)
	r := newCompressRouter(body)

	for _, ae := range []string{"", "gzip", "br;q=0"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", ae)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get("Content-Encoding"); got != "" {
			t.Errorf("Accept-Encoding %q: Content-Encoding = %q", ae, got)
		}
		if w.Body.Len() != len(body) {
			t.Errorf("Accept-Encoding %q: body length %d", ae, w.Body.Len())
		}
	}
}

func TestAcceptsBrotli(t *testing.T) {
	tests := map[string]bool{
		"br":                true,
		"gzip, deflate, br": true,
		"BR;q=0.5":          true,
		"br;q=0":            false,
		"gzip":              false,
		"brotli":            false,
		"":                  false,
	}
	for ae, want := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Encoding", ae)
		if got := acceptsBrotli(r); got != want {
			t.Errorf("acceptsBrotli(%q) = %v, want %v", ae, got, want)
		}
	}
}
