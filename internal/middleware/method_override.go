package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideParam is the form or query field HTML forms use to send
// PUT and DELETE through a POST.
const MethodOverrideParam = "_method"

var overridable = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride rewrites POST requests carrying _method (query, form field or
// X-HTTP-Method-Override header) before routing. It wraps the whole engine
// because Gin picks the route before any middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := strings.ToUpper(overrideMethod(r)); overridable[m] {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	if m := r.URL.Query().Get(MethodOverrideParam); m != "" {
		return m
	}
	if m := r.Header.Get("X-HTTP-Method-Override"); m != "" {
		return m
	}
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		return r.PostFormValue(MethodOverrideParam)
	}
	return ""
}
