package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizzes/internal/logger"
	"github.com/stemsi/quizzes/internal/repository"
	"github.com/stemsi/quizzes/internal/response"
	"github.com/stemsi/quizzes/internal/validator"
)

// ErrorResponder logs errors handlers attached with c.Error and, unless the
// handler already answered, renders the matching error page.
func ErrorResponder(log zerolog.Logger) gin.HandlerFunc {
	log = logger.Component(log, "http")

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last()
		status, code := classify(last)

		evt := log.Error()
		if status < http.StatusInternalServerError {
			evt = log.Warn()
		}
		evt.Err(last.Err).
			Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("errors", len(c.Errors)).
			Msg("Request failed")

		if c.Writer.Written() {
			return
		}
		response.RenderErrorWithFields(c, status, code, fieldsOf(last))
	}
}

// fieldsOf returns per-field details for bind failures.
func fieldsOf(err *gin.Error) map[string]string {
	if !err.IsType(gin.ErrorTypeBind) {
		return nil
	}
	var pe *validator.PayloadError
	if errors.As(err.Err, &pe) {
		return pe.Fields
	}
	return validator.TranslateErrors(err.Err)
}

func classify(err *gin.Error) (int, response.ErrCode) {
	switch {
	case errors.Is(err.Err, repository.ErrQuizNotFound):
		return http.StatusNotFound, response.ErrNotFound
	case err.IsType(gin.ErrorTypeBind):
		return http.StatusBadRequest, response.ErrInvalidPayload
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}
