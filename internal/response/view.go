package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stemsi/quizzes/internal/session"
)

// ViewError is the template rendered for every failed request.
const ViewError = "error"

// View is a named page and the data it displays. The same data is sent as the
// envelope's data field when the client asks for JSON.
type View struct {
	Name       string
	Data       gin.H
	Pagination *Pagination
}

// wantsJSON picks the representation from the Accept header. HTML wins ties
// and missing headers.
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) == binding.MIMEJSON
}

// saveSession flushes the session cookie; it has to happen before any body
// bytes are written.
func saveSession(c *gin.Context) {
	if err := session.Save(c); err != nil {
		_ = c.Error(fmt.Errorf("save session: %w", err))
	}
}

// Render drains pending notices into the page and writes it as HTML or JSON.
func Render(c *gin.Context, status int, v View) {
	notices := session.Notices(c)
	saveSession(c)

	if wantsJSON(c) {
		c.JSON(status, Response{
			Data:       v.Data,
			Pagination: v.Pagination,
			Notices:    notices,
			Metadata:   buildMetadata(c, v.Name),
		})
		return
	}

	data := make(gin.H, len(v.Data)+2)
	for k, val := range v.Data {
		data[k] = val
	}
	data["notices"] = notices
	data["pagination"] = Paginate(v.Pagination, c.Request.URL)
	c.HTML(status, v.Name, data)
}

// Redirect sends a 302 to location, keeping queued notices for the next page.
func Redirect(c *gin.Context, location string) {
	saveSession(c)
	c.Redirect(http.StatusFound, location)
}

// RenderError writes the error page, or the error envelope for JSON clients.
func RenderError(c *gin.Context, status int, code ErrCode) {
	RenderErrorWithFields(c, status, code, nil)
}

// RenderErrorWithFields is RenderError with per-field details, e.g. for a
// request body that could not be bound.
func RenderErrorWithFields(c *gin.Context, status int, code ErrCode, fields map[string]string) {
	notices := session.Notices(c)
	saveSession(c)

	if wantsJSON(c) {
		c.JSON(status, Response{
			Error:    &ErrorBody{Code: code, Message: GetMessage(code), Fields: fields},
			Notices:  notices,
			Metadata: buildMetadata(c, ViewError),
		})
		return
	}

	c.HTML(status, ViewError, gin.H{
		"status":     status,
		"title":      StatusMessage(code),
		"message":    GetMessage(code),
		"fields":     fields,
		"request_id": RequestID(c),
		"notices":    notices,
	})
}
