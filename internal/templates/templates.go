// Package templates embeds the HTML views and static assets into the binary.
package templates

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed views
var views embed.FS

//go:embed static
var static embed.FS

// Load parses every view. Templates are addressed by their define names,
// e.g. "quizzes/index".
func Load() (*template.Template, error) {
	return template.New("").ParseFS(views, "views/*.tmpl", "views/quizzes/*.tmpl")
}

// Static serves the stylesheet and other assets under /static.
func Static() http.FileSystem {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
