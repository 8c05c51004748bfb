package response

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

var errNilTemplate = errors.New("response: nil template")

// Template renders the named template of tmpl with data as HTML with 200 OK.
// An empty name executes tmpl itself.
func Template(tmpl *template.Template, name string, data any) handler.Response {
	return TemplateWithStatus(tmpl, name, data, 0)
}

// TemplateWithStatus is Template with a custom status code.
// Output is buffered so a failing template writes nothing and its error
// reaches the error handler.
func TemplateWithStatus(tmpl *template.Template, name string, data any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if tmpl == nil {
			return errNilTemplate
		}

		var buf bytes.Buffer
		var err error
		if name != "" {
			err = tmpl.ExecuteTemplate(&buf, name, data)
		} else {
			err = tmpl.Execute(&buf, data)
		}
		if err != nil {
			return err
		}

		return BytesWithStatus(buf.Bytes(), "text/html; charset=utf-8", status)(w, r)
	}
}
