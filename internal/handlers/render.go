package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
)

//go:embed templates
var templatesFS embed.FS

// standalone pages render without the layout.
var standalone = map[string]bool{
	"login.html":  true,
	"signup.html": true,
}

// renderTemplate writes the named template. Pages are wrapped in layout.html;
// login/signup and the fragments/ templates render bare. Fragment files hold a
// single {{define}} block named after the file so pages can also include them.
func renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	content, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if standalone[name] {
		t := template.Must(template.New(name).Parse(string(content)))
		if err := t.Execute(w, data); err != nil {
			slog.Error("template execute", "template", name, "err", err)
		}
		return
	}

	if frag, ok := strings.CutPrefix(name, "fragments/"); ok {
		t := template.Must(template.New(name).Parse(string(content)))
		if err := t.ExecuteTemplate(w, strings.TrimSuffix(frag, ".html"), data); err != nil {
			slog.Error("template execute", "template", name, "err", err)
		}
		return
	}

	layout, _ := templatesFS.ReadFile("templates/layout.html")
	activity, _ := templatesFS.ReadFile("templates/fragments/activity.html")
	t := template.Must(template.New("layout").Parse(string(layout)))
	t = template.Must(t.Parse(string(activity)))
	t = template.Must(t.Parse(string(content)))
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("template execute", "template", name, "err", err)
	}
}

// renderError re-renders a form page with an error message and the given status.
func renderError(w http.ResponseWriter, name, message string, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	renderTemplate(w, name, map[string]interface{}{"Error": message})
}
