package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// GraphiQLHandler serves the in-browser GraphQL IDE.
// The template is parsed once at construction and reused for every request.
type GraphiQLHandler struct {
	templates *template.Template
	endpoint  string
	logger    *slog.Logger
}

// NewGraphiQLHandler parses the embedded page. endpoint is the URL the page
// sends queries to, normally "/graphql".
func NewGraphiQLHandler(endpoint string, logger *slog.Logger) (*GraphiQLHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/graphiql.html")
	if err != nil {
		return nil, err
	}

	return &GraphiQLHandler{
		templates: tmpl,
		endpoint:  endpoint,
		logger:    logger,
	}, nil
}

func (h *GraphiQLHandler) HandleGraphiQL(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":    "Event Booking · GraphiQL",
		"Endpoint": h.endpoint,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.templates.ExecuteTemplate(w, "graphiql", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
