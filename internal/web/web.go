// Package web serves the browser form for requesting a recommendation.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFiles embed.FS

const indexTemplate = "index.html"

type fieldOptions struct {
	Name    string
	Label   string
	Options []string
}

type indexPage struct {
	Title    string
	Endpoint string
	Fields   []fieldOptions
}

var page = indexPage{
	Title:    "Project Methodology Advisor",
	Endpoint: "/get_recommendation",
	Fields: []fieldOptions{
		{Name: "size", Label: "Project size", Options: []string{"small", "medium", "large"}},
		{Name: "complexity", Label: "Complexity", Options: []string{"low", "medium", "high"}},
		{Name: "deadline", Label: "Deadline", Options: []string{"flexible", "strict", "no deadline"}},
		{Name: "team_experience", Label: "Team experience", Options: []string{"low", "medium", "high"}},
		{Name: "risk", Label: "Risk", Options: []string{"low", "medium", "high"}},
	},
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFiles, "templates/*.html")
}

// RegisterRoutes installs the templates on r and serves the form at GET /.
func RegisterRoutes(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, indexTemplate, page)
	})
	return nil
}
