package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

var funcMap = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"num": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"upper": strings.ToUpper,
}

// parseTemplates parses every page template under templates/
func parseTemplates(files fs.FS) (*template.Template, error) {
	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no templates found")
	}

	templates := template.New("").Funcs(funcMap)
	for _, name := range names {
		content, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		if _, err := templates.New(strings.TrimPrefix(name, "templates/")).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
	}
	log.Printf("[TemplateInit] Parsed %d templates", len(names))
	return templates, nil
}

// renderMarkdown turns the sidebar help file into HTML. The file ships with
// the binary, so its output is trusted.
func renderMarkdown(files fs.FS, name string) (template.HTML, error) {
	content, err := fs.ReadFile(files, name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return template.HTML(markdown.ToHTML(content, nil, nil)), nil
}

// renderTemplate executes a template into a buffer first so a failing
// template never produces a half-written page.
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template %s failed: %v", templateName, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("writing %s response failed: %v", templateName, err)
	}
}
