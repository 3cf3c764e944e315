package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"telemarketing/adapters/excel"
	"telemarketing/internal"
	"telemarketing/internal/dashboard"
	"telemarketing/internal/session"
	"telemarketing/ui/middleware"

	"github.com/gin-gonic/gin"
)

//go:embed templates/* static/* about.md
var embeddedFiles embed.FS

// Server represents the web server for the telemarketing dashboard
type Server struct {
	router    *gin.Engine
	service   *dashboard.Service
	sessions  *session.Store
	templates *template.Template
	about     template.HTML
	logger    *internal.Logger
}

// NewServer parses the embedded templates and wires routes around service
func NewServer(service *dashboard.Service, sessions *session.Store) (*Server, error) {
	templates, err := parseTemplates(embeddedFiles)
	if err != nil {
		return nil, err
	}
	about, err := renderMarkdown(embeddedFiles, "about.md")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.New(),
		service:   service,
		sessions:  sessions,
		templates: templates,
		about:     about,
		logger:    internal.DefaultLogger.With("Server"),
	}
	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Logger(), gin.Recovery())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	pages := s.router.Group("/", middleware.EnsureSession(s.sessions))
	pages.GET("/", s.handleIndex)
	pages.POST("/upload", s.handleUpload)
	pages.POST("/filters", s.handleFilters)
	pages.GET("/export.xlsx", s.handleExport)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// page is the data behind index.html
type page struct {
	*dashboard.View
	About      template.HTML
	Accept     string
	ExportPath string
}

func (s *Server) newPage(view *dashboard.View) page {
	return page{
		View:       view,
		About:      s.about,
		Accept:     strings.Join(excel.SupportedExtensions, ","),
		ExportPath: "/export.xlsx",
	}
}
