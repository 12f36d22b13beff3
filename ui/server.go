package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"handchart/adapters/render"
	"handchart/domain/chart"
	"handchart/internal"
	"handchart/internal/config"
	"handchart/internal/session"
	"handchart/ports"
	"handchart/ui/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"golang.org/x/sync/semaphore"
)

//go:embed templates/*.html static
var embeddedFiles embed.FS

// Server is the HTTP front of the chart widget
type Server struct {
	router    *gin.Engine
	config    *config.Config
	sessions  *session.Manager
	logger    *internal.Logger
	templates *template.Template

	svg     ports.Renderer
	png     *render.PNGRenderer
	rasters *semaphore.Weighted
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config, sessions *session.Manager, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Server{
		router:   gin.Default(),
		config:   cfg,
		sessions: sessions,
		logger:   logger,
	}
}

// Initialize parses the page templates, builds the renderers and registers
// middleware and routes
func (s *Server) Initialize() error {
	funcMap := template.FuncMap{
		"chartTypes": func() []chart.ChartType { return chart.ChartTypes },
		"lower":      strings.ToLower,
		"markdown":   renderMarkdown,
	}

	templateFS, err := fs.Sub(embeddedFiles, "templates")
	if err != nil {
		return fmt.Errorf("failed to open template filesystem: %w", err)
	}
	s.templates, err = template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	log.Printf("[TemplateInit] Parsed templates: %s", s.templates.DefinedTemplates())

	style := render.DefaultStyle()
	s.svg = render.NewSVGRenderer(style)
	s.png, err = render.NewPNGRenderer(style)
	if err != nil {
		return fmt.Errorf("failed to initialize PNG renderer: %w", err)
	}
	s.rasters = semaphore.NewWeighted(s.config.Render.MaxConcurrentRasters)

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// renderMarkdown turns catalog descriptions into HTML. The text comes from
// the built-in sample catalog, never from requests.
func renderMarkdown(text string) template.HTML {
	return template.HTML(markdown.ToHTML([]byte(text), nil, nil))
}

// setupMiddleware configures static assets and the session cookie
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/api/samples", s.handleSamples)

	withSession := s.router.Group("/", middleware.EnsureSession(s.sessions, s.config.Session.TTL))
	withSession.GET("/", s.handleIndex)

	api := withSession.Group("/api")
	{
		api.GET("/state", s.handleState)

		api.POST("/datasets/upload", s.handleFileUpload)
		api.POST("/datasets/text", s.handleTextIngest)
		api.POST("/datasets/sample", s.handleLoadSample)
		api.POST("/datasets/manual", s.handleManualDataset)

		api.PATCH("/chart/config", s.handleUpdateConfig)
		api.POST("/theme/toggle", s.handleToggleTheme)
		api.POST("/controls/toggle", s.handleToggleControls)

		api.GET("/chart/geometry", s.handleGeometry)
		api.GET("/chart.svg", s.handleChartSVG)
		api.GET("/chart.png", s.handleChartPNG)
		api.GET("/dataset/summary", s.handleSummary)
	}
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting handchart on http://%s", addr)
	return s.router.Run(addr)
}

// Close releases renderer resources
func (s *Server) Close() error {
	if s.png != nil {
		return s.png.Close()
	}
	return nil
}
