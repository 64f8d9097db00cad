// Package httpapi exposes the catalog and the generation pipeline over HTTP.
// Every generation gets a fresh project_<uuid> output root under the work
// directory, which the download and cleanup routes operate on.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paper-code/go-papercode/pkg/catalog"
	"github.com/paper-code/go-papercode/pkg/logger"
	"github.com/paper-code/go-papercode/pkg/model"
)

// ProjectDirPrefix prefixes every generated output root under the work dir.
const ProjectDirPrefix = "project_"

// Generator runs the pipeline. *orchestrator.Orchestrator satisfies it.
type Generator interface {
	Generate(ctx context.Context, cfg model.ProjectConfig, outputRoot string) (model.GeneratedProject, error)
	AIAvailable() bool
}

// Catalog is the read-only listing surface. *catalog.Catalog satisfies it.
type Catalog interface {
	ProjectTypes() []string
	TechStacks(projectType string) []string
	Libraries(techStack string) []string
	Snapshot() catalog.Snapshot
}

// Options configures the router.
type Options struct {
	WorkDir        string
	RequestTimeout time.Duration
	AllowedOrigins []string
	ServiceName    string
	Version        string
	Tracing        bool
	Metrics        bool
	MetricsPath    string
	// TemplateRoot is the only directory a request's template_dir may point
	// into. Empty disables request template overrides.
	TemplateRoot   string
}

// Server holds the gin engine and its collaborators.
type Server struct {
	gen     Generator
	catalog Catalog
	opts    Options
	logger  *slog.Logger
	spec    *openapi3.T
	engine  *gin.Engine
}

// New builds the router. A nil logger falls back to logger.Default.
func New(gen Generator, cat Catalog, opts Options, log *slog.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "papercode"
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	s := &Server{
		gen:     gen,
		catalog: cat,
		opts:    opts,
		logger:  log,
		spec:    Spec(opts.Version),
		engine:  gin.New(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupMiddleware() {
	s.engine.Use(Recovery(s.logger))
	s.engine.Use(RequestID())
	s.engine.Use(CORS(s.opts.AllowedOrigins))
	if s.opts.Tracing {
		s.engine.Use(Trace(s.opts.ServiceName))
		s.engine.Use(TraceContext())
	}
	if s.opts.Metrics {
		s.engine.Use(Metrics())
	}
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.health)
	if s.opts.Metrics {
		s.engine.GET(s.opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := s.engine.Group("/api")
	{
		api.GET("/config/project-types", s.projectTypes)
		api.GET("/config/tech-stacks/:project_type", s.techStacks)
		api.GET("/config/libraries/:tech_stack", s.libraries)
		api.GET("/config/full", s.fullConfig)

		api.POST("/generate", s.generate)
		api.GET("/download/:project_id", s.download)
		api.GET("/ai/status", s.aiStatus)
		api.DELETE("/cleanup", s.cleanup)

		api.GET("/openapi.json", s.openapi)
	}
}
