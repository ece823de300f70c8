package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/tubefeed/pkg/config"
	"github.com/umputun/tubefeed/pkg/domain"
	"github.com/umputun/tubefeed/pkg/view"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/view.go -pkg mocks -skip-ensure -fmt goimports . View

//go:embed templates/*.html
var templatesFS embed.FS

// Server represents HTTP server instance
type Server struct {
	view    View
	events  *Broadcaster
	version string
	debug   bool

	cfgLock sync.RWMutex
	config  ConfigProvider

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	templates  *template.Template
}

// View is the widget view model driven by the handlers
type View interface {
	Snapshot() view.Snapshot
	Load(ctx context.Context, force, clearCache bool) error
	Dispatch(ev view.Event) view.Snapshot
	Find(link string) (domain.FeedItem, bool)
	Items() []domain.FeedItem
}

// ConfigProvider provides server and widget configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
	GetWidget() config.Widget
}

// New initializes a new server instance, events may be nil to disable the push stream
func New(cfg ConfigProvider, v View, events *Broadcaster, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		view:      v,
		events:    events,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
		templates: template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// UpdateConfig swaps configuration used for rendering, listen address changes need a restart
func (s *Server) UpdateConfig(cfg ConfigProvider) {
	s.cfgLock.Lock()
	defer s.cfgLock.Unlock()
	s.config = cfg
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.cfg().GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("tubefeed", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.pageHandler)
	s.router.HandleFunc("GET /widget", s.widgetHandler)

	// htmx fragment endpoints, each responds with the re-rendered widget
	s.router.Mount("/widget").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /refresh", s.widgetRefreshHandler)
		r.HandleFunc("POST /channel", s.widgetChannelHandler)
		r.HandleFunc("POST /expand", s.widgetExpandHandler)
		r.HandleFunc("POST /select", s.widgetSelectHandler)
		r.HandleFunc("POST /back", s.widgetBackHandler)
	})

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /snapshot", s.snapshotHandler)
		r.HandleFunc("POST /refresh", s.refreshHandler)
		r.HandleFunc("POST /channel", s.channelHandler)
		r.HandleFunc("POST /expand", s.expandHandler)
		r.HandleFunc("POST /select", s.selectHandler)
		r.HandleFunc("POST /back", s.backHandler)
	})

	if s.events != nil {
		s.router.HandleFunc("GET /events", s.eventsHandler)
	}

	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /atom", s.atomHandler)
}

func (s *Server) cfg() ConfigProvider {
	s.cfgLock.RLock()
	defer s.cfgLock.RUnlock()
	return s.config
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
