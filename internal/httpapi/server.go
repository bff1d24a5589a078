package httpapi

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/MimeLyc/srt-translator/internal/service"
	"github.com/MimeLyc/srt-translator/pkg/icron"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	defaultMaxUploadBytes = 10 << 20
	defaultMaxBodyBytes   = 12 << 20
)

type scheduleInfo interface {
	Info(name string, refTime time.Time) (*icron.TriggerInfo, bool)
}

type Server struct {
	session *service.Session

	uiEnabled   bool
	uiStaticDir string

	corsOrigins    []string
	maxUploadBytes int64
	maxBodyBytes   int64

	schedule  scheduleInfo
	sweepName string

	router *chi.Mux
	server *http.Server
}

type Option func(*Server)

func WithUI(staticDir string, enabled bool) Option {
	return func(s *Server) {
		s.uiStaticDir = staticDir
		s.uiEnabled = enabled
	}
}

func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithLimits sets the multipart upload and request body limits; values
// <= 0 keep the defaults.
func WithLimits(maxUploadBytes, maxBodyBytes int64) Option {
	return func(s *Server) {
		if maxUploadBytes > 0 {
			s.maxUploadBytes = maxUploadBytes
		}
		if maxBodyBytes > 0 {
			s.maxBodyBytes = maxBodyBytes
		}
	}
}

// WithSweepSchedule reports the next run of the named job on /api/health
func WithSweepSchedule(schedule scheduleInfo, name string) Option {
	return func(s *Server) {
		s.schedule = schedule
		s.sweepName = name
	}
}

func NewServer(session *service.Session, opts ...Option) *Server {
	s := &Server{
		session:        session,
		uiEnabled:      false,
		maxUploadBytes: defaultMaxUploadBytes,
		maxBodyBytes:   defaultMaxBodyBytes,
		router:         chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	r := s.router
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(cors.Handler(corsOptions(s.corsOrigins)))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/languages", s.handleLanguages)

		r.Group(func(r chi.Router) {
			r.Use(maxBodySize(s.maxBodyBytes))
			r.Post("/subtitles/parse", s.handleParse)
			r.Post("/subtitles/reconstruct", s.handleReconstruct)
			r.Post("/session/translate", s.handleTranslate)
			r.Put("/session/entries/{index}", s.handleUpdateEntry)
		})

		r.Get("/session", s.handleGetSession)
		r.Delete("/session", s.handleResetSession)
		r.Post("/session/file", s.handleUpload)
		r.Get("/session/download", s.handleDownload)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not found", "NotFound")
		})
	})

	r.Get("/*", s.handleStatic)
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if !s.uiEnabled || s.uiStaticDir == "" {
		http.NotFound(w, r)
		return
	}

	rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	indexPath := filepath.Join(s.uiStaticDir, "index.html")

	if rel == "" || !strings.Contains(filepath.Base(rel), ".") {
		http.ServeFile(w, r, indexPath)
		return
	}

	filePath := filepath.Join(s.uiStaticDir, rel)
	if _, err := os.Stat(filePath); err != nil {
		// unknown asset paths fall back to the SPA entry point
		http.ServeFile(w, r, indexPath)
		return
	}
	http.ServeFile(w, r, filePath)
}
