// Package api serves the LAS toolkit and the well store over HTTP.
package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/welllog/internal/db"
	"github.com/banshee-data/welllog/internal/las"
	"github.com/banshee-data/welllog/internal/units"
)

// ANSI escape codes for the request log.
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

// DefaultMaxBodyBytes caps uploaded LAS text.
const DefaultMaxBodyBytes = 32 << 20

// Store is the persistence the well routes need. *db.WellStore satisfies
// it.
type Store interface {
	Insert(doc *las.Document, sourcePath string) (string, error)
	List() ([]db.WellRecord, error)
	Get(id string) (*db.WellRecord, error)
	LoadDocument(id string) (*las.Document, error)
	Delete(id string) error
}

// AdminRoutes mounts debug handlers, such as tailsql over the well DB.
type AdminRoutes interface {
	AttachAdminRoutes(mux *http.ServeMux)
}

type Options struct {
	Writer       las.WriterOptions
	Encoding     string
	MaxBodyBytes int64
	// ChartAssetsHost overrides the go-echarts CDN, for air-gapped sites.
	ChartAssetsHost string
	PlotWidthIn     float64
	PlotHeightIn    float64
	Admin           AdminRoutes
}

type Server struct {
	store  Store
	lookup units.Lookup
	writer *las.Writer
	opts   Options
}

// NewServer builds a Server. store may be nil, in which case only the
// stateless /api/las routes and /api/version are useful; the well routes
// answer 503.
func NewServer(store Store, lookup units.Lookup, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.PlotWidthIn <= 0 {
		opts.PlotWidthIn = 6
	}
	if opts.PlotHeightIn <= 0 {
		opts.PlotHeightIn = 10
	}
	return &Server{
		store:  store,
		lookup: lookup,
		writer: las.NewWriter(opts.Writer),
		opts:   opts,
	}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/version", s.showVersion)
	mux.HandleFunc("/api/las/parse", s.parseLAS)
	mux.HandleFunc("/api/las/convert", s.convertLAS)
	mux.HandleFunc("/api/wells", s.handleWells)
	mux.HandleFunc("/api/wells/{id}", s.handleWell)
	mux.HandleFunc("/api/wells/{id}/las", s.exportWell)
	mux.HandleFunc("/api/wells/{id}/chart", s.chartWell)
	mux.HandleFunc("/api/wells/{id}/plot.png", s.plotWell)
	if s.opts.Admin != nil {
		s.opts.Admin.AttachAdminRoutes(mux)
	}
	return mux
}

// Handler is ServeMux wrapped in LoggingMiddleware.
func (s *Server) Handler() http.Handler {
	return LoggingMiddleware(s.ServeMux())
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
