package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"content_generator/exporter"
	"content_generator/generator"
	"content_generator/logging"
	"content_generator/metrics"
)

//go:embed web/index.html
var embeddedStatic embed.FS

type Server struct {
	submitter generator.Submitter
	logger    *slog.Logger
	page      *template.Template
}

func New(submitter generator.Submitter, logger *slog.Logger) (*Server, error) {
	if submitter == nil {
		return nil, errors.New("submitter required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	page, err := template.ParseFS(embeddedStatic, "web/index.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		submitter: submitter,
		logger:    logger,
		page:      page,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/generate", s.handleGenerateForm).Methods(http.MethodPost)

	// API 路由平铺注册：子路由下的同级路由会把方法不匹配（405）吞成 404。
	r.HandleFunc("/api/v1/options", s.handleOptions).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/generate", s.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/generate/pdf", s.handleGeneratePDF).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/health", s.handleHealth).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler())

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError)),
	)
	return recovery(s.logRequests(cors(withMetrics(r))))
}

// --- Middleware ---

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(logging.WithRequestID(r.Context(), requestID))

		log := logging.FromContext(r.Context(), s.logger)
		log.Debug("request started", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		log.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", time.Since(start),
			"response_size", rw.size,
		)
	})
}

// unmatchedRoute labels requests no route accepts (404 and 405).
const unmatchedRoute = "unmatched"

// withMetrics wraps the whole router so 404 and 405 responses are counted too.
// Requests are labelled by route template, never by raw path, to bound cardinality.
func withMetrics(router *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := unmatchedRoute
		var match mux.RouteMatch
		if router.Match(r, &match) && match.Route != nil {
			if tmpl, err := match.Route.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		router.ServeHTTP(rw, r)
		metrics.ObserveHTTPRequest(r.Method, route, strconv.Itoa(rw.status), time.Since(start))
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, generator.ErrUnknownContentType),
		errors.Is(err, generator.ErrUnknownTone),
		errors.Is(err, generator.ErrTargetLength):
		return http.StatusBadRequest
	case errors.Is(err, exporter.ErrNotLatin1):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, generator.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logging.FromContext(r.Context(), s.logger).Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeError(w, code, err)
}

func contentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
