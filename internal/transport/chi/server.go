package chi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchgate/internal/domain"
	domsearch "github.com/kailas-cloud/searchgate/internal/domain/search"
	"github.com/kailas-cloud/searchgate/internal/logger"
	healthuc "github.com/kailas-cloud/searchgate/internal/usecase/health"
)

// maxBodyBytes bounds the /insert request body and so the document text.
const maxBodyBytes = 1 << 20

// Response messages.
const (
	msgInserted      = "Document inserted successfully"
	msgNoMatches     = "No matches found"
	msgInvalidBody   = "Invalid request body"
	msgBodyTooLarge  = "Request body too large"
	msgTextRequired  = "Text field is required"
	msgQueryRequired = "Query parameter is required"
	msgInsertFailed  = "Document insertion failed"
	msgSearchFailed  = "Search operation failed"
	msgUnavailable   = "Search service unavailable"
	msgInternalError = "Internal server error"
	msgRateLimited   = "Rate limit exceeded"
)

// DocumentInserter is the insert use case.
type DocumentInserter interface {
	Insert(ctx context.Context, text string) (id string, err error)
}

// Searcher is the search use case.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domsearch.Hit, error)
}

// HealthChecker is the health use case.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the gateway HTTP API.
type Server struct {
	documents DocumentInserter
	search    Searcher
	health    HealthChecker
	logger    *zap.Logger

	insertErrors []errorHandler
	searchErrors []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(documents DocumentInserter, search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		documents: documents,
		search:    search,
		health:    health,
		logger:    logger,
	}
	s.insertErrors = []errorHandler{
		validationHandler(),
		sentinelHandler(domain.ErrConnection, http.StatusServiceUnavailable, msgUnavailable),
		sentinelHandler(domain.ErrWrite, http.StatusInternalServerError, msgInsertFailed),
	}
	s.searchErrors = []errorHandler{
		validationHandler(),
		sentinelHandler(domain.ErrConnection, http.StatusServiceUnavailable, msgUnavailable),
		sentinelHandler(domain.ErrQuery, http.StatusInternalServerError, msgSearchFailed),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Post("/insert", s.InsertDocument)
	r.Get("/search", s.SearchDocuments)
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
}

type insertRequest struct {
	Text *string `json:"text"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type searchResponse struct {
	Results []domsearch.Hit `json:"results"`
}

type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// InsertDocument handles POST /insert.
func (s *Server) InsertDocument(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		writeError(w, http.StatusBadRequest, msgTextRequired)
		return
	}

	id, err := s.documents.Insert(r.Context(), *req.Text)
	if err != nil {
		s.handleDomainError(w, r, err, s.insertErrors, msgInsertFailed)
		return
	}

	logger.FromContext(r.Context(), s.logger).Debug("document inserted", zap.String("id", id))
	writeJSON(w, http.StatusOK, messageResponse{Message: msgInserted})
}

// SearchDocuments handles GET /search?query=.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, msgQueryRequired)
		return
	}

	hits, err := s.search.Search(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, r, err, s.searchErrors, msgSearchFailed)
		return
	}

	if len(hits) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: msgNoMatches})
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: hits})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: report.Status,
		Checks: report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

// validationHandler answers 400 with the validation reason, which never carries engine detail.
func validationHandler() errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, domain.ErrValidation) {
			return false
		}
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return true
	}
}

// validationMessage strips the sentinel suffix: "text is required: validation failed"
// becomes "text is required".
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "+domain.ErrValidation.Error()); i > 0 {
		msg = msg[:i]
	}
	if j := strings.LastIndex(msg, ": "); j >= 0 {
		msg = msg[j+2:]
	}
	return msg
}

func (s *Server) handleDomainError(
	w http.ResponseWriter, r *http.Request, err error, handlers []errorHandler, fallback string,
) {
	log := logger.FromContext(r.Context(), s.logger)
	if errors.Is(err, domain.ErrValidation) {
		log.Info("validation error", zap.Error(err))
	} else {
		log.Error("request failed", zap.Error(err))
	}
	for _, h := range handlers {
		if h(w, err) {
			return
		}
	}
	writeError(w, http.StatusInternalServerError, fallback)
}
