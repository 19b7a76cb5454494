// Package chi exposes the HTTP API: document ingestion, question answering,
// health, and metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docqa/internal/domain"
	healthuc "github.com/kailas-cloud/docqa/internal/usecase/health"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeBadRequest              = "bad_request"
	CodeValidationFailed        = "validation_failed"
	CodeEmbeddingProviderError  = "embedding_provider_error"
	CodeCompletionProviderError = "completion_provider_error"
	CodeVectorStoreUnavailable  = "vector_store_unavailable"
	CodeInternalError           = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IngestRequest is the POST /documents body.
type IngestRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// IngestResponse is the POST /documents reply.
type IngestResponse struct {
	Filename      string `json:"filename"`
	ChunksIndexed int    `json:"chunks_indexed"`
}

// QuestionRequest is the POST /questions body.
type QuestionRequest struct {
	Question    string `json:"question"`
	ChatHistory string `json:"chat_history,omitempty"`
}

// SourceItem is one retrieved source in an answer.
type SourceItem struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// AnswerResponse is the POST /questions reply.
type AnswerResponse struct {
	Answer      string       `json:"answer"`
	Sources     []SourceItem `json:"sources"`
	Unavailable bool         `json:"unavailable,omitempty"`
}

// StatsResponse is the GET /documents/stats reply.
type StatsResponse struct {
	TotalChunks int `json:"total_chunks"`
}

// HealthResponse is the GET /health reply.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Ingester indexes document text.
type Ingester interface {
	Ingest(ctx context.Context, filename, text string) (int, error)
}

// Answerer answers questions over indexed documents.
type Answerer interface {
	Answer(ctx context.Context, question, chatHistory string) (domain.Answer, error)
}

// ChunkCounter reports the number of indexed chunks.
type ChunkCounter interface {
	Count(ctx context.Context) (int, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the HTTP API.
type Server struct {
	ingester      Ingester
	answerer      Answerer
	counter       ChunkCounter
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	ingester Ingester,
	answerer Answerer,
	counter ChunkCounter,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ingester: ingester,
		answerer: answerer,
		counter:  counter,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidDocument, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidQuestion, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
		sentinelHandler(domain.ErrCompletionProviderError, http.StatusBadGateway, CodeCompletionProviderError),
		sentinelHandler(domain.ErrVectorStore, http.StatusServiceUnavailable, CodeVectorStoreUnavailable),
	}
	return s
}

// Register mounts all API routes on the router.
func (s *Server) Register(r chirouter.Router) {
	r.Post("/documents", s.IngestDocument)
	r.Get("/documents/stats", s.DocumentStats)
	r.Post("/questions", s.AnswerQuestion)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// IngestDocument handles POST /documents.
func (s *Server) IngestDocument(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Filename is required")
		return
	}

	n, err := s.ingester.Ingest(r.Context(), req.Filename, req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, IngestResponse{
		Filename:      req.Filename,
		ChunksIndexed: n,
	})
}

// DocumentStats handles GET /documents/stats.
func (s *Server) DocumentStats(w http.ResponseWriter, r *http.Request) {
	n, err := s.counter.Count(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{TotalChunks: n})
}

// AnswerQuestion handles POST /questions.
func (s *Server) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Question is required")
		return
	}

	ans, err := s.answerer.Answer(r.Context(), req.Question, req.ChatHistory)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	sources := make([]SourceItem, len(ans.Sources))
	for i, src := range ans.Sources {
		sources[i] = SourceItem{Filename: src.Filename, Content: src.Content}
	}

	writeJSON(w, http.StatusOK, AnswerResponse{
		Answer:      ans.Text,
		Sources:     sources,
		Unavailable: ans.Unavailable,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidDocument,
		domain.ErrInvalidQuestion,
		domain.ErrEmbeddingProviderError,
		domain.ErrCompletionProviderError,
		domain.ErrVectorStore,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
