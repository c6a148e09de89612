// Package chi is the HTTP transport: hand-written handlers on the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kitvault/kitvault/internal/domain"
	logpkg "github.com/kitvault/kitvault/internal/logger"
	assetuc "github.com/kitvault/kitvault/internal/usecase/asset"
	healthuc "github.com/kitvault/kitvault/internal/usecase/health"
	kituc "github.com/kitvault/kitvault/internal/usecase/kit"
	quickuc "github.com/kitvault/kitvault/internal/usecase/quickquery"
	raguc "github.com/kitvault/kitvault/internal/usecase/rag"
	sharinguc "github.com/kitvault/kitvault/internal/usecase/sharing"
	workspaceuc "github.com/kitvault/kitvault/internal/usecase/workspace"
)

// ErrorCode identifies the error class in the JSON error envelope.
type ErrorCode string

// Error codes returned to clients.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeNotFound         ErrorCode = "not_found"
	CodeAlreadyExists    ErrorCode = "already_exists"
	CodeEmptyKit         ErrorCode = "empty_kit"
	CodeLinkInactive     ErrorCode = "link_inactive"
	CodeBackendError     ErrorCode = "backend_error"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the use case services behind the HTTP API.
type Server struct {
	workspaces    *workspaceuc.Service
	assets        *assetuc.Service
	kits          *kituc.Service
	sharing       *sharinguc.Service
	rag           *raguc.Service
	quick         *quickuc.Service
	health        *healthuc.Service
	defaultModel  string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	workspaces *workspaceuc.Service,
	assets *assetuc.Service,
	kits *kituc.Service,
	sharing *sharinguc.Service,
	rag *raguc.Service,
	quick *quickuc.Service,
	health *healthuc.Service,
	defaultModel string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		workspaces:   workspaces,
		assets:       assets,
		kits:         kits,
		sharing:      sharing,
		rag:          rag,
		quick:        quick,
		health:       health,
		defaultModel: defaultModel,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists),
		sentinelHandler(domain.ErrEmptyCollection, http.StatusBadRequest, CodeEmptyKit),
		sentinelHandler(domain.ErrLinkInactive, http.StatusForbidden, CodeLinkInactive),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrGenerationBackend, http.StatusBadGateway, CodeBackendError),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/workspaces", func(r chi.Router) {
			r.Post("/", s.CreateWorkspace)
			r.Get("/", s.ListWorkspaces)
			r.Get("/{workspaceID}", s.GetWorkspace)
			r.Put("/{workspaceID}", s.UpdateWorkspace)
			r.Delete("/{workspaceID}", s.DeleteWorkspace)

			r.Post("/{workspaceID}/assets", s.CreateAsset)
			r.Post("/{workspaceID}/assets/upload", s.UploadAsset)
			r.Get("/{workspaceID}/assets", s.ListAssets)

			r.Post("/{workspaceID}/kits", s.CreateKit)
			r.Get("/{workspaceID}/kits", s.ListKits)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Get("/{assetID}", s.GetAsset)
			r.Get("/{assetID}/download", s.DownloadAsset)
			r.Delete("/{assetID}", s.DeleteAsset)
		})

		r.Route("/kits", func(r chi.Router) {
			r.Get("/{kitID}", s.GetKit)
			r.Put("/{kitID}", s.UpdateKit)
			r.Delete("/{kitID}", s.DeleteKit)
			r.Get("/{kitID}/assets", s.ListKitAssets)

			r.Post("/{kitID}/links", s.CreateSharingLink)
			r.Get("/{kitID}/links", s.ListSharingLinks)
		})

		r.Route("/sharing-links", func(r chi.Router) {
			r.Patch("/{linkID}/deactivate", s.DeactivateSharingLink)
			r.Delete("/{linkID}", s.DeleteSharingLink)
		})

		r.Get("/shared/{token}", s.GetSharedKit)

		r.Route("/rag", func(r chi.Router) {
			r.Post("/query", s.QueryRAG)
			r.Post("/query/shared/{token}", s.QuerySharedRAG)
		})
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
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

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrEmptyCollection,
		domain.ErrLinkInactive,
		domain.ErrValidation,
		domain.ErrGenerationBackend,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
