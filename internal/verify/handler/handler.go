// Package handler exposes verification over HTTP. It stays thin: parse,
// delegate to the service, translate coded errors to status codes.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"licensure/internal/lookup"
	"licensure/internal/platform/metrics"
	"licensure/internal/platform/middleware"
	"licensure/internal/verify/models"
	"licensure/internal/verify/service"
	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
	"licensure/pkg/platform/httputil"
)

const (
	defaultTimeout = 30 * time.Second

	// verifyTimeout leaves room for a full retry schedule against a slow
	// portal plus the credential checks.
	verifyTimeout = 90 * time.Second

	defaultHistoryLimit = 20
	defaultRecentLimit  = 50
	maxLimit            = 100
)

// Service is the verification surface the HTTP layer consumes.
type Service interface {
	VerifyProvider(ctx context.Context, providerID id.ProviderID) (*service.Report, error)
	ProviderAttempts(ctx context.Context, providerID id.ProviderID, limit int) ([]*models.VerificationAttempt, error)
	RecentAttempts(ctx context.Context, limit int) ([]*models.VerificationAttempt, error)
	Lookup(ctx context.Context, region id.Region, licenseNumber string) (*lookup.Result, error)
}

// Handler handles the verification and lookup endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	metrics *metrics.Metrics
}

// New creates a verification Handler.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		metrics: metrics,
	}
}

// Register mounts the API routes with their middleware chain.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.Recovery(h.logger))
	api.Use(middleware.RequestID)
	api.Use(middleware.RequestTime)
	api.Use(middleware.Logger(h.logger))
	api.Use(middleware.Latency(h.metrics))

	api.Group(func(g chi.Router) {
		g.Use(middleware.Timeout(defaultTimeout))
		g.Get("/license/lookup/{region}/{number}", h.handleLookup)
		g.Get("/dpor/lookup/{number}", h.handleDPORLookup)
		g.Get("/providers/{id}/attempts", h.handleProviderAttempts)
		g.Get("/attempts/recent", h.handleRecentAttempts)
	})
	api.Group(func(g chi.Router) {
		g.Use(middleware.Timeout(verifyTimeout))
		g.Post("/providers/{id}/verify", h.handleVerifyProvider)
	})

	r.Mount("/api", api)
}

type lookupResponse struct {
	Region        id.Region              `json:"region"`
	LicenseNumber string                 `json:"license_number"`
	Records       []models.LicenseRecord `json:"records"`
}

type attemptsResponse struct {
	Attempts []*models.VerificationAttempt `json:"attempts"`
}

// handleLookup serves an on-demand board lookup with no provider involved.
func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	region, err := id.ParseRegion(chi.URLParam(r, "region"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
		return
	}
	h.lookup(w, r, region, chi.URLParam(r, "number"))
}

// handleDPORLookup is the pre-multi-region lookup path. Kept for existing
// callers; always routes to the Virginia board.
func (h *Handler) handleDPORLookup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Deprecation", "true")
	h.lookup(w, r, id.RegionVirginia, chi.URLParam(r, "number"))
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, region id.Region, number string) {
	ctx := r.Context()
	result, err := h.service.Lookup(ctx, region, number)
	if err != nil {
		h.logFailure(ctx, "lookup failed", err, "region", region)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, lookupResponse{
		Region:        region,
		LicenseNumber: number,
		Records:       result.Records,
	})
}

// handleVerifyProvider runs the full check for one provider now and returns
// the combined report.
func (h *Handler) handleVerifyProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	providerID, err := id.ParseProviderID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.VerifyProvider(ctx, providerID)
	if err != nil {
		h.logFailure(ctx, "verification failed", err, "provider_id", providerID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleProviderAttempts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	providerID, err := id.ParseProviderID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	attempts, err := h.service.ProviderAttempts(ctx, providerID, parseLimit(r, defaultHistoryLimit))
	if err != nil {
		h.logFailure(ctx, "attempt history failed", err, "provider_id", providerID)
		httputil.WriteError(w, err)
		return
	}
	if attempts == nil {
		attempts = []*models.VerificationAttempt{}
	}
	httputil.WriteJSON(w, http.StatusOK, attemptsResponse{Attempts: attempts})
}

func (h *Handler) handleRecentAttempts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	attempts, err := h.service.RecentAttempts(ctx, parseLimit(r, defaultRecentLimit))
	if err != nil {
		h.logFailure(ctx, "recent attempts failed", err)
		httputil.WriteError(w, err)
		return
	}
	if attempts == nil {
		attempts = []*models.VerificationAttempt{}
	}
	httputil.WriteJSON(w, http.StatusOK, attemptsResponse{Attempts: attempts})
}

// parseLimit reads ?limit=N, falling back on junk and capping the result.
func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return min(n, maxLimit)
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	if h.logger == nil {
		return
	}
	args = append(args, "request_id", middleware.GetRequestID(ctx), "error", err.Error())
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
