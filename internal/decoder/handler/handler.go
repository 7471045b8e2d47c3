package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"vinkit/internal/decoder"
	dErrors "vinkit/pkg/domain-errors"
	"vinkit/pkg/platform/httputil"
	"vinkit/pkg/requestcontext"
	"vinkit/pkg/vin"
)

// Service defines the interface for decoder operations.
type Service interface {
	Decode(ctx context.Context, raw, locale string) (*decoder.Report, error)
	Propose(ctx context.Context, raw string) vin.VIN
	ValidateBatch(ctx context.Context, raws []string) ([]decoder.Classification, error)
}

// LocaleMatcher maps a requested locale or Accept-Language value to a
// supported locale.
type LocaleMatcher func(requested string) string

// Handler wires VIN endpoints to the decoder service.
type Handler struct {
	service Service
	logger  *slog.Logger
	locales LocaleMatcher
}

// New constructs a decoder handler. A nil matcher passes locales through.
func New(service Service, logger *slog.Logger, locales LocaleMatcher) *Handler {
	if locales == nil {
		locales = func(requested string) string { return requested }
	}
	return &Handler{
		service: service,
		logger:  logger,
		locales: locales,
	}
}

// Register mounts VIN endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/vins/{vin}", h.HandleDecode)
	r.Post("/vins/propose", h.HandlePropose)
	r.Post("/vins/validate", h.HandleValidate)
}

// HandleDecode handles GET /vins/{vin} requests. The locale comes from the
// locale query parameter, then Accept-Language.
func (h *Handler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	raw, err := pathParam(r, "vin")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "vin path segment is not valid escaping"))
		return
	}
	if len(raw) > maxInputLength {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("vin must be at most %d bytes", maxInputLength)))
		return
	}

	requested := r.URL.Query().Get("locale")
	if requested == "" {
		requested = r.Header.Get("Accept-Language")
	}
	locale := ""
	if requested != "" {
		locale = h.locales(requested)
	}
	ctx = requestcontext.WithLocale(ctx, locale)

	report, err := h.service.Decode(ctx, raw, locale)
	if err != nil {
		h.logger.ErrorContext(ctx, "vin decode failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "vin decode served",
		"request_id", requestID,
		"validity", report.Validity.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}

// HandlePropose handles POST /vins/propose requests.
func (h *Handler) HandlePropose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeJSON[ProposeRequest](w, r, h.logger)
	if !ok {
		return
	}

	proposal := h.service.Propose(ctx, req.VIN)
	httputil.WriteJSON(w, http.StatusOK, ProposeResponse{
		Input:    req.VIN,
		VIN:      proposal,
		Validity: proposal.Validity().String(),
		Changed:  proposal.String() != req.VIN,
	})
}

// HandleValidate handles POST /vins/validate requests.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeJSON[ValidateRequest](w, r, h.logger)
	if !ok {
		return
	}

	results, err := h.service.ValidateBatch(ctx, req.VINs)
	if err != nil {
		h.logger.WarnContext(ctx, "vin batch validation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromClassifications(results))
}

// pathParam returns a decoded URL parameter. chi matches on RawPath when the
// request carries one, so only then is the value still escaped; otherwise
// it was decoded once already and is returned verbatim.
func pathParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}
