// Package decoder answers questions about a VIN: its validity, its
// sections, the names behind its WMI and a corrected proposal.
package decoder

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Describer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vinkit/internal/decoder/metrics"
	"vinkit/internal/wmi"
	dErrors "vinkit/pkg/domain-errors"
	"vinkit/pkg/platform/sentinel"
	"vinkit/pkg/requestcontext"
	"vinkit/pkg/vin"
)

// MaxBatchSize bounds ValidateBatch input.
const MaxBatchSize = 100

// Describer resolves WMI names for a VIN.
type Describer interface {
	Describe(ctx context.Context, locale string, v vin.VIN) (wmi.Description, error)
}

// Report is everything the decoder knows about one input.
type Report struct {
	VIN         vin.VIN
	Validity    vin.Validity
	Segments    vin.Segments
	CheckDigit  string // expected check digit; empty when not computable
	Description wmi.Description
	Locale      string
	Proposal    *vin.VIN // nil when the input is already fully valid
}

// Classification is one ValidateBatch result.
type Classification struct {
	VIN      vin.VIN
	Validity vin.Validity
}

// Service decodes VINs. It is safe for concurrent use.
type Service struct {
	describer     Describer
	defaultLocale string
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithDescriber enables WMI name resolution. Without it reports carry an
// empty Description.
func WithDescriber(d Describer) Option {
	return func(s *Service) {
		s.describer = d
	}
}

// WithDefaultLocale sets the locale used when a request names none.
func WithDefaultLocale(locale string) Option {
	return func(s *Service) {
		if locale != "" {
			s.defaultLocale = locale
		}
	}
}

func New(opts ...Option) *Service {
	svc := &Service{
		defaultLocale: "en",
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:        otel.Tracer("vinkit/internal/decoder"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Decode classifies raw, splits it, resolves its WMI names when it is
// syntactically valid and attaches a proposal unless it is already fully
// valid. Only a failing Describer produces an error; infrastructure outages
// surface as CodeUnavailable. An empty locale is taken from the request
// context, then the default.
func (s *Service) Decode(ctx context.Context, raw, locale string) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, "decoder.Decode")
	defer span.End()

	if locale == "" {
		locale = requestcontext.Locale(ctx)
	}
	if locale == "" {
		locale = s.defaultLocale
	}
	v := vin.New(raw)
	validity := v.Validity()
	span.SetAttributes(
		attribute.String("vin.validity", validity.String()),
		attribute.String("vin.locale", locale),
	)
	s.metrics.IncrementClassification(validity.String())

	report := &Report{
		VIN:      v,
		Validity: validity,
		Segments: v.Segments(),
		Locale:   locale,
	}
	if digit, ok := vin.CheckDigit(raw); ok {
		report.CheckDigit = string(digit)
	}

	if validity.IsSyntacticallyValid() && s.describer != nil {
		start := time.Now()
		desc, err := s.describer.Describe(ctx, locale, v)
		s.metrics.ObserveDescribeLatency(time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "describe failed")
			s.logger.ErrorContext(ctx, "wmi resolution failed",
				"request_id", requestcontext.RequestID(ctx),
				"wmi", v.WMI(),
				"locale", locale,
				"error", err,
			)
			if errors.Is(err, sentinel.ErrUnavailable) {
				return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "manufacturer lookup unavailable")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "manufacturer lookup failed")
		}
		report.Description = desc
	}

	if !validity.HasValidChecksum() {
		proposal := s.propose(ctx, v, validity)
		report.Proposal = &proposal
	}

	s.logger.InfoContext(ctx, "vin decoded",
		"request_id", requestcontext.RequestID(ctx),
		"validity", validity.String(),
		"wmi", report.Segments.WMI,
		"locale", locale,
	)
	return report, nil
}

// Propose returns the corrected form of raw. It never fails.
func (s *Service) Propose(ctx context.Context, raw string) vin.VIN {
	_, span := s.tracer.Start(ctx, "decoder.Propose")
	defer span.End()

	v := vin.New(raw)
	return s.propose(ctx, v, v.Validity())
}

func (s *Service) propose(ctx context.Context, v vin.VIN, validity vin.Validity) vin.VIN {
	proposal := v.Propose()
	s.metrics.IncrementProposal(validity.String())
	s.logger.DebugContext(ctx, "vin proposed",
		"request_id", requestcontext.RequestID(ctx),
		"input_validity", validity.String(),
		"changed", proposal != v,
	)
	return proposal
}

// ValidateBatch classifies each input in order.
func (s *Service) ValidateBatch(ctx context.Context, raws []string) ([]Classification, error) {
	if len(raws) > MaxBatchSize {
		return nil, dErrors.New(dErrors.CodeValidation, "too many VINs in one batch")
	}
	_, span := s.tracer.Start(ctx, "decoder.ValidateBatch",
		trace.WithAttributes(attribute.Int("vin.batch_size", len(raws))))
	defer span.End()

	out := make([]Classification, len(raws))
	for i, raw := range raws {
		v := vin.New(raw)
		out[i] = Classification{VIN: v, Validity: v.Validity()}
		s.metrics.IncrementClassification(out[i].Validity.String())
	}
	return out, nil
}
