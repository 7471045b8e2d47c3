package handler

import (
	"fmt"

	"vinkit/internal/decoder"
	dErrors "vinkit/pkg/domain-errors"
)

// maxInputLength bounds raw input; anything longer cannot be a VIN and is
// truncated by the proposer anyway.
const maxInputLength = 256

// ProposeRequest is the HTTP request body for POST /vins/propose.
type ProposeRequest struct {
	VIN string `json:"vin"`
}

// Validate checks the request. An empty VIN is allowed; it proposes the
// fallback template.
func (r *ProposeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.VIN) > maxInputLength {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("vin must be at most %d bytes", maxInputLength))
	}
	return nil
}

// ValidateRequest is the HTTP request body for POST /vins/validate.
type ValidateRequest struct {
	VINs []string `json:"vins"`
}

// Validate checks the request.
func (r *ValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.VINs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "vins is required")
	}
	if len(r.VINs) > decoder.MaxBatchSize {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("vins must contain at most %d entries", decoder.MaxBatchSize))
	}
	for i, raw := range r.VINs {
		if len(raw) > maxInputLength {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("vins[%d] must be at most %d bytes", i, maxInputLength))
		}
	}
	return nil
}
