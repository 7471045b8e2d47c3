package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"vinkit/internal/decoder"
	dErrors "vinkit/pkg/domain-errors"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *ValidateRequest
		wantErr string
	}{
		{name: "nil body", req: nil, wantErr: "request body is required"},
		{name: "empty", req: &ValidateRequest{}, wantErr: "vins is required"},
		{name: "too many", req: &ValidateRequest{VINs: make([]string, decoder.MaxBatchSize+1)}, wantErr: "at most 100 entries"},
		{name: "oversized entry", req: &ValidateRequest{VINs: []string{"WBA", strings.Repeat("A", maxInputLength+1)}}, wantErr: "vins[1]"},
		{name: "ok", req: &ValidateRequest{VINs: []string{"", "WBA"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestProposeRequest(t *testing.T) {
	assert.NoError(t, (&ProposeRequest{}).Validate())

	err := (&ProposeRequest{VIN: strings.Repeat("A", maxInputLength+1)}).Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
