package handler

import (
	"vinkit/internal/decoder"
	"vinkit/pkg/vin"
)

// DecodeResponse is the HTTP response body for GET /vins/{vin}.
type DecodeResponse struct {
	VIN                string       `json:"vin"`
	Validity           string       `json:"validity"`
	SyntacticallyValid bool         `json:"syntactically_valid"`
	ChecksumValid      bool         `json:"checksum_valid"`
	Segments           vin.Segments `json:"segments"`
	CheckDigit         string       `json:"check_digit,omitempty"`
	Region             string       `json:"region,omitempty"`
	Country            string       `json:"country,omitempty"`
	Manufacturer       string       `json:"manufacturer,omitempty"`
	Locale             string       `json:"locale"`
	Proposal           *vin.VIN     `json:"proposal,omitempty"`
}

// FromReport maps a decoder report to its wire form.
func FromReport(r *decoder.Report) DecodeResponse {
	return DecodeResponse{
		VIN:                r.VIN.String(),
		Validity:           r.Validity.String(),
		SyntacticallyValid: r.Validity.IsSyntacticallyValid(),
		ChecksumValid:      r.Validity.HasValidChecksum(),
		Segments:           r.Segments,
		CheckDigit:         r.CheckDigit,
		Region:             r.Description.Region,
		Country:            r.Description.Country,
		Manufacturer:       r.Description.Manufacturer,
		Locale:             r.Locale,
		Proposal:           r.Proposal,
	}
}

// ProposeResponse is the HTTP response body for POST /vins/propose.
type ProposeResponse struct {
	Input    string  `json:"input"`
	VIN      vin.VIN `json:"vin"`
	Validity string  `json:"validity"`
	Changed  bool    `json:"changed"`
}

// ClassificationResponse is one entry of the POST /vins/validate response.
type ClassificationResponse struct {
	VIN      vin.VIN `json:"vin"`
	Validity string  `json:"validity"`
}

// ValidateResponse is the HTTP response body for POST /vins/validate.
type ValidateResponse struct {
	Results []ClassificationResponse `json:"results"`
}

// FromClassifications maps batch results to their wire form.
func FromClassifications(in []decoder.Classification) ValidateResponse {
	out := ValidateResponse{Results: make([]ClassificationResponse, len(in))}
	for i, c := range in {
		out.Results[i] = ClassificationResponse{VIN: c.VIN, Validity: c.Validity.String()}
	}
	return out
}
