// Package vin validates, decomposes and repairs Vehicle Identification
// Numbers as defined by ISO 3779.
//
// Domain Purity: This package contains only pure functions over strings. It
// performs no I/O, holds no shared state and is safe for concurrent use.
package vin

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Length is the fixed number of characters in a VIN.
	Length = 17

	// Alphabet lists the 33 characters a VIN may contain. I, O and Q are
	// excluded because they are confusable with 1 and 0.
	Alphabet = "0123456789ABCDEFGHJKLMNPRSTUVWXYZ"

	// FallbackTemplate replaces input that has no usable characters left
	// after sanitization. Its check digit is recomputed by Propose.
	FallbackTemplate = "1VWAA7A30FC000001"
)

// Unknown is a placeholder VIN for records whose real VIN is not known.
// It is syntactically valid; its check digit is not guaranteed to match.
var Unknown = VIN{content: "UNKNWN78901234567"}

// ErrInvalidVIN indicates the value is not a syntactically valid VIN.
var ErrInvalidVIN = errors.New("invalid VIN: must be 17 characters from A-Z and 0-9 excluding I, O, Q")

// VIN wraps a candidate identifier. Any string is accepted; validity is
// derived on demand and never cached.
//
// Invariants:
//   - Immutable after construction
//   - Equality is byte equality of the wrapped content
type VIN struct {
	content string
}

// New wraps s without validating it.
func New(s string) VIN {
	return VIN{content: s}
}

// Parse wraps s and rejects it when it is not syntactically valid.
// The check digit is not required to match.
func Parse(s string) (VIN, error) {
	if !IsSyntacticallyValid(s) {
		return VIN{}, fmt.Errorf("%w: %q", ErrInvalidVIN, s)
	}
	return VIN{content: s}, nil
}

// MustParse is like Parse but panics on invalid input.
// Use only in tests or when the value is known to be valid.
func MustParse(s string) VIN {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the wrapped content verbatim.
func (v VIN) String() string {
	return v.content
}

// ID returns the content as the identity of the VIN.
func (v VIN) ID() string {
	return v.content
}

// IsZero returns true if this is the zero value (uninitialized).
func (v VIN) IsZero() bool {
	return v.content == ""
}

// Validity classifies the VIN.
func (v VIN) Validity() Validity {
	return Classify(v.content)
}

// IsSyntacticallyValid reports whether the VIN has the right length and alphabet.
func (v VIN) IsSyntacticallyValid() bool {
	return v.Validity().IsSyntacticallyValid()
}

// HasValidChecksum reports whether the check digit at position 9 is correct.
func (v VIN) HasValidChecksum() bool {
	return v.Validity().HasValidChecksum()
}

// WMI returns the World Manufacturer Identifier, or "" when invalid.
func (v VIN) WMI() string { return WMI(v.content) }

// VDS returns the Vehicle Descriptor Section, or "" when invalid.
func (v VIN) VDS() string { return VDS(v.content) }

// VIS returns the Vehicle Identification Section, or "" when invalid.
func (v VIN) VIS() string { return VIS(v.content) }

// ChecksumDigit returns the character at position 9 when the VIN is 17
// characters long.
func (v VIN) ChecksumDigit() (rune, bool) {
	return ChecksumDigit(v.content)
}

// Segments returns all three sections at once.
func (v VIN) Segments() Segments {
	return Split(v.content)
}

// Propose returns a corrected copy of the VIN. The receiver is unchanged.
func (v VIN) Propose() VIN {
	return Propose(v.content)
}

// allowed reports whether r belongs to Alphabet.
func allowed(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'A' && r <= 'Z':
		return r != 'I' && r != 'O' && r != 'Q'
	default:
		return false
	}
}

func hasOnlyAllowed(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !allowed(r) }) < 0
}
