package vin

import "unicode/utf8"

// Validity is the tri-state classification of a candidate VIN.
type Validity int

const (
	// Invalid means wrong length or a character outside Alphabet.
	Invalid Validity = iota
	// Valid means correct length and alphabet but a mismatching check digit.
	Valid
	// ValidWithChecksum means correct length, alphabet and check digit.
	ValidWithChecksum
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case ValidWithChecksum:
		return "valid_with_checksum"
	default:
		return "invalid"
	}
}

// IsSyntacticallyValid is true for Valid and ValidWithChecksum.
func (v Validity) IsSyntacticallyValid() bool {
	switch v {
	case Valid, ValidWithChecksum:
		return true
	default:
		return false
	}
}

// HasValidChecksum is true only for ValidWithChecksum.
func (v Validity) HasValidChecksum() bool {
	return v == ValidWithChecksum
}

// ParseValidity maps the String form back to a Validity.
func ParseValidity(s string) (Validity, bool) {
	switch s {
	case "invalid":
		return Invalid, true
	case "valid":
		return Valid, true
	case "valid_with_checksum":
		return ValidWithChecksum, true
	default:
		return Invalid, false
	}
}

// Classify returns the validity of s. Every input maps to exactly one state.
func Classify(s string) Validity {
	if len(s) != Length || !hasOnlyAllowed(s) {
		return Invalid
	}
	digit, ok := CheckDigit(s)
	if !ok || rune(s[8]) != digit {
		return Valid
	}
	return ValidWithChecksum
}

// IsSyntacticallyValid reports whether s has 17 characters, all from Alphabet.
func IsSyntacticallyValid(s string) bool {
	return Classify(s).IsSyntacticallyValid()
}

// HasValidChecksum reports whether s is fully valid including its check digit.
func HasValidChecksum(s string) bool {
	return Classify(s).HasValidChecksum()
}

// Segments holds the three sections of a VIN.
type Segments struct {
	WMI string `json:"wmi" yaml:"wmi"`
	VDS string `json:"vds" yaml:"vds"`
	VIS string `json:"vis" yaml:"vis"`
}

// Split slices s into its sections, or returns empty Segments when s is
// not syntactically valid. No case conversion is applied.
func Split(s string) Segments {
	if !IsSyntacticallyValid(s) {
		return Segments{}
	}
	return Segments{WMI: s[0:3], VDS: s[3:9], VIS: s[9:17]}
}

// WMI returns positions 1-3 of s, or "" when s is not syntactically valid.
func WMI(s string) string { return Split(s).WMI }

// VDS returns positions 4-9 of s, or "" when s is not syntactically valid.
func VDS(s string) string { return Split(s).VDS }

// VIS returns positions 10-17 of s, or "" when s is not syntactically valid.
func VIS(s string) string { return Split(s).VIS }

// ChecksumDigit returns the character at position 9. Only the length is
// checked; the alphabet is not.
func ChecksumDigit(s string) (rune, bool) {
	if utf8.RuneCountInString(s) != Length {
		return 0, false
	}
	i := 0
	for _, r := range s {
		if i == 8 {
			return r, true
		}
		i++
	}
	return 0, false
}
