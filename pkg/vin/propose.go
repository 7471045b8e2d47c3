package vin

import "strings"

var confusables = strings.NewReplacer("I", "1", "O", "0", "Q", "0")

// Propose turns arbitrary input into a VIN that is always ValidWithChecksum.
//
// The input is upper-cased, stripped of spaces, has I, O and Q replaced by
// 1, 0 and 0, and loses every remaining character outside Alphabet. An
// empty result is replaced by FallbackTemplate. The string is then padded
// with '0' or truncated to 17 characters and its check digit is rewritten.
func Propose(s string) VIN {
	cleaned := strings.ToUpper(s)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = confusables.Replace(cleaned)
	cleaned = strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, cleaned)

	if cleaned == "" {
		cleaned = FallbackTemplate
	}

	if len(cleaned) < Length {
		cleaned += strings.Repeat("0", Length-len(cleaned))
	}
	buf := []byte(cleaned[:Length])

	// Every byte is in Alphabet here, so the digit is always computable.
	if digit, ok := CheckDigit(string(buf)); ok {
		buf[checkIndex] = byte(digit)
	}
	return VIN{content: string(buf)}
}
