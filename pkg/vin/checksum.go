package vin

// checkIndex is the zero-based position of the check digit.
const checkIndex = 8

var weights = [Length]int{8, 7, 6, 5, 4, 3, 2, 10, 0, 9, 8, 7, 6, 5, 4, 3, 2}

// Transliterate maps a VIN character to its numeric value. Digits map to
// themselves; I, O, Q and anything outside Alphabet have no value.
func Transliterate(r rune) (int, bool) {
	switch r {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return int(r - '0'), true
	case 'A', 'J':
		return 1, true
	case 'B', 'K', 'S':
		return 2, true
	case 'C', 'L', 'T':
		return 3, true
	case 'D', 'M', 'U':
		return 4, true
	case 'E', 'N', 'V':
		return 5, true
	case 'F', 'W':
		return 6, true
	case 'G', 'P', 'X':
		return 7, true
	case 'H', 'Y':
		return 8, true
	case 'R', 'Z':
		return 9, true
	default:
		return 0, false
	}
}

// CheckDigit computes the ISO 3779 check digit of s: the weighted sum of
// all positions except the 9th, modulo 11, with 10 rendered as 'X'.
// It fails when s is not 17 bytes long or holds an unmappable character.
func CheckDigit(s string) (rune, bool) {
	if len(s) != Length {
		return 0, false
	}
	sum := 0
	for i := 0; i < Length; i++ {
		if i == checkIndex {
			continue
		}
		value, ok := Transliterate(rune(s[i]))
		if !ok {
			return 0, false
		}
		sum += value * weights[i]
	}
	remainder := sum % 11
	if remainder == 10 {
		return 'X', true
	}
	return rune('0' + remainder), true
}
