package parser

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// vulgarFractions maps fraction glyphs to the rounded decimals stored by the
// recipe forms. The values are fixed and must not be computed.
var vulgarFractions = map[rune]float64{
	'⅛': 0.125,
	'⅙': 0.167,
	'⅕': 0.2,
	'¼': 0.25,
	'⅓': 0.333,
	'⅜': 0.375,
	'⅖': 0.4,
	'½': 0.5,
	'⅗': 0.6,
	'⅔': 0.667,
	'⅝': 0.625,
	'¾': 0.75,
	'⅘': 0.8,
	'⅚': 0.833,
	'⅞': 0.875,
}

// FractionValue returns the decimal value of a vulgar fraction glyph.
func FractionValue(r rune) (float64, bool) {
	v, ok := vulgarFractions[r]
	return v, ok
}

// parseQuantity reads "<quantity> <unit>" from the text inside an
// ingredient's parentheses. Accepted forms, in order: a whole number followed
// by a fraction glyph ("1 ⅔ EL"), a decimal with point or comma ("1,5 kg"),
// and a bare fraction glyph ("½ TL"). ok is false when none applies.
func parseQuantity(s string) (quantity float64, unit string, ok bool) {
	s = strings.TrimSpace(s)

	intPart, rest := scanDigits(s)
	if intPart != "" {
		// mixed number
		if frac, after, found := scanFraction(strings.TrimLeftFunc(rest, unicode.IsSpace)); found {
			whole, err := strconv.ParseFloat(intPart, 64)
			if err == nil {
				return checked(whole+frac, after)
			}
		}

		number := intPart
		if len(rest) >= 2 && (rest[0] == '.' || rest[0] == ',') {
			if decimals, after := scanDigits(rest[1:]); decimals != "" {
				number = intPart + "." + decimals
				rest = after
			}
		}
		value, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return 0, "", false
		}
		return checked(value, rest)
	}

	if frac, after, found := scanFraction(s); found {
		return checked(frac, after)
	}
	return 0, "", false
}

func checked(quantity float64, rest string) (float64, string, bool) {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return 0, "", false
	}
	unit := strings.TrimSpace(rest)
	if unit == "" {
		unit = DefaultUnit
	}
	return quantity, unit, true
}

// scanDigits splits s after its leading run of ASCII digits.
func scanDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

// scanFraction reads a single vulgar fraction glyph at the start of s.
func scanFraction(s string) (value float64, rest string, ok bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0, s, false
	}
	value, ok = vulgarFractions[r]
	if !ok {
		return 0, s, false
	}
	return value, s[size:], true
}
