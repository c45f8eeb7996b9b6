package util

import (
	"strconv"
	"strings"
)

// NaNDefault is what ParseFloat returns for the "-nan" token some modules
// print for undefined doubles (empty sketches, 0/0 ratios).
const NaNDefault = 0

// ParseFloat parses a double as printed by Redis modules. "-nan" maps to
// NaNDefault; "inf", "-inf" and "nan" keep their strconv meaning.
func ParseFloat(s string) (float64, error) {
	if strings.EqualFold(s, "-nan") {
		return NaNDefault, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ToLower lower-cases ASCII command names without allocating when s is
// already lower case.
func ToLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			return strings.ToLower(s)
		}
	}
	return s
}
