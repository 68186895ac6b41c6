package domain

import (
	"regexp"
	"strings"
)

// rutPattern matches a Chilean RUT: a 7-8 digit body, a dash, and a check
// character that is either a digit or K. The trailing letter is accepted in
// either case; NormalizeRUT upper-cases it before storage and lookup.
var rutPattern = regexp.MustCompile(`^\d{7,8}-[0-9K]$`)

// NormalizeRUT trims surrounding whitespace and upper-cases the check
// character so the same identity cannot register twice under "1234567-k" and
// "1234567-K".
func NormalizeRUT(rut string) string {
	return strings.ToUpper(strings.TrimSpace(rut))
}

// ValidRUT reports whether the (already normalized) RUT has a valid shape.
func ValidRUT(rut string) bool {
	return rutPattern.MatchString(rut)
}
