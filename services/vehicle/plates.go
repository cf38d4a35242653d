package vehicle

import (
	"regexp"
	"strings"
)

// UK registration plate shapes. A lookup is only attempted when the
// normalized input matches one of these.
var platePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{3}$`), // current (AB12 CDE)
	regexp.MustCompile(`^[A-Z][0-9]{1,3}[A-Z]{3}$`),  // prefix letter (A123 BCD)
	regexp.MustCompile(`^[A-Z]{3}[0-9]{1,3}[A-Z]$`),  // suffix letter (ABC 123D)
	regexp.MustCompile(`^[0-9]{1,4}[A-Z]{1,3}$`),     // dateless, numbers first
	regexp.MustCompile(`^[A-Z]{1,3}[0-9]{1,4}$`),     // dateless, letters first
}

// NormalizeRegistration uppercases a plate and strips all whitespace.
func NormalizeRegistration(reg string) string {
	return strings.ToUpper(strings.Join(strings.Fields(reg), ""))
}

// IsValidPlate reports whether a normalized registration matches a known
// UK plate shape.
func IsValidPlate(normalized string) bool {
	for _, pattern := range platePatterns {
		if pattern.MatchString(normalized) {
			return true
		}
	}
	return false
}
