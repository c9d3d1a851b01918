package utils

import (
	"regexp"
	"strings"
)

// phonePattern matches a normalized phone number: leading +, 10 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+[0-9]{10,15}$`)

// NormalizePhone strips spaces, dashes, and parentheses from a raw phone
// string and ensures a leading plus. It returns the normalized form and
// whether the result is a valid phone number.
func NormalizePhone(raw string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if cleaned == "" {
		return "", false
	}

	// Russian numbers are commonly entered starting with 8
	if strings.HasPrefix(cleaned, "8") && len(cleaned) == 11 {
		cleaned = "+7" + cleaned[1:]
	}
	if !strings.HasPrefix(cleaned, "+") {
		cleaned = "+" + cleaned
	}

	return cleaned, phonePattern.MatchString(cleaned)
}
