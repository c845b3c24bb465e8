package validation

import "strings"

var phonePrefixes = []string{"+254", "254", "0"}

// ValidatePhone reports whether phone is a Kenyan number: one leading
// "+254", "254" or "0" followed by exactly 9 characters. The check is
// textual only.
func ValidatePhone(phone string) bool {
	for _, p := range phonePrefixes {
		if strings.HasPrefix(phone, p) {
			return len(phone)-len(p) == 9
		}
	}
	return false
}
