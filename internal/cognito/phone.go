package cognito

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// IsPhoneNumber reports whether raw looks like a phone number rather than an
// email or free text.
func IsPhoneNumber(raw string) bool {
	return NormalizePhone(raw) != ""
}

// NormalizePhone returns raw in E.164 form, or "" when it is not a possible
// number. Numbers without a country code are read as US numbers.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if !phoneCharsOnly(raw) || countDigits(raw) < 10 {
		return ""
	}

	number, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func phoneCharsOnly(raw string) bool {
	if raw == "" {
		return false
	}
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	return true
}

func countDigits(raw string) int {
	count := 0
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}
