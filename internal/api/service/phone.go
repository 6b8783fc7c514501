package service

import (
	"regexp"
	"strings"
)

var (
	countryCodePattern = regexp.MustCompile(`^\+[0-9]{1,4}$`)
	phonePattern       = regexp.MustCompile(`^[0-9]{4,15}$`)
)

// NormalizePhone drops the separators customers tend to type. The OTP
// rate limiter keys on the same form.
func NormalizePhone(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
}

// validatePhone normalizes and checks a dial code and national number.
func validatePhone(countryCode, phoneNumber string) (string, string, error) {
	countryCode = strings.TrimSpace(countryCode)
	phoneNumber = NormalizePhone(phoneNumber)

	if phoneNumber == "" {
		return "", "", invalid("phoneNumber", "Phone number is required")
	}
	if !countryCodePattern.MatchString(countryCode) {
		return "", "", invalid("countryCode", "Country code must look like +91")
	}
	if !phonePattern.MatchString(phoneNumber) {
		return "", "", invalid("phoneNumber", "Phone number must be 4 to 15 digits")
	}
	return countryCode, phoneNumber, nil
}
