// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9]\d{6,14}$`)
	plateRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9 -]{1,14}$`)
	vinRegex   = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`) // no I, O, Q
	skuRegex   = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{1,31}$`)
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	return phoneRegex.MatchString(cleaned)
}

// ValidateLicensePlate checks a normalized license plate
func ValidateLicensePlate(plate string) bool {
	return plateRegex.MatchString(strings.ToUpper(strings.TrimSpace(plate)))
}

// ValidateVIN checks a 17-character vehicle identification number
func ValidateVIN(vin string) bool {
	return vinRegex.MatchString(strings.ToUpper(strings.TrimSpace(vin)))
}

// ValidateSKU checks an inventory stock keeping unit code
func ValidateSKU(sku string) bool {
	return skuRegex.MatchString(strings.ToUpper(strings.TrimSpace(sku)))
}
