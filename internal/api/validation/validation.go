package validation

import "regexp"

var (
	// EmailRegex validates email format
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// CEPRegex validates Brazilian postal codes like "01310-100" or "01310100"
	cepRegex = regexp.MustCompile(`^\d{5}-?\d{3}$`)

	// PhoneRegex validates phone numbers with 10 or 11 digits, optional country code
	phoneRegex = regexp.MustCompile(`^(\+?55)?\d{10,11}$`)

	// UUIDRegex validates UUID format
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// IsValidEmail checks if the string is a valid email format
func IsValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidCEP checks if the string is a valid postal code format
func IsValidCEP(cep string) bool {
	return cepRegex.MatchString(cep)
}

// IsValidPhone checks if the string is a valid phone number format
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsValidUUID checks if the string is a valid UUID format
func IsValidUUID(id string) bool {
	return uuidRegex.MatchString(id)
}
