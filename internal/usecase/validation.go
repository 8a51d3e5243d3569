package usecase

import "regexp"

// Deliberately permissive: enough to avoid wasting a Brevo lookup on an
// obviously broken address, not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
