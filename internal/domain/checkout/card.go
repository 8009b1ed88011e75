// Package checkout implements the payment flow: form validation, the
// gateway authorization step, and the state machine tying them together.
package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

// Card holds the raw payment form fields as the user submitted them.
type Card struct {
	Number     string
	Expiry     string
	CVV        string
	Cardholder string
}

// ValidationError is a recoverable per-field failure. Its message is shown
// to the user verbatim and the flow returns to the open form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// Validate runs the form checks in order and returns the first failure.
// Check order matters: card number, expiry, CVV, cardholder name. Each check
// gates progress independently with its own user-visible message.
func Validate(c Card) error {
	digits := stripSeparators(c.Number)
	if len(digits) < 13 || len(digits) > 19 || !allDigits(digits) {
		return &ValidationError{Field: "card_number", Message: "Please enter a valid card number."}
	}

	if !expiryPattern.MatchString(c.Expiry) {
		return &ValidationError{Field: "expiry", Message: "Please enter a valid expiry date (MM/YY)."}
	}

	if len(c.CVV) < 3 || len(c.CVV) > 4 {
		return &ValidationError{Field: "cvv", Message: "Please enter a valid CVV."}
	}

	if len(strings.TrimSpace(c.Cardholder)) < 2 {
		return &ValidationError{Field: "cardholder_name", Message: "Please enter the cardholder name."}
	}

	return nil
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatCardNumber groups the digits of a partially typed card number into
// clusters of four separated by single spaces, discarding everything else.
// Purely cosmetic; validation works on the raw value.
func FormatCardNumber(input string) string {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	s := digits.String()
	var out strings.Builder
	for i := 0; i < len(s); i += 4 {
		if i > 0 {
			out.WriteByte(' ')
		}
		end := i + 4
		if end > len(s) {
			end = len(s)
		}
		out.WriteString(s[i:end])
	}
	return out.String()
}

// FormatExpiry inserts the MM/YY separator after the second typed digit,
// keeping at most four digits.
func FormatExpiry(input string) string {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	s := digits.String()
	if len(s) > 4 {
		s = s[:4]
	}
	if len(s) >= 2 {
		return s[:2] + "/" + s[2:]
	}
	return s
}
