package checkout

import (
	"regexp"
	"strings"

	"github.com/makishop/storefront/internal/domain"
)

var (
	emailPattern      = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	nationalIDPattern = regexp.MustCompile(`^\d{8}$`)
	phonePattern      = regexp.MustCompile(`^\d{9}$`)
	nonDigits         = regexp.MustCompile(`\D`)
)

// Field names used as keys in the validation result.
const (
	FieldEmail          = "email"
	FieldDocumentNumber = "document_number"
	FieldFirstNames     = "first_names"
	FieldLastNames      = "last_names"
	FieldPhone          = "phone"
	FieldRecipientName  = "recipient_name"
)

// stripSeparators drops everything that is not a digit, so "987,654,321"
// validates the same as "987654321".
func stripSeparators(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

// Validate checks the buyer form and returns per-field error messages. An
// empty map means the form is valid. Purely local, no network calls.
func Validate(form domain.BuyerForm) map[string]string {
	errs := make(map[string]string)

	if form.Email == "" {
		errs[FieldEmail] = "email is required"
	} else if !emailPattern.MatchString(form.Email) {
		errs[FieldEmail] = "email is not valid"
	}

	if form.DocumentNumber == "" {
		errs[FieldDocumentNumber] = "document number is required"
	} else if form.DocumentType == domain.DocumentNationalID &&
		!nationalIDPattern.MatchString(stripSeparators(form.DocumentNumber)) {
		errs[FieldDocumentNumber] = "national ID must have 8 digits"
	}

	if strings.TrimSpace(form.FirstNames) == "" {
		errs[FieldFirstNames] = "first names are required"
	} else if len(strings.TrimSpace(form.FirstNames)) < 2 {
		errs[FieldFirstNames] = "first names must have at least 2 characters"
	}

	if strings.TrimSpace(form.LastNames) == "" {
		errs[FieldLastNames] = "last names are required"
	} else if len(strings.TrimSpace(form.LastNames)) < 2 {
		errs[FieldLastNames] = "last names must have at least 2 characters"
	}

	if form.Phone == "" {
		errs[FieldPhone] = "phone is required"
	} else if !phonePattern.MatchString(stripSeparators(form.Phone)) {
		errs[FieldPhone] = "phone must have 9 digits"
	}

	if strings.TrimSpace(form.RecipientName) == "" {
		errs[FieldRecipientName] = "recipient name is required"
	} else if len(strings.TrimSpace(form.RecipientName)) < 2 {
		errs[FieldRecipientName] = "recipient name must have at least 2 characters"
	}

	return errs
}

// ClearFieldError drops the message for a single field as the shopper edits
// it, leaving the other fields' errors in place.
func ClearFieldError(errs map[string]string, field string) {
	delete(errs, field)
}
