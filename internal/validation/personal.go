package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-builder/internal/types"
)

const minFullNameLength = 2

// ValidatePersonalInfo checks the personal info record and returns one entry
// per invalid field. Optional fields are only checked when non-empty.
func ValidatePersonalInfo(info types.PersonalInfo) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(info.FullName)
	switch {
	case name == "":
		errs["fullName"] = FieldError{Code: CodeRequired, Message: "Full name is required"}
	case utf8.RuneCountInString(name) < minFullNameLength:
		errs["fullName"] = FieldError{Code: CodeTooShort, Message: "Name must be at least 2 characters"}
	}

	switch {
	case strings.TrimSpace(info.Email) == "":
		errs["email"] = FieldError{Code: CodeRequired, Message: "Email is required"}
	case !matches(info.Email, TagEmail):
		errs["email"] = FieldError{Code: CodeInvalidFormat, Message: "Please enter a valid email"}
	}

	if info.Phone != "" && !matches(info.Phone, TagPhone) {
		errs["phone"] = FieldError{Code: CodeInvalidFormat, Message: "Please enter a valid phone number"}
	}

	if info.LinkedIn != "" && !matches(info.LinkedIn, TagLinkedIn) {
		errs["linkedIn"] = FieldError{Code: CodeInvalidFormat, Message: "Please enter a valid LinkedIn URL"}
	}

	if info.Portfolio != "" && !matches(info.Portfolio, TagURL) {
		errs["portfolio"] = FieldError{Code: CodeInvalidFormat, Message: "Please enter a valid portfolio URL"}
	}

	return errs
}
