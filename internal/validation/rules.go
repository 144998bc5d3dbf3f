package validation

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Format rules for contact fields.
var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^(\+\d{1,3}[-. ]?)?\(?\d{1,4}\)?[-. ]?\d{1,4}[-. ]?\d{1,9}$`)
	urlPattern      = regexp.MustCompile(`^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})([/\w .-]*)*/?$`)
	linkedInPattern = regexp.MustCompile(`^(https?://)?(www\.)?linkedin\.com/in/[a-zA-Z0-9-]+/?$`)
)

// Validation tags registered on the shared validator.
const (
	TagEmail    = "cv_email"
	TagPhone    = "cv_phone"
	TagURL      = "cv_url"
	TagLinkedIn = "cv_linkedin"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the contact format tags
// registered, so struct tags at the HTTP boundary use the same rules.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		mustRegister(v, TagEmail, emailPattern)
		mustRegister(v, TagPhone, phonePattern)
		mustRegister(v, TagURL, urlPattern)
		mustRegister(v, TagLinkedIn, linkedInPattern)
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	if err != nil {
		panic("register validation " + tag + ": " + err.Error())
	}
}

// matches runs a single registered tag against value.
func matches(value, tag string) bool {
	return Validator().Var(value, tag) == nil
}
