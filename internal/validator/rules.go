package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var referralCodeRe = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// registerCustomRules adds project-specific validation tags.
func registerCustomRules(v *validator.Validate) error {
	// referralcode: the 8-character uppercase alphanumeric referral code
	// minted by the referral service.
	return v.RegisterValidation("referralcode", func(fl validator.FieldLevel) bool {
		return referralCodeRe.MatchString(fl.Field().String())
	})
}

// RegisterGinRules installs the custom rules into gin's binding engine so
// `binding:"referralcode"` tags work in request structs.
func RegisterGinRules() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return registerCustomRules(v)
	}
	return nil
}
