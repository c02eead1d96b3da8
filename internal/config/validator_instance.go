package config

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern     = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	presetNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	cssPrefixPattern  = regexp.MustCompile(`^(?:--)?[a-zA-Z][a-zA-Z0-9-]*$`)
	cssLengthPattern  = regexp.MustCompile(`^(?:0|\d*\.?\d+(?:px|rem|em|%|vh|vw|ch|ex|pt))$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(yamlTagName)

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("preset_name", func(fl validator.FieldLevel) bool {
			return presetNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("css_prefix", func(fl validator.FieldLevel) bool {
			return cssPrefixPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("css_length", func(fl validator.FieldLevel) bool {
			return cssLengthPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
