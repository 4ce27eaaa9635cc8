// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `New` calls `validateOptions` after defaults are applied.  An invalid
// `Options` value is the only error the resolver ever returns; source
// failures during resolution are logged and never surface.
//
// Custom rules
// ------------
//   • `encoding` – the value must be accepted by properties.ParseEncoding.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/AdeptTravel/confresolver/internal/properties"
)

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("encoding", func(fl validator.FieldLevel) bool {
		_, err := properties.ParseEncoding(fl.Field().String())
		return err == nil
	})
	return val
}

//
// public API
//

// validateOptions returns the first validation error, or nil on success.
func validateOptions(o *Options) error {
	return v.Struct(o)
}
