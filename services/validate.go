package services

import (
	stderrors "errors"
	"math"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	requiredTag  = "required"
	requiredText = "{0} is required"

	finiteTag  = "finite"
	finiteText = "{0} must be a finite number"
)

// Instantiate the validator for use. Input structs share their rules with
// gin's binding tag so the same struct can be bound and validated.
func init() {
	validate = validator.New()
	validate.SetTagName("binding")

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use form field names in messages instead of Go struct names.
	validate.RegisterTagNameFunc(formName)

	_ = validate.RegisterValidation(finiteTag, func(fl validator.FieldLevel) bool {
		x := fl.Field().Float()
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	})

	_ = validate.RegisterTranslation(requiredTag, translator,
		func(t ut.Translator) error { return t.Add(requiredTag, requiredText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(requiredTag, fe.Field())
			return s
		},
	)
	_ = validate.RegisterTranslation(finiteTag, translator,
		func(t ut.Translator) error { return t.Add(finiteTag, finiteText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(finiteTag, fe.Field())
			return s
		},
	)
}

// validateInput checks in against its binding rules and returns a
// *ValidationError listing every failing field.
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !stderrors.As(err, &vErrs) {
		return NewValidationError(err)
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		flds = append(flds, FieldError{Field: fe.Field(), Error: fe.Translate(translator)})
	}
	return NewValidationError(err, flds...)
}
