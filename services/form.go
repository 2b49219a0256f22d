package services

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strings"
	"time"

	"student-records/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/pkg/errors"
)

// DecodeForm coerces submitted form values into dst, a pointer to one of the
// New* input structs. Values are trimmed first and blank values are dropped,
// so an empty numeric or date field counts as missing rather than zero.
// Missing fields are left for the Create validation to report.
func DecodeForm(values url.Values, dst interface{}) error {
	cleaned := make(map[string][]string, len(values))
	for key, vals := range values {
		for _, v := range vals {
			if v = utils.CleanString(v); v != "" {
				cleaned[key] = append(cleaned[key], v)
			}
		}
	}
	if err := binding.MapFormWithTag(dst, cleaned, "form"); err != nil {
		return NewValidationError(errors.Wrap(err, "invalid form value"), coercionErrors(dst, cleaned)...)
	}
	if flds := nonFiniteFields(dst); len(flds) > 0 {
		return NewValidationError(errors.New("invalid form value: non-finite number"), flds...)
	}
	return nil
}

// coercionErrors maps each submitted key on its own into a scratch value of
// dst's type to find which fields could not be coerced.
func coercionErrors(dst interface{}, values map[string][]string) []FieldError {
	typ := reflect.TypeOf(dst).Elem()
	var flds []FieldError
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		key := formName(sf)
		vals, ok := values[key]
		if key == "" || !ok {
			continue
		}
		scratch := reflect.New(typ).Interface()
		if err := binding.MapFormWithTag(scratch, map[string][]string{key: vals}, "form"); err != nil {
			flds = append(flds, FieldError{Field: key, Error: coercionMessage(key, sf.Type)})
		}
	}
	return flds
}

func coercionMessage(key string, t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch {
	case t == reflect.TypeOf(time.Time{}):
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", key)
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Uint64:
		return fmt.Sprintf("%s must be a whole number", key)
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		return fmt.Sprintf("%s must be a number", key)
	}
	return fmt.Sprintf("%s is invalid", key)
}

// nonFiniteFields reports float fields holding NaN or an infinity, which
// ParseFloat accepts but no mark can be.
func nonFiniteFields(dst interface{}) []FieldError {
	v := reflect.ValueOf(dst).Elem()
	var flds []FieldError
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				continue
			}
			f = f.Elem()
		}
		if f.Kind() != reflect.Float32 && f.Kind() != reflect.Float64 {
			continue
		}
		if x := f.Float(); math.IsNaN(x) || math.IsInf(x, 0) {
			key := formName(v.Type().Field(i))
			flds = append(flds, FieldError{Field: key, Error: key + " must be a finite number"})
		}
	}
	return flds
}

func formName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("form"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
