package yaml

import (
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/reflectwalk"
	"reflect"
	"strings"
)

var (
	Validator = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	// app names end up in output file names
	_ = v.RegisterValidation("appname", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
	})
	return v
}

type structValidationWalker struct {
}

func (w *structValidationWalker) Struct(v reflect.Value) error {
	v2 := v.Interface()
	err := Validator.Struct(v2)
	if err != nil {
		return err
	}
	return nil
}

func (w *structValidationWalker) StructField(reflect.StructField, reflect.Value) error {
	return nil
}

func ValidateStructs(s interface{}) error {
	return reflectwalk.Walk(s, &structValidationWalker{})
}
