// Package validation checks bus messages against their validate tags.
package validation

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("validation: invalid input")

var messages = map[string]string{
	"required": "обязательное поле",
	"gte":      "должно быть не меньше {param}",
	"lte":      "должно быть не больше {param}",
	"min":      "слишком короткое значение",
	"max":      "слишком длинное значение",
	"email":    "некорректный адрес почты",
	"phone":    "некорректный номер телефона",
	"datetime": "некорректная дата",
}

// Error lists the offending fields by their form names.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return ErrInvalid }

type Validator struct {
	validate *val.Validate
}

func New() *Validator {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.Split(f.Tag.Get(tag), ",")[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	if err := v.RegisterValidation("phone", validPhone); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// Validate checks structs only; other messages pass through untouched.
func (v *Validator) Validate(_ context.Context, message any) error {
	rv := reflect.ValueOf(message)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	err := v.validate.Struct(rv.Interface())
	if err == nil {
		return nil
	}
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err
	}
	out := &Error{Fields: make(map[string]string, len(valErrors))}
	for _, fe := range valErrors {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe val.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return fe.Error()
	}
	return strings.ReplaceAll(msg, "{param}", fe.Param())
}

func validPhone(fl val.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune("+-() ", r):
		default:
			return false
		}
	}
	return digits >= 5
}
