package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Форматы, которые принимают формы админки
var (
	percentPattern       = regexp.MustCompile(`^\d+%$`)
	groupedAmountPattern = regexp.MustCompile(`^\d+(,\d{3})*$`)
	pricePattern         = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	digitsPattern        = regexp.MustCompile(`^\d+$`)
)

// FieldErrors - сообщения об ошибках по имени поля формы (json тег)
type FieldErrors map[string]string

// Valid - ошибок нет
func (f FieldErrors) Valid() bool {
	return len(f) == 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Ошибки отдаем по имени поля из json тега, как его видит UI
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// required пропускает "   ", notblank - нет
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
	mustRegister(v, "percent", percentPattern)
	mustRegister(v, "grouped_amount", groupedAmountPattern)
	mustRegister(v, "price", pricePattern)
	mustRegister(v, "digits", digitsPattern)

	return v
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
	}
}

// Validate проверяет значения формы локально, без обращения к сети
// Пустой результат означает, что форму можно отправлять
func Validate(form interface{}) FieldErrors {
	fields := FieldErrors{}

	err := validate.Struct(form)
	if err == nil {
		return fields
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["_form"] = err.Error()
		return fields
	}

	for _, fe := range validationErrors {
		if _, exists := fields[fe.Field()]; !exists {
			fields[fe.Field()] = msgForTag(fe)
		}
	}
	return fields
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "percent":
		return "must be a whole percentage like 10%"
	case "grouped_amount":
		return "must be a whole amount like 5,000"
	case "price":
		return "must be a non-negative amount with up to 2 decimals"
	case "digits":
		return "must contain digits only"
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
