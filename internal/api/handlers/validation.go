package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MsgValidationFailed сообщение для ответа с ошибками по полям
const MsgValidationFailed = "ошибка валидации"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// В ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate проверяет структуру по тегам validate
// Возвращает nil, если ошибок нет, иначе map: поле -> нарушенное правило
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string]string{"non_field_errors": err.Error()}
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}
	return fields
}
