package dto

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorsFrom traduz os erros do validator usados pelo binding do gin
func ValidationErrorsFrom(c *gin.Context, err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe)
		params := map[string]interface{}{"Field": field, "Param": fe.Param()}

		key := "validation." + fe.Tag()
		message := T(c, key, params)
		if message == key {
			message = T(c, "validation.invalid", params)
		}

		out = append(out, ValidationError{
			Field:   field,
			Message: message,
			Tag:     fe.Tag(),
		})
	}
	return out
}

// jsonFieldName converte o nome do campo Go para snake_case como aparece no JSON
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
