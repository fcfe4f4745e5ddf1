// Package validation envuelve go-playground/validator con las reglas y los
// mensajes (en alemán) que usan los formularios del portal.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// phoneRe mismo patrón que el formulario original: dígitos, +, -, espacios y paréntesis.
var phoneRe = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// Validator valida structs con etiquetas `validate` y devuelve mensajes por campo.
type Validator struct {
	v *validator.Validate
}

// New registra nombres JSON, el tipo decimal y la regla "phone".
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || phoneRe.MatchString(s)
	})
	return &Validator{v: v}
}

// Fields valida s y devuelve un mapa campo→mensaje; vacío si es válido.
func (x *Validator) Fields(s any) (map[string]string, error) {
	out := map[string]string{}
	err := x.v.Struct(s)
	if err == nil {
		return out, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validación: %w", err)
	}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Dieses Feld ist erforderlich"
	case "email":
		return "Bitte geben Sie eine gültige E-Mail-Adresse ein"
	case "phone":
		return "Bitte geben Sie eine gültige Telefonnummer ein"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Mindestens %s Zeichen", fe.Param())
		}
		return fmt.Sprintf("Der Wert muss mindestens %s sein", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Höchstens %s Zeichen", fe.Param())
		}
		return fmt.Sprintf("Der Wert darf höchstens %s sein", fe.Param())
	case "gte":
		return fmt.Sprintf("Der Wert muss mindestens %s sein", fe.Param())
	case "gtefield":
		return "Das Enddatum darf nicht vor dem Startdatum liegen"
	default:
		return "Ungültiger Wert"
	}
}
