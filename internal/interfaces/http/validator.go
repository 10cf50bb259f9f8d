package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
)

var validate = newValidator()

// newValidator registra las reglas para decimal.Decimal:
//   - dgt0: mayor que cero
//   - dgte0: mayor o igual a cero
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("dgt0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	})
	_ = v.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && !d.IsNegative()
	})
	return v
}

// bindJSON parsea el body y valida. Si falla ya escribió la respuesta INVALID_MODEL
// y devuelve handled=true.
func bindJSON(c *fiber.Ctx, out any) (handled bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return true, fail(c, dto.CodeInvalidModel, "cuerpo inválido: "+err.Error())
	}
	if err := validate.Struct(out); err != nil {
		return true, fail(c, dto.CodeInvalidModel, validationMessage(err))
	}
	return false, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.SplitN(fe.Namespace(), ".", 2)
		name := fe.Namespace()
		if len(field) == 2 {
			name = field[1]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, name+" es requerido")
		case "dgt0":
			msgs = append(msgs, name+" debe ser mayor que cero")
		case "dgte0":
			msgs = append(msgs, name+" no puede ser negativo")
		default:
			msgs = append(msgs, fmt.Sprintf("%s no cumple %s=%s", name, fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(msgs, "; ")
}
