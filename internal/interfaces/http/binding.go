package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los detalles de validación usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON parsea el cuerpo y valida los tags `validate` (solo forma; las reglas de negocio son del dominio).
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		if errors.Is(err, domain.ErrInvalidQuantity) {
			return err
		}
		return &requestError{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		details := make(map[string]any, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		return &requestError{Code: "VALIDATION", Message: "datos inválidos", Details: details}
	}
	return nil
}

// idParam lee un ID entero positivo de la ruta.
func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// pageQuery lee limit/offset; ausentes valen 0 (el caso de uso aplica el default).
func pageQuery(c *fiber.Ctx) (limit, offset int, err error) {
	if limit, err = queryInt(c, "limit"); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(c, "offset"); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	return n, nil
}
