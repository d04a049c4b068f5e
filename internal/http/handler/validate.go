package handler

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errMalformed marks a request body that is not valid JSON for the input type.
var errMalformed = errors.New("malformed JSON body")

// validationError carries per-field messages keyed by JSON field name.
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string { return "validation failed" }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind decodes the request body into T and validates it. An empty body
// decodes to the zero value, so procedures without input accept it.
func bind[T any](c *fiber.Ctx) (T, error) {
	var in T
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		if err := c.App().Config().JSONDecoder(body, &in); err != nil {
			return in, fmt.Errorf("%w: %v", errMalformed, err)
		}
	}
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

// check runs the struct validator and converts its report into a validationError.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = message(fe)
	}
	return &validationError{fields: fields}
}

// fieldPath reports the JSON path of a failed field: "RuleInput.daysOfWeek[2]"
// becomes "daysOfWeek[2]". Embedded structs put their Go type name into the
// namespace; JSON names here start lower-case, so those segments are dropped.
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts[1:] {
		if p == "" || unicode.IsUpper(rune(p[0])) {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return fe.Field()
	}
	return strings.Join(out, ".")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return "must have at least " + fe.Param() + " items or characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return "must have at most " + fe.Param() + " items or characters"
		}
		return "must be at most " + fe.Param()
	case "hexcolor":
		return "must be a hex color"
	case "timezone":
		return "must be an IANA time zone"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
