package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quarter-service/internal/domain"
	"github.com/jsamuelsen/quarter-service/internal/quarter"
)

var (
	// ErrValidation wraps validator failures of a bound request.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps malformed JSON bodies and unparsable parameters.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field errors are named after the
// json tag and the quarter tags instant, offset and quarterlabel are
// registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}

			return name
		})

		for tag, fn := range map[string]validator.Func{
			"instant":      validateInstant,
			"offset":       validateOffset,
			"quarterlabel": validateQuarterLabel,
		} {
			if err := validate.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("dto: registering %s validator: %v", tag, err))
			}
		}
	})

	return validate
}

// Validate runs the struct tags of v.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	return bindAndValidate(v, c.ShouldBindJSON)
}

// BindQueryAndValidate binds query parameters into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	return bindAndValidate(v, c.ShouldBindQuery)
}

// BindPathAndValidate binds path then query parameters into v and validates it.
func BindPathAndValidate(c *gin.Context, v any) error {
	return bindAndValidate(v, c.ShouldBindUri, c.ShouldBindQuery)
}

func bindAndValidate(v any, binders ...func(any) error) error {
	for _, bind := range binders {
		if err := bind(v); err != nil {
			return fmt.Errorf("%w: %w", ErrBinding, err)
		}
	}

	return Validate(v)
}

// IsValidationError reports whether err carries validator field errors.
func IsValidationError(err error) bool {
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &fieldErrs)
}

// ValidationErrors returns one message per failed field, keyed by json name.
// It returns an empty map for errors without field errors.
func ValidationErrors(err error) map[string]string {
	details := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[fe.Field()] = validationMessage(fe)
		}
	}

	return details
}

var validationMessages = map[string]string{
	"required":     "this field is required",
	"instant":      "must be an RFC 3339 timestamp or YYYY-MM-DD date",
	"quarterlabel": "must look like 2023-Q1",
	"offset":       "must be previous, current or next",
	"timezone":     "must be an IANA time zone name",
	"gte":          "must be greater than or equal to {param}",
	"lte":          "must be less than or equal to {param}",
	"gt":           "must be greater than {param}",
	"lt":           "must be less than {param}",
	"oneof":        "must be one of: {param}",
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return "must be at least " + fe.Param() + lengthUnit(fe.Kind())
	case "max":
		return "must be at most " + fe.Param() + lengthUnit(fe.Kind())
	}

	if msg, ok := validationMessages[fe.Tag()]; ok {
		return strings.ReplaceAll(msg, "{param}", fe.Param())
	}

	return "failed validation: " + fe.Tag()
}

// lengthUnit qualifies min and max on strings, which count characters.
func lengthUnit(kind reflect.Kind) string {
	if kind == reflect.String {
		return " characters"
	}

	return ""
}

// validateInstant accepts RFC 3339 timestamps and YYYY-MM-DD dates. Empty
// passes; combine with required when the field is mandatory.
func validateInstant(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	_, err := domain.ParseInstant(value, nil)

	return err == nil
}

// validateOffset accepts previous, current and next and their -1, 0, 1
// spellings. Empty means current.
func validateOffset(fl validator.FieldLevel) bool {
	_, err := domain.ParseOffset(fl.Field().String())
	return err == nil
}

func validateQuarterLabel(fl validator.FieldLevel) bool {
	_, err := quarter.Parse(fl.Field().String())
	return err == nil
}
