package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/gin-gonic/gin/binding"

	"github.com/go-playground/validator/v10"
)

var (
	val  *validator.Validate
	once sync.Once
)

var validationMessages = map[string]string{
	"required": "is required",
	"notblank": "is required",
	"url":      "must be a valid URL",
	"number":   "must be a number",
	"oneof":    "must be one of the allowed values: %s",
	"min":      "must be greater than or equal to %s",
	"max":      "must be less than or equal to %s",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"nefield":  "must not be equal to the value of the %s field",
	"enum":     "must be one of the allowed enum values: %s",
}

func Setup() error {
	var setupErr error
	once.Do(func() {
		setupErr = setup()
	})
	return setupErr
}

func setup() error {
	val = validator.New(validator.WithRequiredStructEnabled())

	if err := registerValidations(val); err != nil {
		return fmt.Errorf("failed to register custom validations: %w", err)
	}

	val.RegisterTagNameFunc(jsonTagName)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := registerValidations(v); err != nil {
			return fmt.Errorf("failed to register custom validations in Gin engine: %w", err)
		}
	} else {
		return fmt.Errorf("failed to get validation engine")
	}

	return nil
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func registerValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("enum", enum.ValidateEnum); err != nil {
		return fmt.Errorf("failed to register enum validation: %w", err)
	}
	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		return fmt.Errorf("failed to register notblank validation: %w", err)
	}
	return nil
}

// validateNotBlank rejects strings that are empty after trimming.
func validateNotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

// Validate checks payload and returns an *apperror.AppError naming the
// first failing field, in struct declaration order.
func Validate(payload interface{}) error {
	if err := Setup(); err != nil {
		return err
	}

	if err := val.Struct(payload); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) || len(errs) == 0 {
			return err
		}

		first := errs[0]
		if first.Tag() == "required" || first.Tag() == "notblank" {
			e := apperror.NewValidationError(first.Field())
			e.Err = errors.New("Validation failed: " + parsingErrorValidate(err))
			return e
		}
		e := apperror.NewValidationMessage(first.Field(), fmt.Sprintf("%s %s", first.Field(), message(first)))
		e.Err = errors.New("Validation failed: " + parsingErrorValidate(err))
		return e
	}

	return nil
}

func message(e validator.FieldError) string {
	msg, ok := validationMessages[e.Tag()]
	if !ok {
		return "is invalid"
	}
	switch e.Tag() {
	case "enum":
		msg = fmt.Sprintf(msg, e.Type())
	default:
		if strings.Contains(msg, "%s") {
			msg = fmt.Sprintf(msg, e.Param())
		}
	}
	return msg
}

func parsingErrorValidate(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var sb strings.Builder
		for _, e := range errs {
			sb.WriteString(fmt.Sprintf("%s: %s %s", e.Namespace(), e.Field(), message(e)))
			sb.WriteString(", ")
		}
		return strings.TrimSuffix(sb.String(), ", ")
	}
	return err.Error()
}
