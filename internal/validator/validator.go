package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// trans is the singleton English translator for validation errors.
	trans ut.Translator

	// validate checks models right before they reach the database.
	validate *govalidator.Validate

	once sync.Once
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Notice renders the field error as a single human-readable line.
func (fe FieldError) Notice() string {
	if fe.Value == "" {
		return fe.Message
	}
	return fmt.Sprintf("%s (got %q)", fe.Message, fe.Value)
}

// ValidationError is returned by the store layer when a model fails its rules.
// Handlers match it with errors.As and re-render the originating form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldMap returns field name → message, the shape used by JSON error bodies.
func (e *ValidationError) FieldMap() map[string]string {
	fields := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		fields[f.Field] = f.Message
	}
	return fields
}

// Setup registers English translations on both Gin's binding engine and the
// model validator. Call once during application startup; safe to call again.
func Setup() {
	once.Do(func() {
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")

		validate = govalidator.New(govalidator.WithRequiredStructEnabled())
		configure(validate)

		if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
			configure(v)
		}
	})
}

func configure(v *govalidator.Validate) {
	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	_ = v.RegisterTranslation("notblank", trans,
		func(ut ut.Translator) error {
			return ut.Add("notblank", "{0} must not be blank", true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			t, _ := ut.T("notblank", fe.Field())
			return t
		},
	)
}

// Struct validates a model against its `validate` tags. It returns nil or a
// *ValidationError; any other failure (e.g. a non-struct) is returned as-is.
func Struct(v interface{}) error {
	Setup()

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Value:   fmt.Sprint(fe.Value()),
			Tag:     fe.Tag(),
			Message: fe.Translate(trans),
		})
	}
	return out
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	var own *ValidationError
	if errors.As(err, &own) {
		return own.FieldMap()
	}

	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// PayloadError is a request body that could not be bound. Fields holds the
// translated per-field messages, or a single "detail" entry.
type PayloadError struct {
	Err    error
	Fields map[string]string
}

func (e *PayloadError) Error() string { return "bind request: " + e.Err.Error() }

func (e *PayloadError) Unwrap() error { return e.Err }

// Bind binds the request body (form or JSON, by Content-Type) into dst.
// Failures come back as a *PayloadError.
func Bind(c *gin.Context, dst interface{}) error {
	Setup()

	if err := c.ShouldBind(dst); err != nil {
		return &PayloadError{Err: err, Fields: TranslateErrors(err)}
	}
	return nil
}
