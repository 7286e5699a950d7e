// AngelaMos | 2026
// validation.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// NewValidator returns a validator that reports json field names and knows
// the mobile_in rule for ten digit Indian mobile numbers.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	//nolint:errcheck // tag name is static and valid
	_ = v.RegisterValidation("mobile_in", func(fl validator.FieldLevel) bool {
		return IsValidMobile(fl.Field().String())
	})

	return v
}

// IsValidMobile reports whether s is a ten digit mobile number starting 6-9.
func IsValidMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}

	return strings.Join(msgs, "; ")
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf(
			"%s must be one of: %s",
			field,
			strings.ReplaceAll(fe.Param(), " ", ", "),
		)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "mobile_in":
		return field + " must be a valid 10 digit mobile number"
	default:
		return field + " is invalid"
	}
}

// DecodeJSON decodes a single JSON object from the request body into dst.
// Unknown fields, mistyped fields and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return describeDecodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ValidationError("request body must contain a single JSON object")
	}

	return nil
}

func describeDecodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return ValidationError("request body must not be empty")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return ValidationError("invalid request body")
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return ValidationError(fmt.Sprintf("%s has an invalid type", typeErr.Field))
		}
		return ValidationError("invalid request body")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return ValidationError("unknown field " + field)
	case errors.As(err, &maxErr):
		return ValidationError("request body too large")
	case IsAppError(err):
		return err
	default:
		return ValidationError("invalid request body")
	}
}

// URLParamID parses a positive integer route parameter.
func URLParamID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ValidationError("Invalid " + name)
	}

	return id, nil
}

// WriteError renders err through the shared error mapping: AppErrors keep
// their status, ErrNotFound becomes 404 and anything else a logged 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	if appErr, ok := AsAppError(err); ok {
		JSONError(w, appErr)
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(w, resource)
	case errors.Is(err, ErrForbidden):
		Forbidden(w, "insufficient permissions")
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(w, "")
	default:
		InternalServerError(w, r, err)
	}
}
