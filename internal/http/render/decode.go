package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/biztime/internal/apperrors"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Decode reads a JSON body into dst and validates it. Fields that dst does
// not declare are rejected, which is how immutable and derived fields are
// kept out of update requests.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	if dec.More() {
		return apperrors.New(apperrors.ErrInvalidRequest, "request body must contain a single JSON object")
	}

	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}

	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, io.EOF):
		return apperrors.New(apperrors.ErrInvalidRequest, "request body is required")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return apperrors.New(apperrors.ErrInvalidRequest, fmt.Sprintf("field %s cannot be set", field))
	case errors.As(err, &typeErr):
		return apperrors.New(apperrors.ErrInvalidRequest, fmt.Sprintf("field %q has the wrong type", typeErr.Field))
	default:
		return apperrors.New(apperrors.ErrInvalidRequest, "malformed JSON: "+err.Error())
	}
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	msgs := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}

	return apperrors.New(apperrors.ErrInvalidRequest, strings.Join(msgs, "; "))
}
