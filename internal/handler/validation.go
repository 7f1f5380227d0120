package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vyrodovalexey/itemserver/internal/model"
)

// maxBodyBytes bounds the size of a request body.
const maxBodyBytes = 1 << 20

// Request body errors.
var (
	errInvalidBody   = errors.New("invalid request body")
	errMalformedJSON = fmt.Errorf("%w: malformed JSON", errInvalidBody)
	errNotAnObject   = fmt.Errorf("%w: body must be a JSON object", errInvalidBody)
	errFieldType     = fmt.Errorf("%w: field has the wrong type", errInvalidBody)
	errBodyTooLarge  = fmt.Errorf("%w: body exceeds %d bytes", errInvalidBody, maxBodyBytes)
)

// newValidator creates the request validator with the item rules registered
// and JSON field names used in errors.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("item_name", validateItemName); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateItemName applies the item name byte-length bounds.
func validateItemName(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	_, err := model.NewName(field.String())
	return err == nil
}

// decodeJSONObject reads a size-limited body that must hold a single JSON
// object and unmarshals it into dst. Unknown fields are ignored.
func decodeJSONObject(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return fmt.Errorf("%w: %w", errMalformedJSON, err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotAnObject
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %q", errFieldType, typeErr.Field)
		}
		return fmt.Errorf("%w: %w", errMalformedJSON, err)
	}

	return nil
}

// bodyErrorMessage returns the client-facing message for a body error.
func bodyErrorMessage(err error) string {
	switch {
	case errors.Is(err, errBodyTooLarge):
		return fmt.Sprintf("Request body exceeds %d bytes.", maxBodyBytes)
	case errors.Is(err, errNotAnObject):
		return "Request body must be a JSON object."
	case errors.Is(err, errFieldType):
		return "Missing or invalid 'name' (string) or 'value' (number) in JSON body."
	default:
		return "Invalid JSON format in request body."
	}
}

// validationMessage describes validator failures using JSON field names.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body."
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("'%s' is required", fe.Field()))
		case "item_name":
			msgs = append(msgs, fmt.Sprintf("'%s' must be between %d and %d bytes long",
				fe.Field(), model.MinNameLength, model.MaxNameLength))
		default:
			msgs = append(msgs, fmt.Sprintf("'%s' is invalid", fe.Field()))
		}
	}

	return "Invalid request body: " + strings.Join(msgs, "; ") + "."
}
