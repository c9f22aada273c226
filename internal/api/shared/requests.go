package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Struct tag rules are stateless,
// so a single instance serves all handlers.
var validate = validator.New()

// DecodeJSON decodes the request body into dst and validates it against its
// struct tags. It returns a user-presentable error on malformed JSON or a
// failed validation rule.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validation failed: %s", describeValidationError(err))
	}
	return nil
}

// Validate runs struct tag validation on an already-decoded value.
func Validate(dst interface{}) error {
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validation failed: %s", describeValidationError(err))
	}
	return nil
}

// describeValidationError flattens validator errors into a short field list.
func describeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
