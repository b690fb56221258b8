package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldViolation describes one violated constraint on one field.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (f FieldViolation) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s (%s=%s)", f.Field, f.Rule, f.Param)
	}
	return fmt.Sprintf("%s (%s)", f.Field, f.Rule)
}

// Violations is the list of every constraint a value failed.
type Violations []FieldViolation

func (v Violations) Error() string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = f.String()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Fields returns the names of the violated fields in order.
func (v Violations) Fields() []string {
	out := make([]string, len(v))
	for i, f := range v {
		out[i] = f.Field
	}
	return out
}

// Normalizer is implemented by inputs that trim or default fields before
// their constraints are checked.
type Normalizer interface {
	Normalize()
}

// Check validates v against its binding tags and returns nil when every
// constraint holds.
func Check(v interface{}) Violations {
	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}
	return FromError(Engine().Struct(v))
}

// Decode parses a JSON payload into T, normalizes it and checks every
// constraint. The returned value is only meaningful when violations is nil.
func Decode[T any](payload []byte) (T, Violations) {
	var out T
	if len(bytes.TrimSpace(payload)) == 0 {
		return out, Violations{{Field: "body", Rule: "required"}}
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&out); err != nil {
		return out, FromError(err)
	}

	if violations := Check(&out); violations != nil {
		return out, violations
	}
	return out, nil
}

// FromError converts validation and JSON decoding errors into violations.
// It returns nil for a nil error.
func FromError(err error) Violations {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(Violations, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldViolation{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return Violations{{Field: field, Rule: "type", Param: typeErr.Type.String()}}
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return Violations{{Field: "body", Rule: "invalid"}}
	}

	return Violations{{Field: "body", Rule: "json"}}
}
