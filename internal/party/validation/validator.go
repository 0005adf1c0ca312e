// Package validation checks raw party payloads before they are normalized.
//
// Every field is checked independently against an ordered rule table. The
// first failing check of a field is reported, so a payload yields at most one
// violation per field, in table order.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"partyhub/internal/party/models"
	dErrors "partyhub/pkg/domain-errors"
)

const DefaultPhoneRegion = "US"

// Validator applies the per-variant rule tables.
type Validator struct {
	tags        *validator.Validate
	phoneRegion string
}

type Option func(*Validator)

// WithPhoneRegion sets the region used to interpret national phone numbers.
func WithPhoneRegion(region string) Option {
	return func(v *Validator) {
		if region != "" {
			v.phoneRegion = strings.ToUpper(region)
		}
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{
		tags:        validator.New(validator.WithRequiredStructEnabled()),
		phoneRegion: DefaultPhoneRegion,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns the violations found in payload, or nil when it is
// accepted. Required-with-alias rules apply in create mode only.
func (v *Validator) Validate(kind models.Kind, payload map[string]any, mode models.Mode) []dErrors.FieldViolation {
	var violations []dErrors.FieldViolation
	for _, r := range rulesFor(kind) {
		if msg := v.evaluate(r, payload, mode); msg != "" {
			violations = append(violations, dErrors.FieldViolation{Field: r.field, Message: msg})
		}
	}
	return violations
}

// Check validates payload and wraps any violations in a validation error.
func (v *Validator) Check(kind models.Kind, payload map[string]any, mode models.Mode) error {
	if violations := v.Validate(kind, payload, mode); len(violations) > 0 {
		return dErrors.Validation("Validation failed", violations)
	}
	return nil
}

func (v *Validator) evaluate(r rule, payload map[string]any, mode models.Mode) string {
	if mode == models.ModeCreate && len(r.oneOf) > 0 && !anySupplied(payload, r.oneOf) {
		return r.requiredMsg
	}
	value, ok := lookup(payload, r.field)
	if !ok {
		return ""
	}
	for _, c := range r.checks {
		if msg := c(v, value, payload); msg != "" {
			return msg
		}
	}
	return ""
}

// lookup treats an explicit JSON null like an absent key.
func lookup(payload map[string]any, key string) (any, bool) {
	value, ok := payload[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

func anySupplied(payload map[string]any, keys []string) bool {
	for _, k := range keys {
		value, ok := lookup(payload, k)
		if !ok {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		return true
	}
	return false
}
