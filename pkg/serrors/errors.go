package serrors

import (
	"fmt"

	"github.com/iota-uz/go-i18n/v2/i18n"
)

// BaseError is the unit of the error taxonomy: a stable machine code, a
// developer-facing message and an optional locale key for user-facing text.
type BaseError struct {
	Code      string
	Message   string
	LocaleKey string
}

func (e *BaseError) Error() string {
	return e.Message
}

// Localize renders the user-facing text for the error. Falls back to the raw
// message when no locale key is set or the localizer misses.
func (e *BaseError) Localize(l *i18n.Localizer) string {
	if e.LocaleKey == "" {
		return e.Message
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: e.LocaleKey})
	if err != nil {
		return e.Message
	}
	return msg
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

// FieldRequiredError signals a missing required field on a write operation.
type FieldRequiredError struct {
	BaseError
	Field string
}

func NewFieldRequiredError(field, localeKey string) *FieldRequiredError {
	return &FieldRequiredError{
		BaseError: BaseError{
			Code:      "FIELD_REQUIRED",
			Message:   fmt.Sprintf("field %q is required", field),
			LocaleKey: localeKey,
		},
		Field: field,
	}
}

// NotFoundError carries the key that failed to resolve.
type NotFoundError struct {
	BaseError
	Key string
}

func NewNotFoundError(key, localeKey string) *NotFoundError {
	return &NotFoundError{
		BaseError: BaseError{
			Code:      "NOT_FOUND",
			Message:   fmt.Sprintf("%q not found", key),
			LocaleKey: localeKey,
		},
		Key: key,
	}
}

// ValidationErrors maps field names to their validation failures.
type ValidationErrors map[string]*BaseError

// LocalizeValidationErrors renders each field error through the localizer.
func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		out[field] = err.Localize(l)
	}
	return out
}
