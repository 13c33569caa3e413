package task

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies task failures so callers can map each one to an
// externally visible response without inspecting error strings.
type Kind string

const (
	KindMissingField     Kind = "missing_field"
	KindInvalidEnum      Kind = "invalid_enum"
	KindSchemaViolation  Kind = "schema_violation"
	KindNotFound         Kind = "not_found"
	KindInvalidID        Kind = "invalid_id"
	KindStoreUnavailable Kind = "store_unavailable"
)

// Error is the typed failure returned by every task operation.
// Fields names the offending payload fields where that applies.
type Error struct {
	Kind   Kind
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("missing required field %q", e.Fields[0])
	case KindInvalidEnum:
		return fmt.Sprintf("invalid value for field %q", e.Fields[0])
	case KindSchemaViolation:
		return "field length limits exceeded: " + strings.Join(e.Fields, ", ")
	case KindNotFound:
		return "task not found"
	case KindInvalidID:
		return "invalid task id"
	case KindStoreUnavailable:
		if e.Err != nil {
			return fmt.Sprintf("task store unavailable: %v", e.Err)
		}
		return "task store unavailable"
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried by err, or "" if err is not a task error.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}

func missingField(field string) *Error {
	return &Error{Kind: KindMissingField, Fields: []string{field}}
}

func invalidEnum(field string) *Error {
	return &Error{Kind: KindInvalidEnum, Fields: []string{field}}
}

func schemaViolation(fields []string) *Error {
	return &Error{Kind: KindSchemaViolation, Fields: fields}
}

func notFound() *Error {
	return &Error{Kind: KindNotFound}
}

func invalidID() *Error {
	return &Error{Kind: KindInvalidID}
}

func storeUnavailable(err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Err: err}
}
