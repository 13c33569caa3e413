package task

import "github.com/google/uuid"

// NewID mints a task identifier. Callers treat the format as opaque.
func NewID() string {
	return uuid.New().String()
}

// ParseID checks a caller-supplied identifier and returns it in canonical
// form, or an invalid-id failure when the store cannot interpret it.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", invalidID()
	}
	return id.String(), nil
}
