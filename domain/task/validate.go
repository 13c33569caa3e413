package task

import (
	"strings"
	"unicode/utf8"
)

// Payload is the raw client-supplied input for create and update.
// An empty string means the field was omitted.
type Payload struct {
	Title       string
	Description string
	Priority    string
	Status      string
}

// Validate runs the ordered payload checks, returning on the first failure:
// title must be present and non-empty after trimming, and priority/status
// must be inside their enumerations when supplied. Length limits are
// enforced by NewDraft, not here.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return missingField("title")
	}
	if p.Priority != "" && !Priority(p.Priority).Valid() {
		return invalidEnum("priority")
	}
	if p.Status != "" && !Status(p.Status).Valid() {
		return invalidEnum("status")
	}
	return nil
}

// Draft is a validated, defaulted task body ready to be stored.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	Status      Status
}

// NewDraft validates the payload and builds a draft with trimmed text and
// defaults applied for omitted optional fields. Length violations are
// collected across all fields and reported together.
func NewDraft(p Payload) (Draft, error) {
	if err := p.Validate(); err != nil {
		return Draft{}, err
	}

	d := Draft{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Priority:    PriorityMedium,
		Status:      StatusPending,
	}
	if p.Priority != "" {
		d.Priority = Priority(p.Priority)
	}
	if p.Status != "" {
		d.Status = Status(p.Status)
	}

	var long []string
	if utf8.RuneCountInString(d.Title) > TitleMaxLen {
		long = append(long, "title")
	}
	if utf8.RuneCountInString(d.Description) > DescriptionMaxLen {
		long = append(long, "description")
	}
	if len(long) > 0 {
		return Draft{}, schemaViolation(long)
	}
	return d, nil
}
