// Package contact validates contact form submissions and forwards them to the
// backend exactly once.
package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/williambechay/portfolio/internal/backend"
)

// Reason classifies why the visitor is getting in touch.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonProject       Reason = "project"
	ReasonBug           Reason = "bug"
	ReasonCollaboration Reason = "collaboration"
	ReasonGeneral       Reason = "general"
)

// Reasons lists the selectable reasons in display order.
var Reasons = []Reason{ReasonProject, ReasonBug, ReasonCollaboration, ReasonGeneral}

// Valid reports whether r is empty or one of Reasons.
func (r Reason) Valid() bool {
	if r == ReasonNone {
		return true
	}
	for _, known := range Reasons {
		if r == known {
			return true
		}
	}
	return false
}

// Submission is one contact form payload.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Reason  Reason
	Message string
}

// Field names a submission field.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
	FieldReason  Field = "reason"
)

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("contact: invalid submission")

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Missing []Field
	Invalid []Field
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+joinFields(e.Missing))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+joinFields(e.Invalid))
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalid) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Has reports whether f failed validation.
func (e *ValidationError) Has(f Field) bool {
	for _, list := range [][]Field{e.Missing, e.Invalid} {
		for _, got := range list {
			if got == f {
				return true
			}
		}
	}
	return false
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Validate checks that name, email and message are non-blank and that the
// reason is known. It returns nil or a *ValidationError.
func Validate(s Submission) error {
	var verr ValidationError
	if strings.TrimSpace(s.Name) == "" {
		verr.Missing = append(verr.Missing, FieldName)
	}
	if strings.TrimSpace(s.Email) == "" {
		verr.Missing = append(verr.Missing, FieldEmail)
	}
	if strings.TrimSpace(s.Message) == "" {
		verr.Missing = append(verr.Missing, FieldMessage)
	}
	if !s.Reason.Valid() {
		verr.Invalid = append(verr.Invalid, FieldReason)
	}
	if len(verr.Missing) == 0 && len(verr.Invalid) == 0 {
		return nil
	}
	return &verr
}

// Payload converts s into the row sent to the backend. Values are passed
// through unchanged.
func (s Submission) Payload() backend.NewMessage {
	return backend.NewMessage{
		Name:    s.Name,
		Email:   s.Email,
		Subject: s.Subject,
		Reason:  string(s.Reason),
		Message: s.Message,
	}
}
