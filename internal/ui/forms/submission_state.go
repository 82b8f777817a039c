package forms

import (
	"net/http"
	"strings"

	"github.com/williambechay/portfolio/internal/contact"
	"github.com/williambechay/portfolio/internal/ui/model"
)

// Form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldReason  = "reason"
	FieldMessage = "message"
)

// ParseContactForm reads the contact fields from a posted form. Values are
// kept as typed so they can be shown again after a failed submit.
func ParseContactForm(r *http.Request) (model.ContactFormState, error) {
	if err := r.ParseForm(); err != nil {
		return model.ContactFormState{}, err
	}
	return model.ContactFormState{
		Name:    r.PostForm.Get(FieldName),
		Email:   r.PostForm.Get(FieldEmail),
		Subject: r.PostForm.Get(FieldSubject),
		Reason:  strings.TrimSpace(r.PostForm.Get(FieldReason)),
		Message: r.PostForm.Get(FieldMessage),
	}, nil
}

// Submission converts form state into a gateway submission.
func Submission(form model.ContactFormState) contact.Submission {
	return contact.Submission{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Reason:  contact.Reason(form.Reason),
		Message: form.Message,
	}
}

// Apply folds a submit result into the form. Success clears every field;
// failure keeps the input and flags invalid fields.
func Apply(form model.ContactFormState, res contact.Result) model.ContactFormState {
	if res.OK() {
		return ResetFormState()
	}
	form.Errors = ErrorsFrom(res.Err)
	return form
}

// ResetFormState returns an empty form.
func ResetFormState() model.ContactFormState {
	return model.ContactFormState{}
}
