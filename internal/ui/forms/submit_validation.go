package forms

import (
	"errors"

	"github.com/williambechay/portfolio/internal/contact"
	"github.com/williambechay/portfolio/internal/ui/model"
)

// ValidateContactForm checks the provided form state for required fields and
// returns the populated error flags. Callers store them on the state if needed.
func ValidateContactForm(form *model.ContactFormState) model.ContactFormErrors {
	if form == nil {
		return model.ContactFormErrors{Name: true, Email: true, Message: true}
	}
	return ErrorsFrom(contact.Validate(Submission(*form)))
}

// ErrorsFrom maps a validation error onto field flags. Other errors flag
// nothing.
func ErrorsFrom(err error) model.ContactFormErrors {
	var verr *contact.ValidationError
	if !errors.As(err, &verr) {
		return model.ContactFormErrors{}
	}
	return model.ContactFormErrors{
		Name:    verr.Has(contact.FieldName),
		Email:   verr.Has(contact.FieldEmail),
		Message: verr.Has(contact.FieldMessage),
		Reason:  verr.Has(contact.FieldReason),
	}
}
