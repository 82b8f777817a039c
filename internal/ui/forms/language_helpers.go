package forms

import (
	"github.com/williambechay/portfolio/internal/contact"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/model"
)

var reasonKeys = map[contact.Reason]locale.Key{
	contact.ReasonProject:       locale.KeyContactFormReasonProject,
	contact.ReasonBug:           locale.KeyContactFormReasonBug,
	contact.ReasonCollaboration: locale.KeyContactFormReasonCollab,
	contact.ReasonGeneral:       locale.KeyContactFormReasonGeneral,
}

var reasonFallbacks = map[contact.Reason]string{
	contact.ReasonProject:       "New Project Inquiry",
	contact.ReasonBug:           "Bug Report",
	contact.ReasonCollaboration: "Collaboration Proposal",
	contact.ReasonGeneral:       "General Question",
}

// ReasonOptions lists the reason choices with localized labels, marking
// selected.
func ReasonOptions(tr locale.Translator, selected string) []model.ReasonOption {
	if tr == nil {
		tr = locale.Dict{}
	}
	out := make([]model.ReasonOption, 0, len(contact.Reasons))
	for _, r := range contact.Reasons {
		out = append(out, model.ReasonOption{
			Value:    string(r),
			Label:    tr.Lookup(reasonKeys[r], reasonFallbacks[r]),
			Selected: string(r) == selected,
		})
	}
	return out
}
