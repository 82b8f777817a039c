package model

// Toast variants.
const (
	ToastDefault     = "default"
	ToastDestructive = "destructive"
)

// Toast is a transient notification shown after an action.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

// Destructive reports whether the toast signals a failure.
func (t Toast) Destructive() bool {
	return t.Variant == ToastDestructive
}

// ContactFormState is the rendered state of the contact form.
type ContactFormState struct {
	Name    string
	Email   string
	Subject string
	Reason  string
	Message string
	Errors  ContactFormErrors
}

// ContactFormErrors flags fields that failed validation.
type ContactFormErrors struct {
	Name    bool
	Email   bool
	Message bool
	Reason  bool
}

// Any reports whether at least one field is flagged.
func (e ContactFormErrors) Any() bool {
	return e.Name || e.Email || e.Message || e.Reason
}

// ReasonOption is one choice in the reason select.
type ReasonOption struct {
	Value    string
	Label    string
	Selected bool
}

// Project is a portfolio entry rendered on the home page.
type Project struct {
	Title       string
	Description string
	Link        string
	Frontend    []string
	Backend     []string
}

// SkillGroup is a labelled list of skills.
type SkillGroup struct {
	Label  string
	Skills []string
}

// SocialLink points at an external profile.
type SocialLink struct {
	Label string
	Href  string
}
