package admin

import (
	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/locale"
)

// Placeholder is shown for an empty subject or reason.
const Placeholder = "-"

// Row is one stored message ready for display.
type Row struct {
	ID      int64
	Name    string
	Email   string
	Reason  string
	Subject string
	Message string
	Date    string
}

// ShortDateLayout returns the numeric date layout used for lang.
func ShortDateLayout(lang locale.Language) string {
	if lang == locale.French {
		return "02/01/2006"
	}
	return "1/2/2006"
}

// Project maps stored messages to display rows, preserving order. Reasons
// are localised through contact.form.reason.<value>, falling back to the raw
// value; dates use the language's short numeric form in the timestamp's own
// location.
func Project(messages []backend.StoredMessage, tr locale.Translator, lang locale.Language) []Row {
	if tr == nil {
		tr = locale.Dict{}
	}
	layout := ShortDateLayout(lang)
	rows := make([]Row, 0, len(messages))
	for _, msg := range messages {
		row := Row{
			ID:      msg.ID,
			Name:    msg.Name,
			Email:   msg.Email,
			Reason:  Placeholder,
			Subject: msg.Subject,
			Message: msg.Message,
		}
		if msg.Reason != "" {
			row.Reason = tr.Lookup(locale.Key("contact.form.reason."+msg.Reason), msg.Reason)
		}
		if row.Subject == "" {
			row.Subject = Placeholder
		}
		if !msg.CreatedAt.IsZero() {
			row.Date = msg.CreatedAt.Format(layout)
		}
		rows = append(rows, row)
	}
	return rows
}
