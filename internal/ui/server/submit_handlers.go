package server

import (
	"errors"
	"net/http"

	"github.com/williambechay/portfolio/internal/contact"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/forms"
	"github.com/williambechay/portfolio/internal/ui/model"
)

func (s *server) contactPage(r *http.Request, store *locale.Store, token string, form model.ContactFormState, toast *model.Toast) contactPageData {
	base := s.basePage(r, store, locale.KeyContactMetaTitle, locale.KeyContactMetaDescription)
	base.Toast = toast
	return contactPageData{
		basePageData: base,
		FormToken:    token,
		Form:         form,
		Reasons:      forms.ReasonOptions(store, form.Reason),
		Social:       s.catalog.Social,
	}
}

func (s *server) handleContact(w http.ResponseWriter, r *http.Request) {
	store := s.localeFor(w, r)
	if store == nil {
		return
	}
	var toast *model.Toast
	if r.URL.Query().Get("sent") == "1" {
		t := contact.SuccessToast(store)
		toast = &t
	}
	s.render(w, r, "contact", http.StatusOK, s.contactPage(r, store, newFormToken(), forms.ResetFormState(), toast))
}

// handleContactSubmit sends the form once per form token. A repeat POST
// while the first is outstanding waits for it instead of inserting again,
// and a repeat after success only redirects.
func (s *server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	store := s.localeFor(w, r)
	if store == nil {
		return
	}
	form, err := forms.ParseContactForm(r)
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	token, flight := s.contactForms.claim(r.PostForm.Get(formTokenField))

	if errs := forms.ValidateContactForm(&form); errs.Any() {
		form.Errors = errs
		toast := s.invalidContactToast(store)
		s.render(w, r, "contact", http.StatusUnprocessableEntity, s.contactPage(r, store, token, form, &toast))
		return
	}

	res, ok := s.submitContact(r, flight, form)
	if !ok {
		return
	}
	if res.OK() {
		http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
		return
	}

	form = forms.Apply(form, res)
	toast := contact.ErrorToast(store)
	status := http.StatusBadGateway
	if errors.Is(res.Err, contact.ErrInvalid) {
		status = http.StatusUnprocessableEntity
		toast = s.invalidContactToast(store)
	}
	s.render(w, r, "contact", status, s.contactPage(r, store, token, form, &toast))
}

// submitContact runs the submission for flight, or waits for the one
// already running. It reports false when the request ended while waiting.
func (s *server) submitContact(r *http.Request, flight *formFlight, form model.ContactFormState) (contact.Result, bool) {
	done, leader := flight.join()
	if !leader {
		out, ok := flight.await(done, r.Context().Done())
		res, _ := out.(contact.Result)
		return res, ok
	}
	if prev, sent := flight.result().(contact.Result); sent && prev.OK() {
		flight.finish(prev)
		return prev, true
	}

	gateway := flight.contactGateway(contact.Options{
		Backend: s.backend,
		Timeout: s.submitTimeout,
		Logger:  s.logger,
	})
	res := gateway.Submit(r.Context(), forms.Submission(form))
	flight.finish(res)
	return res, true
}

func (s *server) invalidContactToast(store *locale.Store) model.Toast {
	toast := contact.ErrorToast(store)
	toast.Description = store.Lookup(locale.KeyContactFormRequired, "Please fill in your name, email and message.")
	return toast
}
