package server

import (
	"errors"
	"net/http"

	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/admin"
	"github.com/williambechay/portfolio/internal/ui/model"
)

type adminOutcome struct {
	snap  admin.Snapshot
	toast *model.Toast
	err   error
}

// handleAdminLogin verifies the posted password, or reloads the messages
// when the form token already belongs to an authenticated dashboard. A
// repeat POST while one is outstanding waits for it.
func (s *server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	store := s.localeFor(w, r)
	if store == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	token, flight := s.adminForms.claim(r.PostForm.Get(formTokenField))

	out, ok := s.runAdmin(r, flight, store, r.PostForm.Get("password"))
	if !ok {
		return
	}

	status := http.StatusOK
	if errors.Is(out.err, admin.ErrAuthFailed) {
		status = http.StatusUnauthorized
	}
	data := s.adminPage(r, store, token, out.snap, out.toast)
	data.FetchFailed = errors.Is(out.err, admin.ErrFetch)
	s.render(w, r, "admin", status, data)
}

func (s *server) runAdmin(r *http.Request, flight *formFlight, tr locale.Translator, password string) (adminOutcome, bool) {
	done, leader := flight.join()
	if !leader {
		v, ok := flight.await(done, r.Context().Done())
		out, _ := v.(adminOutcome)
		return out, ok
	}

	flight.use(tr)
	ctrl := flight.adminController(admin.Options{Backend: s.backend, Logger: s.logger})
	var err error
	if ctrl.Snapshot().Authenticated {
		err = ctrl.Refresh(r.Context())
	} else {
		err = ctrl.LoginWith(r.Context(), password)
	}
	out := adminOutcome{snap: ctrl.Snapshot(), toast: flight.takeToast(), err: err}
	flight.finish(out)
	return out, true
}
