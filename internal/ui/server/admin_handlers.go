package server

import (
	"net/http"

	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/admin"
	"github.com/williambechay/portfolio/internal/ui/model"
)

func (s *server) adminPage(r *http.Request, store *locale.Store, token string, snap admin.Snapshot, toast *model.Toast) adminPageData {
	base := s.basePage(r, store, locale.KeyAdminMetaTitle, locale.KeyAdminMetaDescription)
	base.Toast = toast
	base.Robots = "noindex, nofollow"
	data := adminPageData{
		basePageData:  base,
		FormToken:     token,
		Authenticated: snap.Authenticated,
	}
	if snap.Authenticated {
		data.Rows = admin.Project(snap.Messages, store, store.Language())
	}
	return data
}

// handleAdmin renders the login view under a fresh form token. The
// authenticated state lives with the token in the dashboard's forms, so a
// plain visit always starts unauthenticated.
func (s *server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	store := s.localeFor(w, r)
	if store == nil {
		return
	}
	s.render(w, r, "admin", http.StatusOK, s.adminPage(r, store, newFormToken(), admin.Snapshot{}, nil))
}

// handleAdminLogout clears the dashboard behind the posted form token.
func (s *server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err == nil {
		token := r.PostForm.Get(formTokenField)
		if flight := s.adminForms.lookup(token); flight != nil {
			if ctrl := flight.controller(); ctrl != nil {
				ctrl.Logout()
			}
		}
		s.adminForms.drop(token)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
