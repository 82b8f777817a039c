package server

import (
	"net/http"

	"github.com/williambechay/portfolio/internal/locale"
)

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	store := s.localeFor(w, r)
	if store == nil {
		return
	}
	data := homePageData{
		basePageData: s.basePage(r, store, locale.KeyHomeMetaTitle, locale.KeyHomeMetaDescription),
		Projects:     s.catalog.LocalizedProjects(store),
		Skills:       s.catalog.LocalizedSkills(store),
		Social:       s.catalog.Social,
	}
	s.render(w, r, "home", http.StatusOK, data)
}
