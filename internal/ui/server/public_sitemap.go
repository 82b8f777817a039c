package server

import (
	"encoding/xml"
	"fmt"
	"net/http"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

func (s *server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "Disallow: /admin")
	fmt.Fprintf(w, "Sitemap: %s\n", absoluteURL(r, "/sitemap.xml"))
}

func (s *server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	smap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []urlEntry{
			{Loc: absoluteURL(r, "/"), ChangeFreq: "monthly", Priority: "1.0"},
			{Loc: absoluteURL(r, "/contact"), ChangeFreq: "yearly", Priority: "0.6"},
		},
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(smap); err != nil {
		s.logger.ErrorContext(r.Context(), "encode sitemap", "error", err)
	}
}
