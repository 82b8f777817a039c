// Package content holds the site's project and skills catalog.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/model"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Project is a catalog entry. The description is a translation key.
type Project struct {
	ID             string     `yaml:"id"`
	Title          string     `yaml:"title"`
	URL            string     `yaml:"url"`
	DescriptionKey locale.Key `yaml:"description_key"`
	Frontend       []string   `yaml:"frontend"`
	Backend        []string   `yaml:"backend"`
}

// SkillGroup is a labelled list of skills.
type SkillGroup struct {
	LabelKey locale.Key `yaml:"label_key"`
	Items    []string   `yaml:"items"`
}

// Catalog is the full site content.
type Catalog struct {
	Projects []Project          `yaml:"projects"`
	Skills   []SkillGroup       `yaml:"skills"`
	Social   []model.SocialLink `yaml:"social"`
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	seen := map[string]bool{}
	for i, p := range c.Projects {
		if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("catalog: project %d needs an id and a title", i))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("catalog: duplicate project %q", p.ID))
		}
		seen[p.ID] = true
		if u, err := url.Parse(p.URL); err != nil || u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("catalog: project %q url must be https", p.ID))
		}
	}
	for i, s := range c.Skills {
		if s.LabelKey == "" {
			errs = append(errs, fmt.Errorf("catalog: skill group %d has no label", i))
		}
	}
	return errors.Join(errs...)
}

// Keys lists every translation key the catalog refers to.
func (c *Catalog) Keys() []locale.Key {
	var keys []locale.Key
	for _, p := range c.Projects {
		if p.DescriptionKey != "" {
			keys = append(keys, p.DescriptionKey)
		}
	}
	for _, s := range c.Skills {
		keys = append(keys, s.LabelKey)
	}
	return keys
}

// LocalizedProjects resolves project descriptions through tr. A missing
// description renders empty.
func (c *Catalog) LocalizedProjects(tr locale.Translator) []model.Project {
	out := make([]model.Project, 0, len(c.Projects))
	for _, p := range c.Projects {
		out = append(out, model.Project{
			Title:       p.Title,
			Description: tr.Lookup(p.DescriptionKey, ""),
			Link:        p.URL,
			Frontend:    append([]string(nil), p.Frontend...),
			Backend:     append([]string(nil), p.Backend...),
		})
	}
	return out
}

// LocalizedSkills resolves group labels through tr.
func (c *Catalog) LocalizedSkills(tr locale.Translator) []model.SkillGroup {
	out := make([]model.SkillGroup, 0, len(c.Skills))
	for _, s := range c.Skills {
		fallback := string(s.LabelKey)
		if i := strings.LastIndexByte(fallback, '.'); i >= 0 {
			fallback = fallback[i+1:]
		}
		out = append(out, model.SkillGroup{
			Label:  tr.Lookup(s.LabelKey, fallback),
			Skills: append([]string(nil), s.Items...),
		})
	}
	return out
}
