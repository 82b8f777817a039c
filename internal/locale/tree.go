package locale

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/nicksnyder/go-i18n/v2/i18n/template"
)

// Tree is the fully loaded translation document for a single language.
// Nested sections are addressed with dotted paths such as
// "home.intro.greeting". Only one language lives in a Tree; the other
// language is never resident.
type Tree struct {
	lang      Language
	localizer *i18n.Localizer
	ids       []string
}

// ParseTree decodes a TOML translation document.
func ParseTree(lang Language, data []byte) (*Tree, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s translations: %w", lang, err)
	}
	return NewTree(lang, doc)
}

// NewTree builds a Tree from an already decoded nested document. Leaves
// that are falsy (empty strings, zero numbers, false, null) are dropped so
// that every lookup against them misses. Values are kept verbatim; they are
// never executed as message templates.
func NewTree(lang Language, doc map[string]any) (*Tree, error) {
	messages := make([]*i18n.Message, 0, len(doc))
	flatten("", doc, func(id, text string) {
		messages = append(messages, &i18n.Message{ID: id, Other: text})
	})
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })

	bundle := i18n.NewBundle(lang.Tag())
	if err := bundle.AddMessages(lang.Tag(), messages...); err != nil {
		return nil, fmt.Errorf("build %s translations: %w", lang, err)
	}

	ids := make([]string, len(messages))
	for i, msg := range messages {
		ids[i] = msg.ID
	}
	return &Tree{
		lang:      lang,
		localizer: i18n.NewLocalizer(bundle, lang.String()),
		ids:       ids,
	}, nil
}

// Language reports which language the tree holds.
func (t *Tree) Language() Language {
	return t.lang
}

// Len returns the number of addressable (truthy) leaves.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

// Get resolves a dotted path. The second result is false when any segment
// is missing or the leaf is falsy.
func (t *Tree) Get(path string) (string, bool) {
	if t == nil || path == "" {
		return "", false
	}
	text, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:      path,
		TemplateParser: template.IdentityParser{},
	})
	if err != nil || text == "" {
		return "", false
	}
	return text, true
}

// Missing returns the keys that do not resolve to a truthy value.
func (t *Tree) Missing(keys []Key) []Key {
	var missing []Key
	for _, key := range keys {
		if _, ok := t.Get(string(key)); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func flatten(prefix string, node any, emit func(id, text string)) {
	join := func(segment string) string {
		if prefix == "" {
			return segment
		}
		return prefix + "." + segment
	}
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			flatten(join(key), child, emit)
		}
	case []map[string]any:
		for i, child := range v {
			flatten(join(strconv.Itoa(i)), child, emit)
		}
	case []any:
		for i, child := range v {
			flatten(join(strconv.Itoa(i)), child, emit)
		}
	case string:
		if v != "" && prefix != "" {
			emit(prefix, v)
		}
	case int64:
		if v != 0 {
			emit(prefix, strconv.FormatInt(v, 10))
		}
	case int:
		if v != 0 {
			emit(prefix, strconv.Itoa(v))
		}
	case float64:
		if v != 0 {
			emit(prefix, strconv.FormatFloat(v, 'f', -1, 64))
		}
	case bool:
		if v {
			emit(prefix, "true")
		}
	}
}
