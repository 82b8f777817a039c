package locale

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[home]
helpText = "Need help?"
empty = ""
count = 0
visits = 3
enabled = false
shown = true

[home.intro]
greeting = "Hello"
`

func TestParseTree_Get(t *testing.T) {
	tree, err := ParseTree(English, []byte(sampleTOML))
	require.NoError(t, err)
	assert.Equal(t, English, tree.Language())

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"home.helpText", "Need help?", true},
		{"home.intro.greeting", "Hello", true},
		{"home.visits", "3", true},
		{"home.shown", "true", true},
		{"home.empty", "", false},
		{"home.count", "", false},
		{"home.enabled", "", false},
		{"home", "", false},
		{"home.intro", "", false},
		{"home.intro.greeting.extra", "", false},
		{"missing.path", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := tree.Get(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, 4, tree.Len())
}

func TestParseTree_InvalidTOML(t *testing.T) {
	_, err := ParseTree(French, []byte("[home\nbroken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fr")
}

func TestNilTree(t *testing.T) {
	var tree *Tree
	_, ok := tree.Get("home.helpText")
	assert.False(t, ok)
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, []Key{KeyHomeHelpText}, tree.Missing([]Key{KeyHomeHelpText}))
}

func TestNewTree_Lists(t *testing.T) {
	tree, err := NewTree(English, map[string]any{
		"skills": map[string]any{
			"items": []any{"Go", "", "SQL"},
		},
	})
	require.NoError(t, err)
	got, ok := tree.Get("skills.items.0")
	require.True(t, ok)
	assert.Equal(t, "Go", got)
	_, ok = tree.Get("skills.items.1")
	assert.False(t, ok)
	got, ok = tree.Get("skills.items.2")
	require.True(t, ok)
	assert.Equal(t, "SQL", got)
}

func TestNewTree_TemplateSyntaxIsLiteral(t *testing.T) {
	values := map[string]string{
		"action":   "Use {{.Name}} here",
		"unclosed": "Braces {{ are fun",
		"closing":  "done }} now",
		"pipeline": `{{printf "%d" 3}}`,
	}
	doc := make(map[string]any, len(values))
	for k, v := range values {
		doc[k] = v
	}
	tree, err := NewTree(English, map[string]any{"home": doc})
	require.NoError(t, err)

	for k, want := range values {
		got, ok := tree.Get("home." + k)
		require.True(t, ok, k)
		assert.Equal(t, want, got, k)
	}
	assert.Empty(t, tree.Missing([]Key{"home.action", "home.unclosed"}))
}

func TestParseTree_TemplateSyntaxIsLiteral(t *testing.T) {
	tree, err := ParseTree(French, []byte("[home]\nhelpText = \"Bonjour {{.Nom}}\"\n"))
	require.NoError(t, err)
	got, ok := tree.Get(string(KeyHomeHelpText))
	require.True(t, ok)
	assert.Equal(t, "Bonjour {{.Nom}}", got)
}

func TestBundledTreesAreComplete(t *testing.T) {
	for _, lang := range Supported {
		t.Run(lang.String(), func(t *testing.T) {
			tree, err := EmbeddedLoader{}.Load(context.Background(), lang)
			require.NoError(t, err)
			assert.Empty(t, tree.Missing(AllKeys))
		})
	}
}

func TestBundledFrenchHelpText(t *testing.T) {
	tree, err := EmbeddedLoader{}.Load(context.Background(), French)
	require.NoError(t, err)
	got, ok := tree.Get(string(KeyHomeHelpText))
	require.True(t, ok)
	assert.Equal(t, "Besoin d'aide sur un projet ?", got)
}

// translationValue generates plain words as well as strings carrying
// template delimiters, which must come back unchanged.
func translationValue() gopter.Gen {
	return gen.OneGenOf(
		gen.AlphaString(),
		gen.AlphaString().Map(func(s string) string { return "{{" + s }),
		gen.AlphaString().Map(func(s string) string { return "Use {{." + s + "}} here" }),
		gen.AlphaString().Map(func(s string) string { return s + " }}" }),
	)
}

func TestLookupFallbackProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("lookup returns the value or the fallback, never anything else", prop.ForAll(
		func(keys []string, values []string, lookupKey string, fallback string) bool {
			doc := make(map[string]any)
			for i := 0; i < len(keys) && i < len(values); i++ {
				if keys[i] != "" {
					doc[keys[i]] = values[i]
				}
			}
			store := New(Options{Loader: LoaderFunc(func(context.Context, Language) (*Tree, error) {
				return NewTree(English, doc)
			})})
			store.Initialize(context.Background())
			if err := store.Wait(context.Background()); err != nil {
				return false
			}

			got := store.Lookup(Key(lookupKey), fallback)
			raw, present := doc[lookupKey]
			if !present || raw == "" {
				return got == fallback
			}
			return got == raw
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(translationValue()),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("lookup before load always returns the fallback", prop.ForAll(
		func(lookupKey string, fallback string) bool {
			store := New(Options{})
			return store.Lookup(Key(lookupKey), fallback) == fallback
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
