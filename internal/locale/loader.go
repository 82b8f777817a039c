package locale

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
)

//go:embed locales/*.toml
var bundled embed.FS

// Loader fetches the translation tree for one language.
type Loader interface {
	Load(ctx context.Context, lang Language) (*Tree, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, lang Language) (*Tree, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, lang Language) (*Tree, error) {
	return f(ctx, lang)
}

// EmbeddedLoader reads the trees compiled into the binary.
type EmbeddedLoader struct{}

// Load parses locales/<lang>.toml from the embedded bundle.
func (EmbeddedLoader) Load(ctx context.Context, lang Language) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := bundled.ReadFile("locales/" + lang.String() + ".toml")
	if err != nil {
		return nil, fmt.Errorf("read bundled %s translations: %w", lang, err)
	}
	return ParseTree(lang, data)
}

// HTTPLoader fetches {BaseURL}/{lang}.toml at runtime. Transient failures
// (transport errors, 5xx, 429) are retried with exponential backoff; any
// other status fails immediately.
type HTTPLoader struct {
	BaseURL        string
	Client         *http.Client
	MaxAttempts    uint
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Load downloads and parses the tree for lang.
func (l HTTPLoader) Load(ctx context.Context, lang Language) (*Tree, error) {
	base := strings.TrimRight(strings.TrimSpace(l.BaseURL), "/")
	if base == "" {
		return nil, errors.New("locale base url is required")
	}
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	attempts := l.MaxAttempts
	if attempts == 0 {
		attempts = 4
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	if l.InitialBackoff > 0 {
		policy.InitialInterval = l.InitialBackoff
	}
	policy.MaxInterval = 5 * time.Second
	if l.MaxBackoff > 0 {
		policy.MaxInterval = l.MaxBackoff
	}

	target := base + "/" + lang.String() + ".toml"
	data, err := backoff.Retry(ctx, func() ([]byte, error) {
		return fetchTranslations(ctx, client, target)
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(attempts))
	if err != nil {
		return nil, fmt.Errorf("fetch %s translations: %w", lang, err)
	}
	return ParseTree(lang, data)
}

func fetchTranslations(ctx context.Context, client *http.Client, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

// CachedLoader memoizes successful loads. Failures are not cached, so the
// next request retries the underlying loader.
type CachedLoader struct {
	next  Loader
	mu    sync.Mutex
	trees map[Language]*Tree
}

// NewCachedLoader wraps next with a per-language cache.
func NewCachedLoader(next Loader) *CachedLoader {
	return &CachedLoader{next: next, trees: make(map[Language]*Tree)}
}

// Load returns the cached tree or delegates to the wrapped loader.
func (c *CachedLoader) Load(ctx context.Context, lang Language) (*Tree, error) {
	c.mu.Lock()
	tree, ok := c.trees[lang]
	c.mu.Unlock()
	if ok {
		return tree, nil
	}
	tree, err := c.next.Load(ctx, lang)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.trees[lang] = tree
	c.mu.Unlock()
	return tree, nil
}

// CheckTrees loads every supported language and logs a warning for each key
// in AllKeys that does not resolve. It returns the first load error.
func CheckTrees(ctx context.Context, loader Loader, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	for _, lang := range Supported {
		tree, err := loader.Load(ctx, lang)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrLoad, lang, err)
		}
		if missing := tree.Missing(AllKeys); len(missing) > 0 {
			logger.Warn("translations incomplete", "language", lang.String(), "missing", missing)
		}
	}
	return nil
}
