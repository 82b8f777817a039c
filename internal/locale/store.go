package locale

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/williambechay/portfolio/internal/prefs"
)

// ErrLoad is returned by Wait when the translation tree could not be loaded.
var ErrLoad = errors.New("locale: load failed")

// Translator resolves keys to display strings.
type Translator interface {
	Lookup(key Key, fallback string) string
}

// Options configures a Store.
type Options struct {
	Loader Loader
	Prefs  prefs.Store
	Logger *slog.Logger
}

// Store tracks the active language and its loaded translation tree.
//
// Switching language keeps the previous tree visible until the new one has
// loaded. A load that completes after a newer one was started is discarded.
type Store struct {
	loader Loader
	prefs  prefs.Store
	logger *slog.Logger

	mu         sync.Mutex
	lang       Language
	tree       *Tree
	generation uint64
	done       chan struct{}
	err        error
}

// New constructs a Store. Initialize must be called before lookups resolve.
func New(opts Options) *Store {
	loader := opts.Loader
	if loader == nil {
		loader = EmbeddedLoader{}
	}
	store := opts.Prefs
	if store == nil {
		store = prefs.NewMemoryStore(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	done := make(chan struct{})
	close(done)
	return &Store{
		loader: loader,
		prefs:  store,
		logger: logger,
		lang:   DefaultLanguage,
		done:   done,
	}
}

// Initialize reads the persisted language (falling back to English) and
// starts loading its tree in the background.
func (s *Store) Initialize(ctx context.Context) {
	lang := DefaultLanguage
	raw, err := s.prefs.Get(ctx, prefs.KeyLanguage)
	switch {
	case err == nil:
		if parsed, ok := ParseLanguage(raw); ok {
			lang = parsed
		} else {
			s.logger.Warn("ignoring unsupported stored language", "value", raw)
		}
	case !errors.Is(err, prefs.ErrNotFound):
		s.logger.Warn("read language preference", "error", err)
	}

	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()
	s.startLoad(ctx)
}

// ToggleLanguage flips between English and French, persists the choice and
// reloads. It returns the new language.
func (s *Store) ToggleLanguage(ctx context.Context) Language {
	s.mu.Lock()
	next := s.lang.Toggle()
	s.mu.Unlock()
	s.SetLanguage(ctx, next)
	return next
}

// SetLanguage switches to lang, persists it and reloads.
func (s *Store) SetLanguage(ctx context.Context, lang Language) {
	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()

	if err := s.prefs.Set(ctx, prefs.KeyLanguage, lang.String()); err != nil {
		s.logger.Warn("persist language preference", "language", lang.String(), "error", err)
	}
	s.startLoad(ctx)
}

func (s *Store) startLoad(ctx context.Context) {
	s.mu.Lock()
	lang := s.lang
	s.generation++
	gen := s.generation
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		tree, err := s.loader.Load(ctx, lang)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.generation {
			return
		}
		if err != nil {
			s.err = fmt.Errorf("%w: %s: %v", ErrLoad, lang, err)
			s.logger.Error("load translations", "language", lang.String(), "error", err)
			return
		}
		s.err = nil
		s.tree = tree
	}()
}

// Wait blocks until the most recent load has finished. It returns an error
// wrapping ErrLoad when that load failed, or ctx.Err() when ctx ends first.
func (s *Store) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		done := s.done
		gen := s.generation
		s.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}

		s.mu.Lock()
		if gen != s.generation {
			s.mu.Unlock()
			continue
		}
		err := s.err
		s.mu.Unlock()
		return err
	}
}

// Loaded reports whether any tree is available for lookups.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree != nil
}

// Language returns the selected language. While a toggle is still loading
// this may differ from Tree().Language().
func (s *Store) Language() Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// Tree returns the tree currently used for lookups, or nil.
func (s *Store) Tree() *Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Lookup resolves key against the visible tree. The fallback is returned
// when no tree is loaded, the path is missing, or the value is falsy.
func (s *Store) Lookup(key Key, fallback string) string {
	s.mu.Lock()
	tree := s.tree
	s.mu.Unlock()
	if value, ok := tree.Get(string(key)); ok {
		return value
	}
	return fallback
}

// Dict is a fixed set of translations, handy where no Store is running.
type Dict map[Key]string

// Lookup returns the entry for key when it is non-empty, else fallback.
func (d Dict) Lookup(key Key, fallback string) string {
	if value := d[key]; value != "" {
		return value
	}
	return fallback
}
