package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/williambechay/portfolio/internal/contact"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/admin"
	"github.com/williambechay/portfolio/internal/ui/model"
)

// formTokenField is the hidden input carrying a rendered form's token.
const formTokenField = "form_token"

// defaultFormTTL bounds how long an idle form token keeps its state.
const defaultFormTTL = 30 * time.Minute

func newFormToken() string { return uuid.NewString() }

// formFlight holds the state shared by every POST of one rendered form.
// Only one POST runs at a time. A POST that arrives while another is
// outstanding waits for it and reuses its outcome.
type formFlight struct {
	mu      sync.Mutex
	running chan struct{}
	outcome any

	gateway *contact.Gateway
	ctrl    *admin.Controller
	tr      locale.Translator
	toast   *model.Toast

	// guarded by formFlights.mu
	lastUsed time.Time
}

// join marks a POST as started. When another POST is already running it
// returns that POST's completion channel and false.
func (f *formFlight) join() (<-chan struct{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running != nil {
		return f.running, false
	}
	f.running = make(chan struct{})
	return f.running, true
}

// finish records the running POST's outcome and releases its waiters.
func (f *formFlight) finish(outcome any) {
	f.mu.Lock()
	f.outcome = outcome
	done := f.running
	f.running = nil
	f.mu.Unlock()
	if done != nil {
		close(done)
	}
}

func (f *formFlight) result() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

func (f *formFlight) busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running != nil
}

// await blocks until the POST behind done finishes or the request ends.
func (f *formFlight) await(done <-chan struct{}, ctxDone <-chan struct{}) (any, bool) {
	select {
	case <-done:
		return f.result(), true
	case <-ctxDone:
		return nil, false
	}
}

func (f *formFlight) contactGateway(opts contact.Options) *contact.Gateway {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gateway == nil {
		f.gateway = contact.NewGateway(opts)
	}
	return f.gateway
}

// adminController returns the form's controller, creating it on first use.
// Toasts and translations go through the flight so each POST sees its own.
func (f *formFlight) adminController(opts admin.Options) *admin.Controller {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ctrl == nil {
		opts.Translator = f
		opts.Notifier = f
		f.ctrl = admin.New(opts)
	}
	return f.ctrl
}

func (f *formFlight) controller() *admin.Controller {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctrl
}

// use sets the translator for the next controller call and clears any toast
// left by the previous one.
func (f *formFlight) use(tr locale.Translator) {
	f.mu.Lock()
	f.tr = tr
	f.toast = nil
	f.mu.Unlock()
}

func (f *formFlight) takeToast() *model.Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.toast
	f.toast = nil
	return t
}

// Lookup delegates to the translator of the current POST.
func (f *formFlight) Lookup(key locale.Key, fallback string) string {
	f.mu.Lock()
	tr := f.tr
	f.mu.Unlock()
	if tr == nil {
		return fallback
	}
	return tr.Lookup(key, fallback)
}

// Notify keeps the toast for the current POST.
func (f *formFlight) Notify(t model.Toast) {
	f.mu.Lock()
	f.toast = &t
	f.mu.Unlock()
}

func (f *formFlight) close() {
	f.mu.Lock()
	ctrl := f.ctrl
	f.mu.Unlock()
	if ctrl != nil {
		ctrl.Close()
	}
}

// formFlights maps form tokens to their flights. Idle entries expire after
// ttl and are swept on access.
type formFlights struct {
	mu      sync.Mutex
	entries map[string]*formFlight
	ttl     time.Duration
	now     func() time.Time
}

func newFormFlights(ttl time.Duration) *formFlights {
	if ttl <= 0 {
		ttl = defaultFormTTL
	}
	return &formFlights{
		entries: make(map[string]*formFlight),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the flight for token, creating it on first use. Tokens that
// are not UUIDs return nil.
func (f *formFlights) get(token string) *formFlight {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	key := id.String()
	now := f.now()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweep(now)
	ff, ok := f.entries[key]
	if !ok {
		ff = &formFlight{}
		f.entries[key] = ff
	}
	ff.lastUsed = now
	return ff
}

// lookup returns the flight for token without creating one.
func (f *formFlights) lookup(token string) *formFlight {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[id.String()]
}

// claim returns the flight for token, or a flight under a fresh token when
// the posted one is missing or malformed.
func (f *formFlights) claim(token string) (string, *formFlight) {
	if ff := f.get(token); ff != nil {
		return token, ff
	}
	token = newFormToken()
	return token, f.get(token)
}

// drop forgets token and closes its controller.
func (f *formFlights) drop(token string) {
	id, err := uuid.Parse(token)
	if err != nil {
		return
	}
	f.mu.Lock()
	ff, ok := f.entries[id.String()]
	delete(f.entries, id.String())
	f.mu.Unlock()
	if ok {
		ff.close()
	}
}

func (f *formFlights) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// sweep must be called with mu held.
func (f *formFlights) sweep(now time.Time) {
	for key, ff := range f.entries {
		if now.Sub(ff.lastUsed) > f.ttl && !ff.busy() {
			delete(f.entries, key)
			ff.close()
		}
	}
}
