package admin

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/model"
	"github.com/williambechay/portfolio/logging"
)

type fakeBackend struct {
	mu          sync.Mutex
	password    string
	messages    []backend.StoredMessage
	verifyErr   error
	listErr     error
	verifyGate  chan struct{}
	verifyCalls atomic.Int32
	listCalls   atomic.Int32
	passwords   []string
}

func (f *fakeBackend) InsertMessage(context.Context, backend.NewMessage) error { return nil }

func (f *fakeBackend) ListMessages(context.Context) ([]backend.StoredMessage, error) {
	f.listCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.messages, nil
}

func (f *fakeBackend) VerifyAdminPassword(ctx context.Context, password string) (backend.Verification, error) {
	f.verifyCalls.Add(1)
	if f.verifyGate != nil {
		select {
		case <-f.verifyGate:
		case <-ctx.Done():
			return backend.Verification{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passwords = append(f.passwords, password)
	if f.verifyErr != nil {
		return backend.Verification{}, f.verifyErr
	}
	if password == f.password {
		return backend.Verification{Success: true}, nil
	}
	return backend.Verification{Success: false, Error: "invalid password"}, nil
}

type toastRecorder struct {
	mu     sync.Mutex
	toasts []model.Toast
}

func (r *toastRecorder) Notify(t model.Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

func (r *toastRecorder) all() []model.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Toast(nil), r.toasts...)
}

var sampleMessages = []backend.StoredMessage{
	{ID: 2, Name: "Bo", Email: "bo@example.com", Message: "Second", CreatedAt: time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)},
	{ID: 1, Name: "Ana", Email: "ana@example.com", Reason: "bug", Message: "First", CreatedAt: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)},
}

func newFixture() (*Controller, *fakeBackend, *toastRecorder) {
	b := &fakeBackend{password: "s3cret", messages: sampleMessages}
	toasts := &toastRecorder{}
	c := New(Options{Backend: b, Notifier: toasts, Logger: logging.Discard()})
	return c, b, toasts
}

func TestController_SuccessfulLoginFetchesOnce(t *testing.T) {
	c, b, toasts := newFixture()
	var transitions []string
	c.onTransition = func(from, to State) { transitions = append(transitions, from.String()+">"+to.String()) }

	c.SetPassword("s3cret")
	require.NoError(t, c.Login(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.True(t, snap.Authenticated)
	assert.Empty(t, snap.PasswordAttempt)
	assert.Equal(t, sampleMessages, snap.Messages)
	assert.Equal(t, int32(1), b.verifyCalls.Load())
	assert.Equal(t, int32(1), b.listCalls.Load())
	assert.Empty(t, toasts.all())
	assert.Equal(t, []string{
		"unauthenticated>verifying",
		"verifying>authenticated",
		"authenticated>fetching_messages",
		"fetching_messages>authenticated",
	}, transitions)
}

func TestController_WrongPasswordKeepsAttemptAndRaisesToast(t *testing.T) {
	c, b, toasts := newFixture()
	var transitions []string
	c.onTransition = func(from, to State) { transitions = append(transitions, to.String()) }

	err := c.LoginWith(context.Background(), "wrong")
	require.ErrorIs(t, err, ErrAuthFailed)

	snap := c.Snapshot()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.False(t, snap.Authenticated)
	assert.Empty(t, snap.Messages)
	assert.Equal(t, "wrong", snap.PasswordAttempt)
	assert.Equal(t, int32(0), b.listCalls.Load())
	assert.Equal(t, []string{"verifying", "error", "unauthenticated"}, transitions)

	got := toasts.all()
	require.Len(t, got, 1)
	assert.Equal(t, "Authentication Failed", got[0].Title)
	assert.Equal(t, "Incorrect password. Please try again.", got[0].Description)
	assert.True(t, got[0].Destructive())
}

func TestController_LocalizedAuthToast(t *testing.T) {
	b := &fakeBackend{password: "x"}
	toasts := &toastRecorder{}
	tr := locale.Dict{locale.KeyAdminLoginError: "Mot de passe incorrect."}
	c := New(Options{Backend: b, Translator: tr, Notifier: toasts, Logger: logging.Discard()})

	require.ErrorIs(t, c.LoginWith(context.Background(), "y"), ErrAuthFailed)
	got := toasts.all()
	require.Len(t, got, 1)
	assert.Equal(t, "Authentication Failed", got[0].Title)
	assert.Equal(t, "Mot de passe incorrect.", got[0].Description)
}

func TestController_VerifyTransportErrorIsAuthError(t *testing.T) {
	c, b, toasts := newFixture()
	b.verifyErr = errors.New("connection reset")

	err := c.LoginWith(context.Background(), "s3cret")
	require.ErrorIs(t, err, ErrAuthFailed)
	assert.False(t, c.Snapshot().Authenticated)
	assert.Len(t, toasts.all(), 1)
}

func TestController_SingleVerificationInFlight(t *testing.T) {
	c, b, _ := newFixture()
	b.verifyGate = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- c.LoginWith(context.Background(), "s3cret") }()
	require.Eventually(t, func() bool { return c.Snapshot().Verifying() }, time.Second, time.Millisecond)

	var wg sync.WaitGroup
	var inFlight atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if errors.Is(c.LoginWith(context.Background(), "s3cret"), ErrVerifyInFlight) {
				inFlight.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(8), inFlight.Load())

	close(b.verifyGate)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), b.verifyCalls.Load())
	assert.Equal(t, int32(1), b.listCalls.Load())
}

func TestController_FetchFailureStaysAuthenticated(t *testing.T) {
	c, b, toasts := newFixture()
	b.listErr = errors.New("timeout")

	err := c.LoginWith(context.Background(), "s3cret")
	require.ErrorIs(t, err, ErrFetch)

	snap := c.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Empty(t, snap.Messages)
	got := toasts.all()
	require.Len(t, got, 1)
	assert.Equal(t, "Failed to fetch messages.", got[0].Description)

	b.mu.Lock()
	b.listErr = nil
	b.mu.Unlock()
	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, c.Snapshot().Messages, 2)
	assert.Equal(t, int32(2), b.listCalls.Load())
}

func TestController_RefreshRequiresAuthentication(t *testing.T) {
	c, b, _ := newFixture()
	require.ErrorIs(t, c.Refresh(context.Background()), ErrNotAuthenticated)
	assert.Equal(t, int32(0), b.listCalls.Load())
}

func TestController_LogoutResetsEverything(t *testing.T) {
	c, _, _ := newFixture()
	require.NoError(t, c.LoginWith(context.Background(), "s3cret"))
	c.SetPassword("typed-again")

	c.Logout()
	snap := c.Snapshot()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.False(t, snap.Authenticated)
	assert.Empty(t, snap.PasswordAttempt)
	assert.Empty(t, snap.Messages)
}

func TestController_LogoutDuringVerificationDiscardsResponse(t *testing.T) {
	c, b, toasts := newFixture()
	b.verifyGate = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- c.LoginWith(context.Background(), "s3cret") }()
	require.Eventually(t, func() bool { return c.Snapshot().Verifying() }, time.Second, time.Millisecond)

	c.Logout()
	close(b.verifyGate)
	require.ErrorIs(t, <-done, ErrDiscarded)
	assert.False(t, c.Snapshot().Authenticated)
	assert.Equal(t, int32(0), b.listCalls.Load())
	assert.Empty(t, toasts.all())
}

func TestController_CloseDiscardsLateResponses(t *testing.T) {
	c, b, toasts := newFixture()
	b.verifyGate = make(chan struct{})
	b.password = "other"

	done := make(chan error, 1)
	go func() { done <- c.LoginWith(context.Background(), "s3cret") }()
	require.Eventually(t, func() bool { return c.Snapshot().Verifying() }, time.Second, time.Millisecond)

	c.Close()
	close(b.verifyGate)
	require.ErrorIs(t, <-done, ErrDiscarded)
	assert.Empty(t, toasts.all())
	require.ErrorIs(t, c.LoginWith(context.Background(), "s3cret"), ErrDiscarded)
}

func TestController_PasswordOnlySentToVerifier(t *testing.T) {
	c, b, _ := newFixture()
	c.SetPassword("wrong-1")
	_ = c.Login(context.Background())
	require.NoError(t, c.LoginWith(context.Background(), "s3cret"))
	assert.Equal(t, []string{"wrong-1", "s3cret"}, b.passwords)
}

func TestSessionInvariantProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("messages are empty whenever the session is not authenticated", prop.ForAll(
		func(ops []int) bool {
			c, b, _ := newFixture()
			ctx := context.Background()
			for _, op := range ops {
				switch op {
				case 0:
					_ = c.LoginWith(ctx, "s3cret")
				case 1:
					_ = c.LoginWith(ctx, "wrong")
				case 2:
					c.Logout()
				case 3:
					_ = c.Refresh(ctx)
				case 4:
					b.mu.Lock()
					if b.listErr == nil {
						b.listErr = errors.New("down")
					} else {
						b.listErr = nil
					}
					b.mu.Unlock()
				}
				snap := c.Snapshot()
				if !snap.Authenticated && len(snap.Messages) > 0 {
					return false
				}
				if snap.Authenticated && snap.PasswordAttempt != "" {
					return false
				}
				if snap.State == StateVerifying || snap.State == StateFetchingMessages || snap.State == StateError {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 4)),
	))

	properties.TestingRun(t)
}
