package contact

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/model"
	"github.com/williambechay/portfolio/logging"
)

type fakeBackend struct {
	mu       sync.Mutex
	inserted []backend.NewMessage
	calls    atomic.Int32
	err      error
	block    chan struct{}
}

func (f *fakeBackend) InsertMessage(ctx context.Context, msg backend.NewMessage) error {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, msg)
	return nil
}

func (f *fakeBackend) ListMessages(context.Context) ([]backend.StoredMessage, error) {
	return nil, nil
}

func (f *fakeBackend) VerifyAdminPassword(context.Context, string) (backend.Verification, error) {
	return backend.Verification{}, nil
}

func validSubmission() Submission {
	return Submission{Name: "Ana", Email: "ana@example.com", Subject: "Hi", Reason: ReasonProject, Message: "Let's talk"}
}

func newTestGateway(b backend.Backend) *Gateway {
	return NewGateway(Options{Backend: b, Logger: logging.Discard()})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Submission)
		wantErr bool
		fields  []Field
	}{
		{"valid", func(*Submission) {}, false, nil},
		{"empty subject and reason", func(s *Submission) { s.Subject = ""; s.Reason = "" }, false, nil},
		{"blank name", func(s *Submission) { s.Name = "   " }, true, []Field{FieldName}},
		{"blank email", func(s *Submission) { s.Email = "" }, true, []Field{FieldEmail}},
		{"blank message", func(s *Submission) { s.Message = "\n\t" }, true, []Field{FieldMessage}},
		{"unknown reason", func(s *Submission) { s.Reason = "spam" }, true, []Field{FieldReason}},
		{"everything missing", func(s *Submission) { *s = Submission{} }, true, []Field{FieldName, FieldEmail, FieldMessage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)
			err := Validate(s)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.fields {
				assert.True(t, verr.Has(f), "expected %s flagged", f)
			}
		})
	}
}

func TestSubmit_SendsOneInsertWithAllFields(t *testing.T) {
	b := &fakeBackend{}
	g := newTestGateway(b)

	s := validSubmission()
	s.Subject = ""
	s.Reason = ReasonNone
	res := g.Submit(context.Background(), s)

	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Equal(t, int32(1), b.calls.Load())
	require.Len(t, b.inserted, 1)
	assert.Equal(t, backend.NewMessage{Name: "Ana", Email: "ana@example.com", Subject: "", Reason: "", Message: "Let's talk"}, b.inserted[0])
	assert.False(t, g.Submitting())
}

func TestSubmit_InvalidMakesNoCall(t *testing.T) {
	b := &fakeBackend{}
	g := newTestGateway(b)

	res := g.Submit(context.Background(), Submission{Name: "Ana"})
	require.ErrorIs(t, res.Err, ErrInvalid)
	assert.Equal(t, int32(0), b.calls.Load())
}

func TestSubmit_FailureThenResubmitCallsOnceMore(t *testing.T) {
	b := &fakeBackend{err: errors.New("503 service unavailable")}
	g := newTestGateway(b)
	s := validSubmission()

	res := g.Submit(context.Background(), s)
	require.ErrorIs(t, res.Err, ErrSubmit)
	assert.Contains(t, res.Err.Error(), "503")
	assert.Equal(t, int32(1), b.calls.Load())
	assert.Equal(t, validSubmission(), s, "submission must be left untouched")

	b.mu.Lock()
	b.err = nil
	b.mu.Unlock()

	res = g.Submit(context.Background(), s)
	require.True(t, res.OK())
	assert.Equal(t, int32(2), b.calls.Load())
}

func TestSubmit_InFlightIsCoalesced(t *testing.T) {
	b := &fakeBackend{block: make(chan struct{})}
	g := newTestGateway(b)

	first := make(chan Result, 1)
	go func() { first <- g.Submit(context.Background(), validSubmission()) }()
	require.Eventually(t, g.Submitting, time.Second, time.Millisecond)

	second := g.Submit(context.Background(), validSubmission())
	require.ErrorIs(t, second.Err, ErrSubmitInFlight)

	close(b.block)
	assert.True(t, (<-first).OK())
	assert.Equal(t, int32(1), b.calls.Load())
}

func TestSubmit_TimeoutSurfacesAsError(t *testing.T) {
	b := &fakeBackend{block: make(chan struct{})}
	defer close(b.block)
	g := NewGateway(Options{Backend: b, Timeout: 20 * time.Millisecond, Logger: logging.Discard()})

	res := g.Submit(context.Background(), validSubmission())
	require.ErrorIs(t, res.Err, ErrSubmit)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.False(t, g.Submitting())
}

func TestSubmit_NoBackend(t *testing.T) {
	res := newTestGateway(nil).Submit(context.Background(), validSubmission())
	require.ErrorIs(t, res.Err, ErrSubmit)
}

func TestToasts_EnglishFromBundledTree(t *testing.T) {
	store := locale.New(locale.Options{})
	store.Initialize(context.Background())
	require.NoError(t, store.Wait(context.Background()))

	b := &fakeBackend{}
	res := newTestGateway(b).Submit(context.Background(), validSubmission())
	require.True(t, res.OK())

	toast := SuccessToast(store)
	assert.Equal(t, "Message Sent!", toast.Title)
	assert.Equal(t, "Thank you for your message. I will get back to you shortly.", toast.Description)
	assert.False(t, toast.Destructive())
}

func TestToasts_FallbackWithoutTranslations(t *testing.T) {
	empty := locale.Dict{}
	assert.Equal(t, model.Toast{
		Title:       "Error!",
		Description: "Your message could not be sent. Please try again.",
		Variant:     model.ToastDestructive,
	}, ErrorToast(empty))

	fr := locale.Dict{locale.KeyContactToastErrorTitle: "Erreur !"}
	assert.Equal(t, "Erreur !", ErrorToast(fr).Title)
}

func TestReasonValid(t *testing.T) {
	for _, r := range Reasons {
		assert.True(t, r.Valid())
	}
	assert.True(t, ReasonNone.Valid())
	assert.False(t, Reason("other").Valid())
}
