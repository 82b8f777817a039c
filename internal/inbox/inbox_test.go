package inbox

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/logging"
)

func clock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

var (
	first  = backend.NewMessage{Name: "Ana", Email: "ana@example.com", Subject: "Hi", Reason: "project", Message: "First"}
	second = backend.NewMessage{Name: "Bo", Email: "bo@example.com", Message: "Second"}
)

func TestMemoryStore_NewestFirst(t *testing.T) {
	store := NewMemoryStore()
	store.now = clock(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	a, err := store.Insert(ctx, first)
	require.NoError(t, err)
	b, err := store.Insert(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bo", list[0].Name)
	assert.Equal(t, "Ana", list[1].Name)
	assert.Equal(t, "", list[0].Subject)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore().Insert(ctx, first)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inbox.db")

	store, err := Open(ctx, DialectSQLite, path)
	require.NoError(t, err)
	store.now = clock(time.Date(2024, 3, 5, 9, 0, 0, 123456789, time.UTC))

	a, err := store.Insert(ctx, first)
	require.NoError(t, err)
	b, err := store.Insert(ctx, second)
	require.NoError(t, err)
	assert.Less(t, a.ID, b.ID)
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, DialectSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	list, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b, list[0])
	assert.Equal(t, a, list[1])
	assert.Equal(t, "project", list[1].Reason)
}

func TestPostgresStore_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, DialectPostgres)
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	mock.ExpectQuery(regexp.QuoteMeta("VALUES ($1, $2, $3, $4, $5, $6) RETURNING id")).
		WithArgs("Ana", "ana@example.com", "Hi", "project", "First", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	stored, err := store.Insert(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, int64(42), stored.ID)
	assert.Equal(t, now, stored.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newer := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "email", "subject", "reason", "message", "created_at"}).
		AddRow(int64(2), "Bo", "bo@example.com", "", "", "Second", newer).
		AddRow(int64(1), "Ana", "ana@example.com", "Hi", "project", "First", older)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).WillReturnRows(rows)

	list, err := NewSQLStore(db, DialectPostgres).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, newer, list[0].CreatedAt)
	assert.Equal(t, "project", list[1].Reason)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))
	_, err = NewSQLStore(db, DialectPostgres).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list contact messages")
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect(" Postgres ")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)

	_, err = ParseDialect("mysql")
	require.ErrorIs(t, err, ErrUnknownDialect)

	_, err = Open(context.Background(), DialectSQLite, "")
	require.Error(t, err)
}

type recordingPublisher struct {
	mu   sync.Mutex
	seen []backend.StoredMessage
	err  error
}

func (p *recordingPublisher) PublishCreated(_ context.Context, msg backend.StoredMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, msg)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestWithEvents_PublishesAfterInsert(t *testing.T) {
	pub := &recordingPublisher{}
	store := WithEvents(NewMemoryStore(), pub, logging.Discard())

	stored, err := store.Insert(context.Background(), first)
	require.NoError(t, err)
	require.Len(t, pub.seen, 1)
	assert.Equal(t, stored, pub.seen[0])
}

func TestWithEvents_PublishFailureDoesNotFailInsert(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("nats: connection closed")}
	mem := NewMemoryStore()
	store := WithEvents(mem, pub, logging.Discard())

	_, err := store.Insert(context.Background(), first)
	require.NoError(t, err)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
