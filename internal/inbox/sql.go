package inbox

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/williambechay/portfolio/internal/backend"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// sqliteTimeLayout is fixed-width so text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Dialect selects the SQL flavour of a SQLStore.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ErrUnknownDialect is returned for dialects other than postgres and sqlite.
var ErrUnknownDialect = errors.New("inbox: unknown sql dialect")

// ParseDialect validates a dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case DialectPostgres, DialectSQLite:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, s)
	}
}

func (d Dialect) driver() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// SQLStore persists messages in a contact_messages table.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// NewSQLStore wraps an open database. The schema must already exist; see
// Migrate.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, now: time.Now}
}

// Open connects to dsn with the dialect's driver, applies migrations and
// returns the store.
func Open(ctx context.Context, dialect Dialect, dsn string) (*SQLStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("inbox: dsn is required")
	}
	if _, err := ParseDialect(string(dialect)); err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}
	if err := Migrate(db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLStore(db, dialect), nil
}

// Migrate applies the embedded migrations for dialect.
func Migrate(db *sql.DB, dialect Dialect) error {
	src, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return fmt.Errorf("load %s migrations: %w", dialect, err)
	}

	var m *migrate.Migrate
	switch dialect {
	case DialectPostgres:
		drv, derr := migratepgx.WithInstance(db, &migratepgx.Config{})
		if derr != nil {
			return fmt.Errorf("init postgres migrate driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", src, "pgx", drv)
	case DialectSQLite:
		drv, derr := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if derr != nil {
			return fmt.Errorf("init sqlite migrate driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite", drv)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply %s migrations: %w", dialect, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const insertMessageSQL = `INSERT INTO contact_messages (name, email, subject, reason, message, created_at)
VALUES (?, ?, ?, ?, ?, ?) RETURNING id`

const listMessagesSQL = `SELECT id, name, email, subject, reason, message, created_at
FROM contact_messages ORDER BY created_at DESC, id DESC`

// Insert stores msg and returns it with its assigned ID and timestamp.
func (s *SQLStore) Insert(ctx context.Context, msg backend.NewMessage) (backend.StoredMessage, error) {
	created := s.now().UTC()
	stored := backend.StoredMessage{
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Reason:    msg.Reason,
		Message:   msg.Message,
		CreatedAt: created,
	}
	var createdArg any = created
	if s.dialect == DialectSQLite {
		createdArg = created.Format(sqliteTimeLayout)
	}
	row := s.db.QueryRowContext(ctx, s.rebind(insertMessageSQL),
		msg.Name, msg.Email, msg.Subject, msg.Reason, msg.Message, createdArg)
	if err := row.Scan(&stored.ID); err != nil {
		return backend.StoredMessage{}, fmt.Errorf("insert contact message: %w", err)
	}
	return stored, nil
}

// List returns all messages ordered by created_at descending.
func (s *SQLStore) List(ctx context.Context) ([]backend.StoredMessage, error) {
	rows, err := s.db.QueryContext(ctx, listMessagesSQL)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var out []backend.StoredMessage
	for rows.Next() {
		var (
			msg     backend.StoredMessage
			created timestamp
		)
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Reason, &msg.Message, &created); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		msg.CreatedAt = time.Time(created)
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact messages: %w", err)
	}
	return out, nil
}

// timestamp scans time.Time values as well as the RFC 3339 text stored by
// SQLite.
type timestamp time.Time

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = timestamp(v.UTC())
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		*t = timestamp(time.Time{})
	default:
		return fmt.Errorf("unsupported created_at type %T", src)
	}
	return nil
}

func (t *timestamp) parse(s string) error {
	for _, layout := range []string{sqliteTimeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = timestamp(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("parse created_at %q", s)
}
