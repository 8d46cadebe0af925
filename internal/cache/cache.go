// Package cache is a local sqlite read cache for profiles and transfers.
// Pages render from here immediately while a network refresh is in flight;
// a miss just means the page waits for the network.
package cache

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kindling-cc/kindling/internal/api"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Cache wraps the sqlite handle.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path and applies pending
// migrations.
func Open(path string) (*Cache, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return &Cache{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// PutProfile upserts a fetched profile.
func (c *Cache) PutProfile(ctx context.Context, p api.Profile) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO profiles (account, name, email, bio, avatar_url, community, joined_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			bio = excluded.bio,
			avatar_url = excluded.avatar_url,
			community = excluded.community,
			joined_at = excluded.joined_at,
			fetched_at = excluded.fetched_at`,
		p.Account, p.Name, p.Email, p.Bio, p.AvatarURL, p.Community, p.JoinedAt, now())
	return err
}

// GetProfile returns the cached profile for account, or nil on a miss.
func (c *Cache) GetProfile(ctx context.Context, account string) (*api.Profile, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT account, name, email, bio, avatar_url, community, joined_at
		FROM profiles WHERE account = ?`, account)
	var p api.Profile
	var joined sql.NullTime
	err := row.Scan(&p.Account, &p.Name, &p.Email, &p.Bio, &p.AvatarURL, &p.Community, &joined)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if joined.Valid {
		p.JoinedAt = joined.Time
	}
	return &p, nil
}

// PutTransfer upserts a fetched transfer.
func (c *Cache) PutTransfer(ctx context.Context, t api.Transfer) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO transfers (id, from_account, to_account, amount, symbol, memo, created_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			from_account = excluded.from_account,
			to_account = excluded.to_account,
			amount = excluded.amount,
			symbol = excluded.symbol,
			memo = excluded.memo,
			created_at = excluded.created_at,
			fetched_at = excluded.fetched_at`,
		t.ID.String(), t.From, t.To, t.Amount, t.Symbol, t.Memo, t.CreatedAt, now())
	return err
}

// GetTransfer returns the cached transfer, or nil on a miss.
func (c *Cache) GetTransfer(ctx context.Context, id uuid.UUID) (*api.Transfer, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, from_account, to_account, amount, symbol, memo, created_at
		FROM transfers WHERE id = ?`, id.String())
	var t api.Transfer
	var rawID string
	var created sql.NullTime
	err := row.Scan(&rawID, &t.From, &t.To, &t.Amount, &t.Symbol, &t.Memo, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("corrupt transfer id %q: %w", rawID, err)
	}
	if created.Valid {
		t.CreatedAt = created.Time
	}
	return &t, nil
}

// now returns UTC time truncated to seconds (consistent with SQLite default).
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
