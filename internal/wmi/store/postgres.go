// Package store reads WMI names from PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"vinkit/pkg/platform/sentinel"
)

// Schema creates the table Postgres reads from.
const Schema = `CREATE TABLE IF NOT EXISTS wmi_names (
	locale TEXT NOT NULL,
	key    TEXT NOT NULL,
	value  TEXT NOT NULL,
	PRIMARY KEY (locale, key)
)`

// Name is one localized WMI name row.
type Name struct {
	Locale string
	Key    string
	Value  string
}

// Postgres resolves WMI names from the wmi_names table. Keys missing from
// the requested locale are read from the base locale unless the store was
// built WithExactLocale.
type Postgres struct {
	db         *sql.DB
	baseLocale string
	exact      bool
}

// Option configures a Postgres store.
type Option func(*Postgres)

// WithExactLocale turns off the base-locale fallback so a resolver chained
// behind this store can answer with its own entry for the requested locale.
func WithExactLocale() Option {
	return func(p *Postgres) {
		p.exact = true
	}
}

// NewPostgres constructs a PostgreSQL-backed resolver.
func NewPostgres(db *sql.DB, baseLocale string, opts ...Option) (*Postgres, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if strings.TrimSpace(baseLocale) == "" {
		return nil, fmt.Errorf("base locale is required")
	}
	p := &Postgres{db: db, baseLocale: baseLocale}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Resolve implements wmi.Resolver.
func (p *Postgres) Resolve(ctx context.Context, locale, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `
		SELECT value FROM wmi_names
		WHERE key = $1 AND locale = ANY($2)
		ORDER BY locale = $3 DESC
		LIMIT 1`,
		key, pq.Array(p.candidates(locale)), locale,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find wmi name: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return value, true, nil
}

// candidates lists the locales a lookup may be answered from.
func (p *Postgres) candidates(locale string) []string {
	if p.exact || locale == p.baseLocale {
		return []string{locale}
	}
	return []string{locale, p.baseLocale}
}

// Upsert writes names in one transaction, replacing existing values.
func (p *Postgres) Upsert(ctx context.Context, names []Name) error {
	if len(names) == 0 {
		return nil
	}
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin wmi upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO wmi_names (locale, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (locale, key) DO UPDATE SET value = EXCLUDED.value`)
	if err != nil {
		return fmt.Errorf("prepare wmi upsert: %w", err)
	}
	defer stmt.Close()

	for _, n := range names {
		if _, err := stmt.ExecContext(ctx, n.Locale, n.Key, n.Value); err != nil {
			return fmt.Errorf("upsert wmi name %s/%s: %w", n.Locale, n.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wmi upsert: %w", err)
	}
	return nil
}
