package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinkit/pkg/platform/sentinel"
)

func TestNewPostgres(t *testing.T) {
	_, err := NewPostgres(nil, "en")
	assert.ErrorContains(t, err, "database is required")

	_, err = NewPostgres(&sql.DB{}, " ")
	assert.ErrorContains(t, err, "base locale is required")

	p, err := NewPostgres(&sql.DB{}, "en")
	assert.NoError(t, err)
	assert.Equal(t, "en", p.baseLocale)
}

func TestCandidates(t *testing.T) {
	fallback, err := NewPostgres(&sql.DB{}, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en"}, fallback.candidates("de"))
	assert.Equal(t, []string{"en"}, fallback.candidates("en"))

	exact, err := NewPostgres(&sql.DB{}, "en", WithExactLocale())
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, exact.candidates("de"))
}

func TestResolveClosedDatabaseIsUnavailable(t *testing.T) {
	db, err := sql.Open("postgres", "postgres://localhost/none?sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	p, err := NewPostgres(db, "en")
	require.NoError(t, err)

	_, ok, err := p.Resolve(context.Background(), "de", "VIN_COUNTRY_W")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
}
