//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"vinkit/internal/wmi"
	"vinkit/internal/wmi/catalog"
	"vinkit/internal/wmi/store"
	"vinkit/pkg/testutil/containers"
	"vinkit/pkg/vin"
)

type PostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.Require().NoError(s.postgres.Exec(context.Background(), store.Schema))

	var err error
	s.store, err = store.NewPostgres(s.postgres.DB, "en")
	s.Require().NoError(err)
}

func (s *PostgresSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "wmi_names"))
	s.Require().NoError(s.store.Upsert(ctx, []store.Name{
		{Locale: "en", Key: "VIN_REGION_W", Value: "Europe"},
		{Locale: "de", Key: "VIN_REGION_W", Value: "Europa"},
		{Locale: "en", Key: "VIN_COUNTRY_W", Value: "Germany"},
		{Locale: "en", Key: "VIN_MANUFACTURER_WBA", Value: "BMW"},
	}))
}

func (s *PostgresSuite) TestResolve() {
	ctx := context.Background()

	s.Run("prefers requested locale", func() {
		value, ok, err := s.store.Resolve(ctx, "de", "VIN_REGION_W")
		s.Require().NoError(err)
		s.True(ok)
		s.Equal("Europa", value)
	})

	s.Run("falls back to base locale", func() {
		value, ok, err := s.store.Resolve(ctx, "de", "VIN_COUNTRY_W")
		s.Require().NoError(err)
		s.True(ok)
		s.Equal("Germany", value)
	})

	s.Run("miss", func() {
		_, ok, err := s.store.Resolve(ctx, "en", "VIN_COUNTRY_WB")
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *PostgresSuite) TestExactLocaleDefersToCatalog() {
	ctx := context.Background()
	exact, err := store.NewPostgres(s.postgres.DB, "en", store.WithExactLocale())
	s.Require().NoError(err)

	_, ok, err := exact.Resolve(ctx, "de", "VIN_COUNTRY_W")
	s.Require().NoError(err)
	s.False(ok)

	names := wmi.Chain(exact, catalog.MustLoadEmbedded())
	value, ok, err := names.Resolve(ctx, "de", "VIN_COUNTRY_W")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("Deutschland", value)

	value, _, err = names.Resolve(ctx, "de", "VIN_REGION_W")
	s.Require().NoError(err)
	s.Equal("Europa", value)
}

func (s *PostgresSuite) TestUpsertReplaces() {
	ctx := context.Background()
	s.Require().NoError(s.store.Upsert(ctx, []store.Name{
		{Locale: "en", Key: "VIN_MANUFACTURER_WBA", Value: "BMW AG"},
	}))

	value, ok, err := s.store.Resolve(ctx, "en", "VIN_MANUFACTURER_WBA")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("BMW AG", value)
}

func (s *PostgresSuite) TestDescribeThroughStore() {
	d, err := wmi.NewDescriber(s.store)
	s.Require().NoError(err)

	desc, err := d.Describe(context.Background(), "de", vin.New("WBA00000200000000"))
	s.Require().NoError(err)
	s.Equal(wmi.Description{Region: "Europa", Country: "Germany", Manufacturer: "BMW"}, desc)
}
