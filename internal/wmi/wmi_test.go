package wmi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vinkit/internal/wmi"
	"vinkit/internal/wmi/mocks"
	"vinkit/pkg/vin"
)

type DescriberSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	resolver  *mocks.MockResolver
	describer *wmi.Describer
}

func TestDescriberSuite(t *testing.T) {
	suite.Run(t, new(DescriberSuite))
}

func (s *DescriberSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.resolver = mocks.NewMockResolver(s.ctrl)
	var err error
	s.describer, err = wmi.NewDescriber(s.resolver)
	s.Require().NoError(err)
}

func (s *DescriberSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DescriberSuite) TestNew() {
	s.Run("nil resolver returns error", func() {
		_, err := wmi.NewDescriber(nil)
		s.Error(err)
		s.Contains(err.Error(), "resolver is required")
	})
}

func (s *DescriberSuite) TestKey() {
	s.Equal("VIN_REGION_W", wmi.Key("VIN", wmi.KindRegion, "WBA"))
	s.Equal("VIN_COUNTRY_WB", wmi.Key("VIN", wmi.KindCountry, "WBA"))
	s.Equal("VIN_MANUFACTURER_WBA", wmi.Key("VIN", wmi.KindManufacturer, "WBA"))
	s.Equal("VIN_COUNTRY_W", wmi.Key("VIN", wmi.KindCountry, "W"))
}

func (s *DescriberSuite) TestLookup() {
	ctx := context.Background()

	s.Run("exact hit", func() {
		s.resolver.EXPECT().Resolve(ctx, "en", "VIN_MANUFACTURER_WBA").Return("BMW", true, nil)

		name, err := s.describer.Lookup(ctx, "en", wmi.KindManufacturer, "WBA")
		s.Require().NoError(err)
		s.Equal("BMW", name)
	})

	s.Run("shortens key on miss", func() {
		gomock.InOrder(
			s.resolver.EXPECT().Resolve(ctx, "en", "VIN_MANUFACTURER_1HG").Return("", false, nil),
			s.resolver.EXPECT().Resolve(ctx, "en", "VIN_MANUFACTURER_1H").Return("Honda", true, nil),
		)

		name, err := s.describer.Lookup(ctx, "en", wmi.KindManufacturer, "1HG")
		s.Require().NoError(err)
		s.Equal("Honda", name)
	})

	s.Run("total miss stops before empty code", func() {
		gomock.InOrder(
			s.resolver.EXPECT().Resolve(ctx, "en", "VIN_COUNTRY_ZZ").Return("", false, nil),
			s.resolver.EXPECT().Resolve(ctx, "en", "VIN_COUNTRY_Z").Return("", false, nil),
		)

		name, err := s.describer.Lookup(ctx, "en", wmi.KindCountry, "ZZZ")
		s.Require().NoError(err)
		s.Empty(name)
	})

	s.Run("resolver failure is wrapped", func() {
		boom := errors.New("boom")
		s.resolver.EXPECT().Resolve(ctx, "en", "VIN_REGION_W").Return("", false, boom)

		_, err := s.describer.Lookup(ctx, "en", wmi.KindRegion, "WBA")
		s.ErrorIs(err, boom)
		s.Contains(err.Error(), "VIN_REGION_W")
	})
}

func (s *DescriberSuite) TestDescribe() {
	ctx := context.Background()

	s.Run("resolves all three names", func() {
		s.resolver.EXPECT().Resolve(ctx, "de", "VIN_REGION_W").Return("Europa", true, nil)
		s.resolver.EXPECT().Resolve(ctx, "de", "VIN_COUNTRY_WB").Return("", false, nil)
		s.resolver.EXPECT().Resolve(ctx, "de", "VIN_COUNTRY_W").Return("Deutschland", true, nil)
		s.resolver.EXPECT().Resolve(ctx, "de", "VIN_MANUFACTURER_WBA").Return("BMW", true, nil)

		desc, err := s.describer.Describe(ctx, "de", vin.New("WBA00000200000000"))
		s.Require().NoError(err)
		s.Equal(wmi.Description{Region: "Europa", Country: "Deutschland", Manufacturer: "BMW"}, desc)
	})

	s.Run("invalid VIN skips lookups", func() {
		desc, err := s.describer.Describe(ctx, "en", vin.New("INVALID"))
		s.Require().NoError(err)
		s.True(desc.IsZero())
	})

	s.Run("custom namespace", func() {
		d, err := wmi.NewDescriber(s.resolver, wmi.WithNamespace("FLEET"))
		s.Require().NoError(err)
		s.resolver.EXPECT().Resolve(ctx, "en", "FLEET_REGION_W").Return("Europe", true, nil)

		name, err := d.Lookup(ctx, "en", wmi.KindRegion, "WBA")
		s.Require().NoError(err)
		s.Equal("Europe", name)
	})
}

func TestResolverFunc(t *testing.T) {
	var r wmi.Resolver = wmi.ResolverFunc(func(_ context.Context, locale, key string) (string, bool, error) {
		return locale + ":" + key, true, nil
	})
	value, ok, err := r.Resolve(context.Background(), "en", "K")
	if err != nil || !ok || value != "en:K" {
		t.Fatalf("unexpected result %q %v %v", value, ok, err)
	}
}

func (s *DescriberSuite) TestChain() {
	ctx := context.Background()
	fallback := wmi.ResolverFunc(func(_ context.Context, _, key string) (string, bool, error) {
		return "fallback " + key, true, nil
	})
	chain := wmi.Chain(s.resolver, fallback)

	s.Run("first hit wins", func() {
		s.resolver.EXPECT().Resolve(ctx, "de", "VIN_COUNTRY_W").Return("Deutschland", true, nil)

		value, ok, err := chain.Resolve(ctx, "de", "VIN_COUNTRY_W")
		s.Require().NoError(err)
		s.True(ok)
		s.Equal("Deutschland", value)
	})

	s.Run("miss falls through", func() {
		s.resolver.EXPECT().Resolve(ctx, "de", "VIN_COUNTRY_W").Return("", false, nil)

		value, ok, err := chain.Resolve(ctx, "de", "VIN_COUNTRY_W")
		s.Require().NoError(err)
		s.True(ok)
		s.Equal("fallback VIN_COUNTRY_W", value)
	})

	s.Run("error stops the chain", func() {
		s.resolver.EXPECT().Resolve(ctx, "de", "VIN_COUNTRY_W").Return("", false, errors.New("db down"))

		_, ok, err := chain.Resolve(ctx, "de", "VIN_COUNTRY_W")
		s.Error(err)
		s.False(ok)
	})
}
