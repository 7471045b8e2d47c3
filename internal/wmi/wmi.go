// Package wmi resolves the World Manufacturer Identifier of a VIN to
// human-readable region, country and manufacturer names.
//
// Names come from a key/value Resolver. Keys have the form
// <NAMESPACE>_<KIND>_<CODE>; a miss is retried with the code shortened by
// one trailing character until a hit or the code runs out.
package wmi

//go:generate mockgen -source=wmi.go -destination=mocks/mocks.go -package=mocks Resolver

import (
	"context"
	"fmt"
	"strings"

	"vinkit/pkg/vin"
)

// DefaultNamespace prefixes every lookup key unless overridden.
const DefaultNamespace = "VIN"

// Kind selects which name a key refers to.
type Kind string

const (
	KindRegion       Kind = "REGION"
	KindCountry      Kind = "COUNTRY"
	KindManufacturer Kind = "MANUFACTURER"
)

// codeLength is how many WMI characters each kind keys on.
func (k Kind) codeLength() int {
	switch k {
	case KindRegion:
		return 1
	case KindCountry:
		return 2
	default:
		return 3
	}
}

// Resolver looks up one localized value. A miss is ok=false with a nil
// error; err is reserved for infrastructure failures.
type Resolver interface {
	Resolve(ctx context.Context, locale, key string) (string, bool, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, locale, key string) (string, bool, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, locale, key string) (string, bool, error) {
	return f(ctx, locale, key)
}

// Chain asks each resolver in turn and returns the first hit. An error
// stops the chain.
func Chain(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(ctx context.Context, locale, key string) (string, bool, error) {
		for _, r := range resolvers {
			value, ok, err := r.Resolve(ctx, locale, key)
			if err != nil || ok {
				return value, ok, err
			}
		}
		return "", false, nil
	})
}

// Description holds the resolved names for one WMI. Empty fields mean the
// lookup missed.
type Description struct {
	Region       string `json:"region,omitempty" yaml:"region,omitempty"`
	Country      string `json:"country,omitempty" yaml:"country,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
}

// IsZero reports whether nothing was resolved.
func (d Description) IsZero() bool {
	return d == Description{}
}

// Key builds the lookup key for kind from a full WMI. Short WMIs use what
// is available.
func Key(namespace string, kind Kind, wmi string) string {
	code := wmi
	if n := kind.codeLength(); len(code) > n {
		code = code[:n]
	}
	return prefix(namespace, kind) + code
}

func prefix(namespace string, kind Kind) string {
	return namespace + "_" + string(kind) + "_"
}

// Describer turns a VIN into a Description via a Resolver.
type Describer struct {
	resolver  Resolver
	namespace string
}

// Option configures a Describer.
type Option func(*Describer)

// WithNamespace overrides DefaultNamespace.
func WithNamespace(namespace string) Option {
	return func(d *Describer) {
		if ns := strings.TrimSpace(namespace); ns != "" {
			d.namespace = ns
		}
	}
}

// NewDescriber creates a Describer backed by resolver.
func NewDescriber(resolver Resolver, opts ...Option) (*Describer, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	d := &Describer{resolver: resolver, namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Describe resolves all three names for v. Invalid VINs have no WMI and
// yield an empty Description without any lookup.
func (d *Describer) Describe(ctx context.Context, locale string, v vin.VIN) (Description, error) {
	code := v.WMI()
	if code == "" {
		return Description{}, nil
	}

	var desc Description
	var err error
	if desc.Region, err = d.Lookup(ctx, locale, KindRegion, code); err != nil {
		return Description{}, err
	}
	if desc.Country, err = d.Lookup(ctx, locale, KindCountry, code); err != nil {
		return Description{}, err
	}
	if desc.Manufacturer, err = d.Lookup(ctx, locale, KindManufacturer, code); err != nil {
		return Description{}, err
	}
	return desc, nil
}

// Lookup resolves one kind for a WMI, shortening the key on each miss.
// A total miss returns "" and no error.
func (d *Describer) Lookup(ctx context.Context, locale string, kind Kind, wmi string) (string, error) {
	minLen := len(prefix(d.namespace, kind))
	for key := Key(d.namespace, kind, wmi); len(key) > minLen; key = key[:len(key)-1] {
		value, ok, err := d.resolver.Resolve(ctx, locale, key)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", key, err)
		}
		if ok {
			return value, nil
		}
	}
	return "", nil
}
