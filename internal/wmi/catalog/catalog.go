// Package catalog serves WMI names from YAML locale files.
package catalog

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale answers every key missing from a more specific locale.
const BaseLocale = "en"

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds the names of every loaded locale.
type Catalog struct {
	locales map[string]map[string]string
	tags    []language.Tag
	names   []string
	matcher language.Matcher
}

//go:embed locales/*.yaml
var embeddedFS embed.FS

// LoadEmbedded loads the locale files shipped with this package.
func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads every locales/*.yaml file from catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := c.add(p, file); err != nil {
			return nil, err
		}
	}

	if _, ok := c.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The base locale goes first so the matcher falls back to it.
	sort.SliceStable(c.names, func(i, j int) bool {
		return c.names[i] == BaseLocale && c.names[j] != BaseLocale
	})
	for _, name := range c.names {
		c.tags = append(c.tags, language.MustParse(name))
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// MustLoadEmbedded is like LoadEmbedded but panics on error.
func MustLoadEmbedded() *Catalog {
	c, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) add(p string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if fromPath := strings.TrimSuffix(path.Base(p), path.Ext(p)); locale != fromPath {
		return fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, fromPath)
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("catalog %s: parse locale tag %q: %w", p, locale, err)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		messages[trimmed] = value
	}
	c.locales[locale] = messages
	c.names = append(c.names, locale)
	return nil
}

// Locales returns the loaded locale identifiers, base locale first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Match picks the best loaded locale for a BCP 47 tag or Accept-Language
// header value. Unknown or malformed input selects BaseLocale.
func (c *Catalog) Match(locale string) string {
	tags, _, err := language.ParseAcceptLanguage(strings.TrimSpace(locale))
	if err != nil || len(tags) == 0 {
		return BaseLocale
	}
	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return BaseLocale
	}
	return c.names[index]
}

// Resolve implements wmi.Resolver. Keys missing from the matched locale
// are looked up in BaseLocale.
func (c *Catalog) Resolve(_ context.Context, locale, key string) (string, bool, error) {
	matched := c.Match(locale)
	if value, ok := c.locales[matched][key]; ok {
		return value, true, nil
	}
	if matched != BaseLocale {
		if value, ok := c.locales[BaseLocale][key]; ok {
			return value, true, nil
		}
	}
	return "", false, nil
}

// Messages returns a copy of one locale's names, or an empty map.
func (c *Catalog) Messages(locale string) map[string]string {
	source := c.locales[strings.TrimSpace(locale)]
	out := make(map[string]string, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}
