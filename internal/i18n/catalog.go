// Package i18n loads translation catalogs and negotiates the request locale.
package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
)

// ErrNoCatalogs indicates the catalog directory holds no usable file.
var ErrNoCatalogs = errors.New("i18n: no catalogs found")

type catalogFile struct {
	Lang     string                 `yaml:"lang"`
	Name     string                 `yaml:"name"`
	Table    datatable.Translations `yaml:"table"`
	Messages map[string]any         `yaml:"messages"`
}

// Catalog is the set of strings of one language.
type Catalog struct {
	Tag      language.Tag
	Name     string
	table    datatable.Translations
	messages map[string]string
	parent   *Catalog
}

// T translates a dotted key. Unknown keys fall back to the default language
// and finally to the key itself.
func (c *Catalog) T(key string) string {
	for cur := c; cur != nil; cur = cur.parent {
		if msg, ok := cur.messages[key]; ok {
			return msg
		}
	}
	return key
}

// Has reports whether the key is translated in this catalog or its parent.
func (c *Catalog) Has(key string) bool {
	return c.T(key) != key
}

// Table returns the table chrome strings with English fallbacks.
func (c *Catalog) Table() datatable.Translations {
	if c == nil {
		return datatable.DefaultTranslations()
	}
	return c.table.WithDefaults()
}

// Printer returns a number formatter for the catalog language.
func (c *Catalog) Printer() *message.Printer {
	if c == nil {
		return message.NewPrinter(language.English)
	}
	return message.NewPrinter(c.Tag)
}

// Lang returns the BCP 47 string of the catalog language.
func (c *Catalog) Lang() string {
	if c == nil {
		return language.English.String()
	}
	return c.Tag.String()
}

// Bundle holds every loaded catalog.
type Bundle struct {
	catalogs map[language.Tag]*Catalog
	tags     []language.Tag
	matcher  language.Matcher
	fallback *Catalog
}

// Load reads every *.yaml file of dir. The fallback language becomes the
// parent of the other catalogs and wins when negotiation fails.
func Load(fsys fs.FS, dir, fallback string) (*Bundle, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", dir, err)
	}
	b := &Bundle{catalogs: make(map[language.Tag]*Catalog)}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", entry.Name(), err)
		}
		cat, err := parseCatalog(raw, strings.TrimSuffix(entry.Name(), ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("i18n: %s: %w", entry.Name(), err)
		}
		b.catalogs[cat.Tag] = cat
	}
	if len(b.catalogs) == 0 {
		return nil, ErrNoCatalogs
	}

	fallbackTag, err := language.Parse(fallback)
	if err != nil {
		fallbackTag = language.English
	}
	b.fallback = b.catalogs[fallbackTag]
	if b.fallback == nil {
		b.fallback = b.catalogs[language.English]
	}
	if b.fallback == nil {
		return nil, fmt.Errorf("i18n: no catalog for fallback %q", fallback)
	}

	// The matcher treats the first tag as the default.
	b.tags = append(b.tags, b.fallback.Tag)
	var others []language.Tag
	for tag, cat := range b.catalogs {
		if cat != b.fallback {
			cat.parent = b.fallback
			others = append(others, tag)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	b.tags = append(b.tags, others...)
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func parseCatalog(raw []byte, name string) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if file.Lang == "" {
		file.Lang = name
	}
	tag, err := language.Parse(file.Lang)
	if err != nil {
		return nil, err
	}
	cat := &Catalog{Tag: tag, Name: file.Name, table: file.Table, messages: make(map[string]string)}
	flatten("", file.Messages, cat.messages)
	return cat, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case nil:
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

// Default returns the fallback catalog.
func (b *Bundle) Default() *Catalog {
	return b.fallback
}

// Languages lists the loaded catalogs, fallback first.
func (b *Bundle) Languages() []*Catalog {
	out := make([]*Catalog, 0, len(b.tags))
	for _, tag := range b.tags {
		out = append(out, b.catalogs[tag])
	}
	return out
}

// Lookup returns the catalog of an exact language code.
func (b *Bundle) Lookup(lang string) (*Catalog, bool) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, false
	}
	cat, ok := b.catalogs[tag]
	return cat, ok
}

// Match negotiates the best catalog for the given preferences, each either a
// language code or an Accept-Language header value. Earlier preferences win.
func (b *Bundle) Match(prefs ...string) *Catalog {
	for _, pref := range prefs {
		if strings.TrimSpace(pref) == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := b.matcher.Match(tags...)
		if conf == language.No {
			continue
		}
		return b.catalogs[b.tags[idx]]
	}
	return b.fallback
}
