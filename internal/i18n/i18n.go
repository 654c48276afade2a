// Package i18n provides translation lookup for generated document text
// (anchor link labels, TOC titles). Locales are embedded YAML files with
// flat dotted keys.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/docfold/go-doc2pdf/internal/yamlutil"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// ErrLocaleNotFound indicates the requested locale has no embedded file.
var ErrLocaleNotFound = errors.New("locale not found")

// Translator resolves dotted message keys for one locale.
// The zero value is unusable; create with New.
type Translator struct {
	locale   string
	messages map[string]string
}

// New loads the embedded locale file for the given tag ("en", "fr", ...).
// An empty tag selects DefaultLocale. Unknown locales are an error so a
// misconfigured locale fails loudly at construction instead of silently
// falling back mid-document.
func New(locale string) (*Translator, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	data, err := localeFS.ReadFile(path.Join("locales", locale+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrLocaleNotFound, locale, strings.Join(Locales(), ", "))
	}

	messages := map[string]string{}
	if err := yamlutil.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}

	return &Translator{locale: locale, messages: messages}, nil
}

// Locale returns the tag this translator was built for.
func (t *Translator) Locale() string {
	return t.locale
}

// Translate returns the message for key, or "" when the key is missing.
// Callers supply their own fallback text for missing keys.
func (t *Translator) Translate(key string) string {
	return t.messages[key]
}

// Locales lists the embedded locale tags in sorted order.
func Locales() []string {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil
	}
	var tags []string
	for _, e := range entries {
		tags = append(tags, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(tags)
	return tags
}
