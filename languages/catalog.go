// Package languages holds the catalog of supported content languages
package languages

import (
	"fmt"
	"sync"

	"cmscore/config"
	"cmscore/models"

	"github.com/samber/lo"
)

// Catalog is an ordered set of languages. Iteration order is insertion order.
type Catalog struct {
	mu        sync.RWMutex
	languages []*models.Language
}

func NewCatalog(languages ...*models.Language) (*Catalog, error) {
	catalog := &Catalog{}
	for _, lang := range languages {
		if err := catalog.Add(lang); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// DefaultCatalog returns the built in languages
func DefaultCatalog() *Catalog {
	catalog, _ := NewCatalog(
		models.NewLanguage("Português Brasileiro", "pt-br", "pt", "ptbr", "pt", "br"),
		models.NewLanguage("Inglês", "en-us", "en", "enus", "en", "us"),
		models.NewLanguage("Espanhol", "es", "es"),
		models.NewLanguage("Chinês", "zh", "zh"),
		models.NewLanguage("Japonês", "ja", "ja"),
	)
	return catalog
}

// FromConfig builds a catalog from configured languages, falling back to the
// defaults when none are configured.
func FromConfig(languages []config.TomlLanguage) (*Catalog, error) {
	if len(languages) == 0 {
		return DefaultCatalog(), nil
	}
	catalog := &Catalog{}
	for _, lang := range languages {
		if lang.Code == "" {
			return nil, fmt.Errorf("%w: language %q has no code", models.ErrValidation, lang.Name)
		}
		if err := catalog.Add(models.NewLanguage(lang.Name, lang.Code, lang.Iso, lang.Aliases...)); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// Add appends a language. Canonical codes must be unique.
func (c *Catalog) Add(lang *models.Language) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lo.ContainsBy(c.languages, func(l *models.Language) bool { return l.Equal(lang) }) {
		return fmt.Errorf("%w: duplicate language code %q", models.ErrValidation, lang.Code)
	}
	c.languages = append(c.languages, lang)
	return nil
}

// Resolve returns the first language whose code or aliases match code
func (c *Catalog) Resolve(code string) (*models.Language, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lang, ok := lo.Find(c.languages, func(l *models.Language) bool {
		return l.Matches(code)
	})
	if !ok {
		return nil, fmt.Errorf("%w: language %q", models.ErrNotFound, models.NormalizeCode(code))
	}
	return lang, nil
}

// MissingLanguages returns the catalog languages post has no content in
func (c *Catalog) MissingLanguages(post *models.Post) []*models.Language {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return lo.Reject(c.languages, func(l *models.Language, _ int) bool {
		return post.HasLanguage(l)
	})
}

// AddAlias registers code as an alias of lang. Adding an existing alias is a
// no-op; an alias already used by another language is rejected.
func (c *Catalog) AddAlias(lang *models.Language, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if models.NormalizeCode(code) == "" {
		return fmt.Errorf("%w: empty alias", models.ErrValidation)
	}

	target, ok := lo.Find(c.languages, func(l *models.Language) bool { return l.Equal(lang) })
	if !ok {
		return fmt.Errorf("%w: language %q is not in the catalog", models.ErrNotFound, lang.Code)
	}

	if owner, taken := lo.Find(c.languages, func(l *models.Language) bool { return l.Matches(code) }); taken && !owner.Equal(target) {
		return fmt.Errorf("%w: alias %q already resolves to %q", models.ErrValidation, models.NormalizeCode(code), owner.Code)
	}

	target.AddAlias(code)
	return nil
}

// List returns the languages in catalog order
func (c *Catalog) List() []*models.Language {
	c.mu.RLock()
	defer c.mu.RUnlock()

	languages := make([]*models.Language, len(c.languages))
	copy(languages, c.languages)
	return languages
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.languages)
}
