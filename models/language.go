package models

import (
	"strings"

	"github.com/samber/lo"
)

// Language is a supported content language with a canonical code and
// any number of alias codes.
type Language struct {
	Name string
	Code string
	// ISO 639-1 code used for language detection
	Iso     string
	aliases []string
}

// NormalizeCode lower cases and trims a language code
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func NewLanguage(name, code, iso string, aliases ...string) *Language {
	code = NormalizeCode(code)
	if iso == "" {
		iso, _, _ = strings.Cut(code, "-")
	}
	lang := &Language{
		Name: name,
		Code: code,
		Iso:  NormalizeCode(iso),
	}
	for _, alias := range aliases {
		lang.AddAlias(alias)
	}
	return lang
}

// Matches reports whether code is the canonical code or one of the aliases
func (l *Language) Matches(code string) bool {
	code = NormalizeCode(code)
	if code == "" {
		return false
	}
	return l.Code == code || lo.Contains(l.aliases, code)
}

// AddAlias inserts code into the alias set. It returns false when the code
// was already present.
func (l *Language) AddAlias(code string) bool {
	code = NormalizeCode(code)
	if code == "" || lo.Contains(l.aliases, code) {
		return false
	}
	l.aliases = append(l.aliases, code)
	return true
}

func (l *Language) Aliases() []string {
	aliases := make([]string, len(l.aliases))
	copy(aliases, l.aliases)
	return aliases
}

// Equal compares languages by canonical code only
func (l *Language) Equal(other *Language) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.Code == other.Code
}

func (l *Language) String() string {
	return l.Name + " (" + l.Code + ")"
}
