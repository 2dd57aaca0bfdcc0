package models

import (
	"fmt"
	"sync"
	"time"
)

// Post holds one Content per language. The first language ever added is the
// default and never changes.
type Post struct {
	Id          int64
	Poster      User
	Site        Site
	ScheduledAt time.Time
	CreatedAt   time.Time

	// guards contents and codes, posts are shared by the repository
	mu       sync.RWMutex
	contents map[string]Content
	// language codes in insertion order
	codes []string
}

// NewPost creates an empty post. A zero scheduledAt publishes immediately.
func NewPost(poster User, site Site, scheduledAt time.Time) *Post {
	now := time.Now()
	if scheduledAt.IsZero() {
		scheduledAt = now
	}
	return &Post{
		Poster:      poster,
		Site:        site,
		ScheduledAt: scheduledAt,
		CreatedAt:   now,
		contents:    make(map[string]Content),
	}
}

// AddContent inserts or replaces the content for lang
func (p *Post) AddContent(lang *Language, content Content) error {
	if lang == nil {
		return fmt.Errorf("%w: content needs a language", ErrValidation)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setContent(lang, content)
	return nil
}

// AddTranslation adds content for a language the post does not have yet
func (p *Post) AddTranslation(lang *Language, content Content) error {
	if lang == nil {
		return fmt.Errorf("%w: content needs a language", ErrValidation)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.contents[lang.Code]; ok {
		return fmt.Errorf("%w: post %d already has %s content", ErrValidation, p.Id, lang.Code)
	}
	p.setContent(lang, content)
	return nil
}

func (p *Post) setContent(lang *Language, content Content) {
	if p.contents == nil {
		p.contents = make(map[string]Content)
	}
	content.Language = lang
	if _, ok := p.contents[lang.Code]; !ok {
		p.codes = append(p.codes, lang.Code)
	}
	p.contents[lang.Code] = content
}

// GetContent returns the content for lang, or for the default language when
// lang is nil.
func (p *Post) GetContent(lang *Language) (Content, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.codes) == 0 {
		return Content{}, fmt.Errorf("%w: post %d has no content", ErrNotFound, p.Id)
	}
	code := p.codes[0]
	if lang != nil {
		code = lang.Code
	}
	content, ok := p.contents[code]
	if !ok {
		return Content{}, fmt.Errorf("%w: post %d has no content in %q", ErrNotFound, p.Id, code)
	}
	return content, nil
}

func (p *Post) DefaultLanguage() *Language {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.codes) == 0 {
		return nil
	}
	return p.contents[p.codes[0]].Language
}

// Languages returns the post languages in insertion order
func (p *Post) Languages() []*Language {
	p.mu.RLock()
	defer p.mu.RUnlock()
	languages := make([]*Language, 0, len(p.codes))
	for _, code := range p.codes {
		languages = append(languages, p.contents[code].Language)
	}
	return languages
}

func (p *Post) HasLanguage(lang *Language) bool {
	if lang == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.contents[lang.Code]
	return ok
}

func (p *Post) DefaultTitle() string {
	content, err := p.GetContent(nil)
	if err != nil {
		return ""
	}
	return content.Title
}

func (p *Post) IsVisible(now time.Time) bool {
	return !p.ScheduledAt.After(now)
}
