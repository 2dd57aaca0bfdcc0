package feeds

import (
	"strings"
	"time"

	"cmscore/models"
	"cmscore/query"

	"github.com/samber/lo"
)

// LanguageFilter keeps posts with content in any of the languages, given by
// code or alias
type LanguageFilter struct {
	Languages []string
}

func (f *LanguageFilter) Keep(post *models.Post) bool {
	if len(f.Languages) == 0 {
		return true
	}
	return lo.SomeBy(post.Languages(), func(l *models.Language) bool {
		return lo.SomeBy(f.Languages, l.Matches)
	})
}

// MediaFilter keeps posts whose default content shows a media file
type MediaFilter struct{}

func (f *MediaFilter) Keep(post *models.Post) bool {
	content, err := post.GetContent(nil)
	return err == nil && content.HasMedia()
}

// KeywordFilter filters posts on words in their default title and text
type KeywordFilter struct {
	IncludeKeywords []string
	ExcludeKeywords []string
}

func (f *KeywordFilter) Keep(post *models.Post) bool {
	content, err := post.GetContent(nil)
	if err != nil {
		return false
	}
	text := strings.ToLower(content.Title + " " + content.Text())
	contains := func(keyword string) bool {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		return keyword != "" && strings.Contains(text, keyword)
	}

	if len(f.IncludeKeywords) > 0 && !lo.SomeBy(f.IncludeKeywords, contains) {
		return false
	}
	return !lo.SomeBy(f.ExcludeKeywords, contains)
}

// VisibleFilter drops posts scheduled after Now
type VisibleFilter struct {
	Now func() time.Time
}

func (f *VisibleFilter) Keep(post *models.Post) bool {
	return post.IsVisible(f.Now())
}

var _ query.FilterStrategy = (*LanguageFilter)(nil)
var _ query.FilterStrategy = (*MediaFilter)(nil)
var _ query.FilterStrategy = (*KeywordFilter)(nil)
var _ query.FilterStrategy = (*VisibleFilter)(nil)
