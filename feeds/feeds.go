// Package feeds selects the posts a site shows according to its template
package feeds

import (
	"fmt"
	"time"

	"cmscore/analytics"
	"cmscore/config"
	"cmscore/models"
	"cmscore/query"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// DefaultLimit is how many posts a site front page shows
const DefaultLimit = 3

// FeedMap maps site templates to their Feed
type FeedMap map[models.SiteTemplate]*Feed

// Feed is the runtime post selection of one site template
type Feed struct {
	Template models.SiteTemplate
	Limit    int
	builder  *FeedQueryBuilder
}

// Select returns the first Limit posts of the feed
func (f *Feed) Select(posts []*models.Post) []*models.Post {
	return f.builder.Build(posts, f.Limit)
}

// Rank orders every eligible post without applying the limit
func (f *Feed) Rank(posts []*models.Post) []*models.Post {
	return f.builder.Build(posts, 0)
}

// ForSite returns the feed of the site template, falling back to latest posts
func (m FeedMap) ForSite(site models.Site) *Feed {
	if feed, ok := m[site.Template]; ok {
		return feed
	}
	return m[models.TemplateLatestPosts]
}

// InitializeFeeds builds a feed for every configured template. Templates
// missing from the configuration get their built in selection.
func InitializeFeeds(cfg *config.TomlConfig, counter PostActionCounter, now func() time.Time) (FeedMap, error) {
	feeds := DefaultFeeds(counter, now)

	for _, feedCfg := range cfg.Feeds {
		template := models.SiteTemplate(feedCfg.Template)
		if !lo.Contains(models.SiteTemplates, template) {
			return nil, fmt.Errorf("%w: unknown site template %q", models.ErrValidation, feedCfg.Template)
		}

		builder := NewFeedQueryBuilder()
		builder.AddFilter(&VisibleFilter{Now: now})

		for _, filterCfg := range feedCfg.Filters {
			filter, err := filterFromConfig(filterCfg, cfg.Keywords)
			if err != nil {
				return nil, fmt.Errorf("feed %s: %w", template, err)
			}
			builder.AddFilter(filter)
		}

		for _, scoringCfg := range feedCfg.Scoring {
			strategy, err := scoringFromConfig(scoringCfg, counter, now)
			if err != nil {
				return nil, fmt.Errorf("feed %s: %w", template, err)
			}
			weight := scoringCfg.Weight
			if weight == 0 {
				weight = 1.0
			}
			builder.AddScoringLayer(strategy, weight)
		}

		limit := feedCfg.Limit
		if limit <= 0 {
			limit = DefaultLimit
		}

		feeds[template] = &Feed{Template: template, Limit: limit, builder: builder}

		log.WithFields(log.Fields{
			"template": template,
			"filters":  len(feedCfg.Filters) + 1,
			"scoring":  len(feedCfg.Scoring),
			"limit":    limit,
		}).Debug("Initialized feed")
	}

	return feeds, nil
}

// DefaultFeeds returns the built in selection of every template
func DefaultFeeds(counter PostActionCounter, now func() time.Time) FeedMap {
	feed := func(template models.SiteTemplate, scoring query.ScoringStrategy, filters ...query.FilterStrategy) *Feed {
		builder := NewFeedQueryBuilder()
		builder.AddFilter(&VisibleFilter{Now: now})
		for _, filter := range filters {
			builder.AddFilter(filter)
		}
		builder.AddScoringLayer(scoring, 1.0)
		return &Feed{Template: template, Limit: DefaultLimit, builder: builder}
	}

	return FeedMap{
		models.TemplateTopPostsFirst:    feed(models.TemplateTopPostsFirst, &ActionScoring{Counter: counter, Action: analytics.PostView}),
		models.TemplateTopCommentsFirst: feed(models.TemplateTopCommentsFirst, &ActionScoring{Counter: counter, Action: analytics.PostComment}),
		models.TemplateLatestPosts:      feed(models.TemplateLatestPosts, &TimeDecayScoring{Now: now}),
		models.TemplateFocusOnMedia:     feed(models.TemplateFocusOnMedia, &TimeDecayScoring{Now: now}, &MediaFilter{}),
	}
}

func filterFromConfig(cfg config.TomlFilter, keywords config.TomlKeywords) (query.FilterStrategy, error) {
	switch cfg.Type {
	case "language":
		return &LanguageFilter{Languages: cfg.Languages}, nil
	case "media":
		return &MediaFilter{}, nil
	case "keyword":
		include, err := resolveKeywords(cfg.Include, keywords)
		if err != nil {
			return nil, err
		}
		exclude, err := resolveKeywords(cfg.Exclude, keywords)
		if err != nil {
			return nil, err
		}
		return &KeywordFilter{IncludeKeywords: include, ExcludeKeywords: exclude}, nil
	default:
		return nil, fmt.Errorf("%w: unknown filter type %q", models.ErrValidation, cfg.Type)
	}
}

func scoringFromConfig(cfg config.TomlScoring, counter PostActionCounter, now func() time.Time) (query.ScoringStrategy, error) {
	switch cfg.Type {
	case "none":
		return &NoScoring{}, nil
	case "recency":
		return &TimeDecayScoring{Now: now}, nil
	case "views":
		return &ActionScoring{Counter: counter, Action: analytics.PostView}, nil
	case "comments":
		return &ActionScoring{Counter: counter, Action: analytics.PostComment}, nil
	case "shares":
		return &ActionScoring{Counter: counter, Action: analytics.PostShare}, nil
	default:
		return nil, fmt.Errorf("%w: unknown scoring type %q", models.ErrValidation, cfg.Type)
	}
}

// resolveKeywords expands references to named keyword lists
func resolveKeywords(names []string, keywords config.TomlKeywords) ([]string, error) {
	resolved := []string{}
	for _, name := range names {
		list, ok := keywords[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown keyword list %q", models.ErrValidation, name)
		}
		resolved = append(resolved, list...)
	}
	return resolved, nil
}
