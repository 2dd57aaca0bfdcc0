package feeds_test

import (
	"errors"
	"testing"
	"time"

	"cmscore/analytics"
	"cmscore/config"
	"cmscore/feeds"
	"cmscore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

var (
	en = models.NewLanguage("English", "en-us", "", "en")
	pt = models.NewLanguage("Português", "pt-br", "", "pt")
)

type postFixture struct {
	id      int64
	age     time.Duration
	title   string
	text    string
	media   bool
	lang    *models.Language
	pending bool
}

func buildPosts(fixtures ...postFixture) []*models.Post {
	posts := []*models.Post{}
	for _, fixture := range fixtures {
		scheduledAt := now.Add(-fixture.age)
		if fixture.pending {
			scheduledAt = now.Add(time.Hour)
		}
		post := models.NewPost(models.User{}, models.Site{Id: 1}, scheduledAt)
		post.Id = fixture.id
		post.CreatedAt = now.Add(-fixture.age)

		body := []models.ContentBlock{models.TextBlock{Position: 1, Text: fixture.text}}
		if fixture.media {
			body = append(body, models.MediaBlock{Position: 2, Media: models.MediaFile{Filename: "x.png"}})
		}
		lang := fixture.lang
		if lang == nil {
			lang = en
		}
		post.AddContent(lang, models.Content{Title: fixture.title, Body: body})
		posts = append(posts, post)
	}
	return posts
}

func ids(posts []*models.Post) []int64 {
	result := []int64{}
	for _, post := range posts {
		result = append(result, post.Id)
	}
	return result
}

func logActions(store *analytics.Store, post *models.Post, action analytics.PostAction, n int) {
	for i := 0; i < n; i++ {
		store.Log(analytics.NewPostEntry(models.User{}, post.Site, post, action, now, nil))
	}
}

func TestDefaultFeeds(t *testing.T) {
	store := analytics.NewStore(nil, nil)
	posts := buildPosts(
		postFixture{id: 1, age: 4 * time.Hour},
		postFixture{id: 2, age: 3 * time.Hour, media: true},
		postFixture{id: 3, age: 2 * time.Hour},
		postFixture{id: 4, age: 1 * time.Hour, media: true},
		postFixture{id: 5, age: 0, pending: true, media: true},
	)
	logActions(store, posts[0], analytics.PostView, 5)
	logActions(store, posts[2], analytics.PostView, 3)
	logActions(store, posts[1], analytics.PostView, 1)
	logActions(store, posts[3], analytics.PostComment, 2)
	logActions(store, posts[1], analytics.PostComment, 1)
	logActions(store, posts[4], analytics.PostView, 100)

	feedMap := feeds.DefaultFeeds(store, clock)

	tests := []struct {
		template models.SiteTemplate
		expected []int64
	}{
		{template: models.TemplateTopPostsFirst, expected: []int64{1, 3, 2}},
		{template: models.TemplateTopCommentsFirst, expected: []int64{4, 2, 3}},
		{template: models.TemplateLatestPosts, expected: []int64{4, 3, 2}},
		{template: models.TemplateFocusOnMedia, expected: []int64{4, 2}},
	}

	for _, tt := range tests {
		t.Run(string(tt.template), func(t *testing.T) {
			feed := feedMap.ForSite(models.Site{Template: tt.template})
			assert.Equal(t, tt.expected, ids(feed.Select(posts)))
		})
	}

	// Unknown templates fall back to latest posts
	assert.Equal(t, models.TemplateLatestPosts, feedMap.ForSite(models.Site{Template: "weird"}).Template)
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(feedMap[models.TemplateLatestPosts].Rank(posts)))
}

func TestFilters(t *testing.T) {
	posts := buildPosts(
		postFixture{id: 1, title: "Go tips", text: "Channels and goroutines"},
		postFixture{id: 2, title: "Receitas", text: "Bolo de cenoura", lang: pt},
		postFixture{id: 3, title: "Go news", text: "Spam offers inside"},
	)

	tests := []struct {
		name     string
		filter   interface{ Keep(*models.Post) bool }
		expected []int64
	}{
		{name: "language filter", filter: &feeds.LanguageFilter{Languages: []string{" PT-BR "}}, expected: []int64{2}},
		{name: "language filter by alias", filter: &feeds.LanguageFilter{Languages: []string{"pt"}}, expected: []int64{2}},
		{name: "language filter by any of several codes", filter: &feeds.LanguageFilter{Languages: []string{"ja", "en"}}, expected: []int64{1, 3}},
		{name: "empty language filter", filter: &feeds.LanguageFilter{}, expected: []int64{1, 2, 3}},
		{name: "include keywords", filter: &feeds.KeywordFilter{IncludeKeywords: []string{"go"}}, expected: []int64{1, 3}},
		{name: "include and exclude keywords", filter: &feeds.KeywordFilter{IncludeKeywords: []string{"go"}, ExcludeKeywords: []string{"spam"}}, expected: []int64{1}},
		{name: "media filter", filter: &feeds.MediaFilter{}, expected: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := feeds.NewFeedQueryBuilder()
			builder.AddFilter(tt.filter)
			builder.AddScoringLayer(&feeds.NoScoring{}, 1.0)
			kept := builder.Build(posts, 0)

			// NoScoring orders by id descending
			expected := make([]int64, len(tt.expected))
			for i, id := range tt.expected {
				expected[len(expected)-1-i] = id
			}
			assert.Equal(t, expected, ids(kept))
		})
	}
}

func TestWeightedScoringLayers(t *testing.T) {
	store := analytics.NewStore(nil, nil)
	posts := buildPosts(postFixture{id: 1}, postFixture{id: 2})
	logActions(store, posts[0], analytics.PostView, 4)
	logActions(store, posts[1], analytics.PostView, 1)
	logActions(store, posts[1], analytics.PostShare, 2)

	builder := feeds.NewFeedQueryBuilder()
	builder.AddScoringLayer(&feeds.ActionScoring{Counter: store, Action: analytics.PostView}, 1.0)
	builder.AddScoringLayer(&feeds.ActionScoring{Counter: store, Action: analytics.PostShare}, 2.0)

	// 4 + 0 against 1 + 2*2
	assert.Equal(t, []int64{2, 1}, ids(builder.Build(posts, 0)))
	assert.Equal(t, []int64{2}, ids(builder.Build(posts, 1)))
}

func TestInitializeFeedsFromConfig(t *testing.T) {
	store := analytics.NewStore(nil, nil)
	cfg := &config.TomlConfig{
		Keywords: config.TomlKeywords{"golang": {"go", "gopher"}},
		Feeds: []config.TomlFeed{
			{
				Template: "latest_posts",
				Limit:    1,
				Filters:  []config.TomlFilter{{Type: "keyword", Include: []string{"golang"}}},
				Scoring:  []config.TomlScoring{{Type: "recency"}},
			},
		},
	}

	feedMap, err := feeds.InitializeFeeds(cfg, store, clock)
	require.NoError(t, err)

	posts := buildPosts(
		postFixture{id: 1, age: 2 * time.Hour, title: "Go"},
		postFixture{id: 2, age: time.Hour, title: "Gopher"},
		postFixture{id: 3, age: 0, title: "Cooking"},
	)
	assert.Equal(t, []int64{2}, ids(feedMap[models.TemplateLatestPosts].Select(posts)))
	// Templates absent from the config keep the built in selection
	require.Contains(t, feedMap, models.TemplateFocusOnMedia)
	assert.Equal(t, feeds.DefaultLimit, feedMap[models.TemplateFocusOnMedia].Limit)
}

func TestInitializeFeedsErrors(t *testing.T) {
	tests := []struct {
		name string
		feed config.TomlFeed
	}{
		{name: "unknown template", feed: config.TomlFeed{Template: "random"}},
		{name: "unknown filter", feed: config.TomlFeed{Template: "latest_posts", Filters: []config.TomlFilter{{Type: "regex"}}}},
		{name: "unknown scoring", feed: config.TomlFeed{Template: "latest_posts", Scoring: []config.TomlScoring{{Type: "likes"}}}},
		{name: "unknown keyword list", feed: config.TomlFeed{Template: "latest_posts", Filters: []config.TomlFilter{{Type: "keyword", Exclude: []string{"missing"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := feeds.InitializeFeeds(&config.TomlConfig{Feeds: []config.TomlFeed{tt.feed}}, analytics.NewStore(nil, nil), clock)
			assert.True(t, errors.Is(err, models.ErrValidation), "got %v", err)
		})
	}
}

func TestDefaultConfigFeedsMatchBuiltIns(t *testing.T) {
	cfg, err := config.DefaultConfig()
	require.NoError(t, err)

	feedMap, err := feeds.InitializeFeeds(cfg, analytics.NewStore(nil, nil), clock)
	require.NoError(t, err)

	posts := buildPosts(
		postFixture{id: 1, age: 2 * time.Hour, media: true},
		postFixture{id: 2, age: time.Hour},
	)
	assert.Equal(t, []int64{2, 1}, ids(feedMap[models.TemplateLatestPosts].Select(posts)))
	assert.Equal(t, []int64{1}, ids(feedMap[models.TemplateFocusOnMedia].Select(posts)))
}
