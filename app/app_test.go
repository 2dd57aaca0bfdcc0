package app_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"cmscore/analytics"
	"cmscore/app"
	"cmscore/models"
	"cmscore/notify"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededApp(t *testing.T) (*app.App, *app.Seeded, *notify.LogNotifier) {
	t.Helper()
	notifier := notify.NewLogNotifier()
	a, err := app.New(nil, nil, notifier)
	require.NoError(t, err)
	seeded, err := app.Seed(a)
	require.NoError(t, err)
	return a, seeded, notifier
}

func TestSeed(t *testing.T) {
	a, seeded, _ := newSeededApp(t)

	assert.Equal(t, 3, a.DB.Users.Count())
	assert.True(t, seeded.Admin.IsAdmin())
	assert.Equal(t, "meu-blog", seeded.Site.Domain())
	assert.True(t, a.DB.Permissions.HasPermission(seeded.Admin, seeded.Site))
	require.Len(t, seeded.Posts, 2)
	assert.Equal(t, "pt-br", seeded.Posts[0].DefaultLanguage().Code)
	assert.Equal(t, models.MediaImage, seeded.Media.Type)

	// One upload and two post creations are logged directly
	assert.Equal(t, 1, a.Analytics.CountBySiteAction(seeded.Site.Id, analytics.SiteUploadMedia))
	assert.Equal(t, 2, a.Analytics.CountBySiteAction(seeded.Site.Id, analytics.SiteCreatePost))

	user, err := a.Login("user1", "User123")
	require.NoError(t, err)
	assert.Equal(t, "user1", user.Username)

	_, err = a.Login("user1", "wrong")
	assert.True(t, errors.Is(err, models.ErrAuthentication))
}

func TestBusWiring(t *testing.T) {
	a, _, _ := newSeededApp(t)

	assert.Equal(t, 1, a.Bus.Subscribers(models.SiteAccessed))
	assert.Equal(t, 1, a.Bus.Subscribers(models.PostViewed))
	// Analytics and the comment notifier
	assert.Equal(t, 2, a.Bus.Subscribers(models.PostCommented))
}

func TestActivityIsRecordedAndGated(t *testing.T) {
	a, seeded, notifier := newSeededApp(t)
	reader := seeded.Users[1]
	other := seeded.Users[2]
	post := seeded.Posts[0]

	_, err := a.AccessSite(reader, seeded.Site.Id)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = a.ViewPost(reader, post.Id)
		require.NoError(t, err)
	}
	comment, err := a.CommentOnPost(reader, post.Id, "Muito bom!")
	require.NoError(t, err)
	require.NoError(t, a.SharePost(reader, post.Id, "mastodon"))

	assert.Equal(t, []models.Comment{comment}, a.DB.Comments.ListByPost(post.Id))
	assert.Equal(t, []string{`[LOG] admin: user1 commented on "Bem-vindo ao Meu blog"`}, notifier.Logs())

	report, err := a.PostReport(seeded.Admin, post.Id)
	require.NoError(t, err)
	for item, expected := range map[string]string{"Views": "3", "Comments": "1", "Shares": "1"} {
		value, ok := report.Value("Post stats", item)
		require.True(t, ok)
		assert.Equal(t, expected, value, item)
	}

	entries := a.Analytics.Entries()
	last := entries[len(entries)-1].(analytics.PostEntry)
	assert.Equal(t, analytics.PostShare, last.Action())
	assert.Equal(t, "mastodon", last.Metadata()["network"])
	commented := entries[len(entries)-2].(analytics.PostEntry)
	assert.Equal(t, analytics.PostComment, commented.Action())

	// Only managers of the site may read its analytics
	_, err = a.SiteReport(other, seeded.Site.Id)
	assert.True(t, errors.Is(err, models.ErrPermissionDenied))

	err = a.GrantPermission(reader, other, seeded.Site.Id)
	assert.True(t, errors.Is(err, models.ErrPermissionDenied))

	require.NoError(t, a.GrantPermission(seeded.Admin, other, seeded.Site.Id))
	siteReport, err := a.SiteReport(other, seeded.Site.Id)
	require.NoError(t, err)
	accesses, _ := siteReport.Value("Site stats", "Accesses")
	assert.Equal(t, "1", accesses)

	without, err := a.UsersWithoutPermission(seeded.Site.Id)
	require.NoError(t, err)
	assert.Equal(t, []models.User{reader}, without)

	_, err = a.ShowLogs(other, 0)
	assert.True(t, errors.Is(err, models.ErrPermissionDenied))
	logs, err := a.ShowLogs(seeded.Admin, 0)
	require.NoError(t, err)
	assert.Len(t, logs, a.Config.Analytics.ShowLogsLimit)
}

func TestMissingLookups(t *testing.T) {
	a, seeded, _ := newSeededApp(t)
	user := seeded.Users[1]

	_, err := a.AccessSite(user, 404)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = a.ViewPost(user, 404)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = a.CommentOnPost(user, 404, "hi")
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = a.CommentOnPost(user, seeded.Posts[0].Id, "  ")
	assert.True(t, errors.Is(err, models.ErrValidation))
	assert.True(t, errors.Is(a.SharePost(user, 404, "x"), models.ErrNotFound))
	_, err = a.SiteFeed(404)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestUploadMedia(t *testing.T) {
	a, seeded, _ := newSeededApp(t)

	video, err := a.UploadMedia(seeded.Admin, seeded.Site.Id, "Clip.MOV", "media/clip.mov", 1280, 720, 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, models.MediaVideo, video.Type)
	assert.Equal(t, "https://www.cms-media.meu-blog.com.br/Clip.MOV", video.URL())
	assert.Len(t, a.DB.Media.ListBySite(seeded.Site.Id), 2)
	assert.Equal(t, 2, a.Analytics.CountBySiteAction(seeded.Site.Id, analytics.SiteUploadMedia))

	_, err = a.UploadMedia(seeded.Admin, seeded.Site.Id, "notes.txt", "notes.txt", 0, 0, 0)
	assert.True(t, errors.Is(err, models.ErrValidation))
	_, err = a.UploadMedia(seeded.Admin, 404, "a.png", "a.png", 0, 0, 0)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestInferMediaType(t *testing.T) {
	tests := []struct {
		filename string
		expected models.MediaType
		err      bool
	}{
		{filename: "a.jpg", expected: models.MediaImage},
		{filename: "a.JPEG", expected: models.MediaImage},
		{filename: "dir/a.png", expected: models.MediaImage},
		{filename: "a.gif", expected: models.MediaImage},
		{filename: "a.webp", expected: models.MediaImage},
		{filename: "a.mp4", expected: models.MediaVideo},
		{filename: "a.mov", expected: models.MediaVideo},
		{filename: "a.avi", expected: models.MediaVideo},
		{filename: "a.pdf", err: true},
		{filename: "noextension", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			mediaType, err := app.InferMediaType(tt.filename)
			if tt.err {
				assert.True(t, errors.Is(err, models.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mediaType)
		})
	}
}

func TestTranslatePost(t *testing.T) {
	a, seeded, _ := newSeededApp(t)
	post := seeded.Posts[0]

	missing, err := a.MissingLanguages(post.Id)
	require.NoError(t, err)
	assert.Len(t, missing, 3)

	translated, err := a.TranslatePost(post.Id, "ES", models.Content{Title: "Bienvenido"})
	require.NoError(t, err)
	assert.Len(t, translated.Languages(), 3)
	assert.Equal(t, "pt-br", translated.DefaultLanguage().Code)

	_, err = a.TranslatePost(post.Id, "es", models.Content{Title: "Otra vez"})
	assert.True(t, errors.Is(err, models.ErrValidation))
	_, err = a.TranslatePost(post.Id, "klingon", models.Content{})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestTranslateWhileReading(t *testing.T) {
	a, seeded, _ := newSeededApp(t)
	post := seeded.Posts[1]

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, code := range []string{"es", "zh", "ja"} {
			_, err := a.TranslatePost(post.Id, code, models.Content{Title: code})
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, err := a.SiteFeed(seeded.Site.Id)
			assert.NoError(t, err)
			_, err = a.MissingLanguages(post.Id)
			assert.NoError(t, err)
			_, err = a.ViewPost(seeded.Users[1], post.Id)
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	missing, err := a.MissingLanguages(post.Id)
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Equal(t, 100, a.Analytics.CountByPostAction(post.Id, analytics.PostView))
}

func TestSiteFeed(t *testing.T) {
	a, seeded, _ := newSeededApp(t)

	scheduled := models.NewPost(seeded.Admin, seeded.Site, a.Now().Add(24*time.Hour))
	en, err := a.Catalog.Resolve("en")
	require.NoError(t, err)
	scheduled.AddContent(en, models.Content{Title: "Tomorrow"})
	_, err = a.CreatePost(scheduled)
	require.NoError(t, err)

	posts, err := a.SiteFeed(seeded.Site.Id)
	require.NoError(t, err)
	// The scheduled post is not visible yet
	assert.Len(t, posts, 2)
	assert.NotContains(t, posts, scheduled)
}

func TestDetectLanguage(t *testing.T) {
	a, _, _ := newSeededApp(t)

	lang, err := a.DetectLanguage("The children are playing football in the garden behind the old house")
	require.NoError(t, err)
	assert.Equal(t, "en-us", lang.Code)
}

func TestMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := app.New(nil, reg, nil)
	require.NoError(t, err)
	_, err = app.Seed(a)
	require.NoError(t, err)

	_, err = a.AccessSite(a.DB.Users.List()[0], 1)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := []string{}
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "cms_events_published_total")
	assert.Contains(t, names, "cms_analytics_entries_logged_total")
}
