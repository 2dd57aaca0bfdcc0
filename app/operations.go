package app

import (
	"fmt"
	"strconv"
	"time"

	"cmscore/analytics"
	"cmscore/models"

	log "github.com/sirupsen/logrus"
)

func (a *App) Login(username, password string) (models.User, error) {
	user, err := a.DB.Users.Validate(username, password)
	if err != nil {
		log.WithFields(log.Fields{
			"username": username,
		}).Warn("Failed login")
		return models.User{}, err
	}
	return user, nil
}

// CreateSite stores a site and lets its owner manage it
func (a *App) CreateSite(owner models.User, name, description string, template models.SiteTemplate) (models.Site, error) {
	site, err := a.DB.Sites.Add(models.Site{
		Owner:       owner,
		Name:        name,
		Description: description,
		Template:    template,
	})
	if err != nil {
		return models.Site{}, err
	}
	a.DB.Permissions.Grant(owner, site)
	return site, nil
}

// GrantPermission lets admins and site owners share management of a site
func (a *App) GrantPermission(actor models.User, user models.User, siteId int64) error {
	site, err := a.DB.Sites.GetById(siteId)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && actor.Id != site.Owner.Id {
		return fmt.Errorf("%w: %s does not own site %q", models.ErrPermissionDenied, actor.Username, site.Name)
	}
	a.DB.Permissions.Grant(user, site)
	return nil
}

// UsersWithoutPermission lists the users that cannot manage the site yet
func (a *App) UsersWithoutPermission(siteId int64) ([]models.User, error) {
	site, err := a.DB.Sites.GetById(siteId)
	if err != nil {
		return nil, err
	}
	return a.DB.Permissions.UsersWithoutPermission(site, a.DB.Users.List()), nil
}

func (a *App) AccessSite(user models.User, siteId int64) (models.Site, error) {
	site, err := a.DB.Sites.GetById(siteId)
	if err != nil {
		return models.Site{}, err
	}
	a.Bus.Publish(models.SiteAccessedEvent{User: user, Site: site})
	return site, nil
}

func (a *App) ViewPost(user models.User, postId int64) (*models.Post, error) {
	post, err := a.DB.Posts.GetById(postId)
	if err != nil {
		return nil, err
	}
	a.Bus.Publish(models.PostViewedEvent{User: user, Site: post.Site, Post: post})
	return post, nil
}

func (a *App) CommentOnPost(user models.User, postId int64, body string) (models.Comment, error) {
	post, err := a.DB.Posts.GetById(postId)
	if err != nil {
		return models.Comment{}, err
	}
	comment, err := a.DB.Comments.Add(models.Comment{
		PostId:    post.Id,
		Commenter: user,
		Body:      body,
		CreatedAt: a.Now(),
	})
	if err != nil {
		return models.Comment{}, err
	}
	a.Bus.Publish(models.PostCommentedEvent{User: user, Site: post.Site, Post: post, CommentId: comment.Id})
	return comment, nil
}

// CreatePost stores post and logs the creation against its site
func (a *App) CreatePost(post *models.Post) (*models.Post, error) {
	post, err := a.DB.Posts.Add(post)
	if err != nil {
		return nil, err
	}
	a.Analytics.Log(analytics.NewSiteEntry(post.Poster, post.Site, analytics.SiteCreatePost, a.Now(), map[string]string{
		"post_id": strconv.FormatInt(post.Id, 10),
	}))
	return post, nil
}

// UploadMedia stores a media file for a site, inferring its type from the
// file name.
func (a *App) UploadMedia(uploader models.User, siteId int64, filename, path string, width, height int, duration time.Duration) (models.MediaFile, error) {
	site, err := a.DB.Sites.GetById(siteId)
	if err != nil {
		return models.MediaFile{}, err
	}
	mediaType, err := InferMediaType(filename)
	if err != nil {
		return models.MediaFile{}, err
	}

	media, err := a.DB.Media.Add(models.MediaFile{
		Uploader: uploader,
		Filename: filename,
		Path:     path,
		Type:     mediaType,
		Site:     site,
		Width:    width,
		Height:   height,
		Duration: duration,
	})
	if err != nil {
		return models.MediaFile{}, err
	}

	a.Analytics.Log(analytics.NewSiteEntry(uploader, site, analytics.SiteUploadMedia, a.Now(), map[string]string{
		"media_id": strconv.FormatInt(media.Id, 10),
	}))
	return media, nil
}

func (a *App) SharePost(user models.User, postId int64, network string) error {
	post, err := a.DB.Posts.GetById(postId)
	if err != nil {
		return err
	}
	a.Analytics.Log(analytics.NewPostEntry(user, post.Site, post, analytics.PostShare, a.Now(), map[string]string{
		"network": network,
	}))
	return nil
}

// TranslatePost adds content in a catalog language the post does not have yet
func (a *App) TranslatePost(postId int64, code string, content models.Content) (*models.Post, error) {
	post, err := a.DB.Posts.GetById(postId)
	if err != nil {
		return nil, err
	}
	lang, err := a.Catalog.Resolve(code)
	if err != nil {
		return nil, err
	}
	if err := post.AddTranslation(lang, content); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"post":     post.Id,
		"language": lang.Code,
	}).Info("Translated post")
	return post, nil
}

// MissingLanguages lists the catalog languages a post can be translated to
func (a *App) MissingLanguages(postId int64) ([]*models.Language, error) {
	post, err := a.DB.Posts.GetById(postId)
	if err != nil {
		return nil, err
	}
	return a.Catalog.MissingLanguages(post), nil
}

func (a *App) DetectLanguage(text string) (*models.Language, error) {
	lang, _, err := a.Detector.Detect(text)
	return lang, err
}

// SiteFeed returns the posts the site front page shows
func (a *App) SiteFeed(siteId int64) ([]*models.Post, error) {
	site, err := a.DB.Sites.GetById(siteId)
	if err != nil {
		return nil, err
	}
	posts := a.DB.Posts.ListBySite(site.Id, a.Now())
	return a.Feeds.ForSite(site).Select(posts), nil
}

func (a *App) SiteReport(user models.User, siteId int64) (*analytics.Report, error) {
	return a.Guard.SiteReport(user, siteId)
}

func (a *App) PostReport(user models.User, postId int64) (*analytics.Report, error) {
	return a.Guard.PostReport(user, postId)
}

// ShowLogs returns the most recent analytics entries. A non positive limit
// uses the configured default.
func (a *App) ShowLogs(user models.User, limit int) ([]analytics.Entry, error) {
	if limit <= 0 {
		limit = a.Config.Analytics.ShowLogsLimit
	}
	return a.Guard.ShowLogs(user, limit)
}
