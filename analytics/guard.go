package analytics

import (
	"fmt"

	"cmscore/models"

	log "github.com/sirupsen/logrus"
)

// SiteFinder resolves sites by id
type SiteFinder interface {
	GetById(id int64) (models.Site, error)
}

// PostFinder resolves posts by id
type PostFinder interface {
	GetById(id int64) (*models.Post, error)
}

// PermissionChecker answers whether a user manages a site
type PermissionChecker interface {
	HasPermission(user models.User, site models.Site) bool
}

// Guard gates the aggregate reads of a Store. Admins always pass, everyone
// else needs a permission on the site. Writes are not gated.
type Guard struct {
	store       *Store
	sites       SiteFinder
	posts       PostFinder
	permissions PermissionChecker
}

func NewGuard(store *Store, sites SiteFinder, posts PostFinder, permissions PermissionChecker) *Guard {
	return &Guard{
		store:       store,
		sites:       sites,
		posts:       posts,
		permissions: permissions,
	}
}

// CheckAccess fails with ErrPermissionDenied unless user is an admin or
// manages the site. Unknown sites fail with ErrNotFound.
func (g *Guard) CheckAccess(user models.User, siteId int64) error {
	if user.IsAdmin() {
		return nil
	}
	site, err := g.sites.GetById(siteId)
	if err != nil {
		return err
	}
	return g.checkSite(user, site)
}

func (g *Guard) checkSite(user models.User, site models.Site) error {
	if user.IsAdmin() || g.permissions.HasPermission(user, site) {
		return nil
	}
	log.WithFields(log.Fields{
		"user": user.Username,
		"site": site.Id,
	}).Warn("Denied analytics access")
	return fmt.Errorf("%w: %s cannot view analytics of site %q", models.ErrPermissionDenied, user.Username, site.Name)
}

func (g *Guard) CountBySiteAction(user models.User, siteId int64, action SiteAction) (int, error) {
	if err := g.CheckAccess(user, siteId); err != nil {
		return 0, err
	}
	return g.store.CountBySiteAction(siteId, action), nil
}

func (g *Guard) CountByPostSiteAction(user models.User, siteId int64, action PostAction) (int, error) {
	if err := g.CheckAccess(user, siteId); err != nil {
		return 0, err
	}
	return g.store.CountByPostSiteAction(siteId, action), nil
}

// CountByPostAction checks access against the site the post belongs to
func (g *Guard) CountByPostAction(user models.User, postId int64, action PostAction) (int, error) {
	if !user.IsAdmin() {
		post, err := g.posts.GetById(postId)
		if err != nil {
			return 0, err
		}
		if err := g.CheckAccess(user, post.Site.Id); err != nil {
			return 0, err
		}
	}
	return g.store.CountByPostAction(postId, action), nil
}

// Log is passed through without a check
func (g *Guard) Log(entry Entry) int64 {
	return g.store.Log(entry)
}

// ShowLogs exposes the full log to admins only
func (g *Guard) ShowLogs(user models.User, limit int) ([]Entry, error) {
	if !user.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can view the analytics log", models.ErrPermissionDenied)
	}
	return g.store.ShowLogs(limit), nil
}

func (g *Guard) SiteReport(user models.User, siteId int64) (*Report, error) {
	site, err := g.sites.GetById(siteId)
	if err != nil {
		return nil, err
	}
	if err := g.checkSite(user, site); err != nil {
		return nil, err
	}
	return NewSiteReport(g.store, site), nil
}

func (g *Guard) PostReport(user models.User, postId int64) (*Report, error) {
	post, err := g.posts.GetById(postId)
	if err != nil {
		return nil, err
	}
	if err := g.CheckAccess(user, post.Site.Id); err != nil {
		return nil, err
	}
	return NewPostReport(g.store, post), nil
}
