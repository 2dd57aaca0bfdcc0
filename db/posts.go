package db

import (
	"fmt"
	"time"

	"cmscore/models"

	log "github.com/sirupsen/logrus"
)

type PostRepository struct {
	posts *table[*models.Post]
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: newTable[*models.Post]()}
}

// Add stores post and assigns its id. Posts need content in at least one
// language.
func (r *PostRepository) Add(post *models.Post) (*models.Post, error) {
	if post == nil || post.DefaultLanguage() == nil {
		return nil, fmt.Errorf("%w: post has no content", models.ErrValidation)
	}
	stored := r.posts.insert(func(id int64) *models.Post {
		post.Id = id
		return post
	})

	log.WithFields(log.Fields{
		"id":          stored.Id,
		"site":        stored.Site.Id,
		"languages":   len(stored.Languages()),
		"scheduledAt": stored.ScheduledAt.Format(time.RFC3339),
	}).Debug("Added post")
	return stored, nil
}

func (r *PostRepository) GetById(id int64) (*models.Post, error) {
	post, ok := r.posts.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: post %d", models.ErrNotFound, id)
	}
	return post, nil
}

func (r *PostRepository) List() []*models.Post {
	return r.posts.all()
}

// ListBySite returns the posts of a site that are visible at now
func (r *PostRepository) ListBySite(siteId int64, now time.Time) []*models.Post {
	return r.posts.filter(func(p *models.Post) bool {
		return p.Site.Id == siteId && p.IsVisible(now)
	})
}

func (r *PostRepository) Remove(id int64) error {
	if !r.posts.remove(id) {
		return fmt.Errorf("%w: post %d", models.ErrNotFound, id)
	}
	return nil
}
