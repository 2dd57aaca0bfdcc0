package db

import (
	"fmt"
	"strings"

	"cmscore/models"
)

type SiteRepository struct {
	sites *table[models.Site]
}

func NewSiteRepository() *SiteRepository {
	return &SiteRepository{sites: newTable[models.Site]()}
}

func (r *SiteRepository) Add(site models.Site) (models.Site, error) {
	site.Name = strings.TrimSpace(site.Name)
	if site.Name == "" {
		return models.Site{}, fmt.Errorf("%w: site name is required", models.ErrValidation)
	}
	if site.Template == "" {
		site.Template = models.TemplateLatestPosts
	}
	return r.sites.insert(func(id int64) models.Site {
		site.Id = id
		return site
	}), nil
}

func (r *SiteRepository) GetById(id int64) (models.Site, error) {
	site, ok := r.sites.get(id)
	if !ok {
		return models.Site{}, fmt.Errorf("%w: site %d", models.ErrNotFound, id)
	}
	return site, nil
}

func (r *SiteRepository) List() []models.Site {
	return r.sites.all()
}

// ListByOwner returns the sites owned by the user
func (r *SiteRepository) ListByOwner(ownerId int64) []models.Site {
	return r.sites.filter(func(s models.Site) bool { return s.Owner.Id == ownerId })
}
