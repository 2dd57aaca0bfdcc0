package db

import (
	"fmt"

	"cmscore/models"
)

type MediaRepository struct {
	media *table[models.MediaFile]
}

func NewMediaRepository() *MediaRepository {
	return &MediaRepository{media: newTable[models.MediaFile]()}
}

func (r *MediaRepository) Add(media models.MediaFile) (models.MediaFile, error) {
	if media.Filename == "" {
		return models.MediaFile{}, fmt.Errorf("%w: media filename is required", models.ErrValidation)
	}
	return r.media.insert(func(id int64) models.MediaFile {
		media.Id = id
		return media
	}), nil
}

func (r *MediaRepository) GetById(id int64) (models.MediaFile, error) {
	if id <= 0 {
		return models.MediaFile{}, fmt.Errorf("%w: media id must be positive, got %d", models.ErrValidation, id)
	}
	media, ok := r.media.get(id)
	if !ok {
		return models.MediaFile{}, fmt.Errorf("%w: media %d", models.ErrNotFound, id)
	}
	return media, nil
}

func (r *MediaRepository) ListBySite(siteId int64) []models.MediaFile {
	return r.media.filter(func(m models.MediaFile) bool { return m.Site.Id == siteId })
}

func (r *MediaRepository) Remove(id int64) error {
	if !r.media.remove(id) {
		return fmt.Errorf("%w: media %d", models.ErrNotFound, id)
	}
	return nil
}
