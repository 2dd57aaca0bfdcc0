package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"cmscore/models"
)

var mediaExtensions = map[string]models.MediaType{
	".jpg":  models.MediaImage,
	".jpeg": models.MediaImage,
	".png":  models.MediaImage,
	".gif":  models.MediaImage,
	".webp": models.MediaImage,
	".mp4":  models.MediaVideo,
	".mov":  models.MediaVideo,
	".avi":  models.MediaVideo,
}

// InferMediaType maps a file extension to its media type
func InferMediaType(filename string) (models.MediaType, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mediaType, ok := mediaExtensions[ext]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported media extension %q", models.ErrValidation, ext)
	}
	return mediaType, nil
}
