package query

import "cmscore/models"

// Builder selects and orders posts for display
type Builder interface {
	Build(posts []*models.Post, limit int) []*models.Post
}

// ScoringStrategy defines how posts should be ranked, higher first
type ScoringStrategy interface {
	Score(post *models.Post) float64
}

// FilterStrategy decides which posts are eligible
type FilterStrategy interface {
	Keep(post *models.Post) bool
}
