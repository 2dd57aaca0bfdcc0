package feeds

import (
	"cmp"
	"slices"

	"cmscore/models"
	"cmscore/query"

	"github.com/samber/lo"
)

// FeedQueryBuilder selects posts with filters and weighted scoring layers
type FeedQueryBuilder struct {
	scoringLayers []scoringLayer
	filters       []query.FilterStrategy
}

type scoringLayer struct {
	strategy query.ScoringStrategy
	weight   float64
}

func NewFeedQueryBuilder() *FeedQueryBuilder {
	return &FeedQueryBuilder{
		scoringLayers: make([]scoringLayer, 0),
		filters:       make([]query.FilterStrategy, 0),
	}
}

func (b *FeedQueryBuilder) AddScoringLayer(strategy query.ScoringStrategy, weight float64) {
	b.scoringLayers = append(b.scoringLayers, scoringLayer{
		strategy: strategy,
		weight:   weight,
	})
}

func (b *FeedQueryBuilder) AddFilter(filter query.FilterStrategy) {
	b.filters = append(b.filters, filter)
}

// Build keeps the posts every filter accepts and orders them by summed
// weighted score, then by id, both descending. A non positive limit keeps
// every post.
func (b *FeedQueryBuilder) Build(posts []*models.Post, limit int) []*models.Post {
	kept := lo.Filter(posts, func(post *models.Post, _ int) bool {
		return lo.EveryBy(b.filters, func(filter query.FilterStrategy) bool {
			return filter.Keep(post)
		})
	})

	scores := make(map[int64]float64, len(kept))
	for _, post := range kept {
		var score float64
		for _, layer := range b.scoringLayers {
			score += layer.weight * layer.strategy.Score(post)
		}
		scores[post.Id] = score
	}

	slices.SortStableFunc(kept, func(a, b *models.Post) int {
		if c := cmp.Compare(scores[b.Id], scores[a.Id]); c != 0 {
			return c
		}
		return cmp.Compare(b.Id, a.Id)
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

var _ query.Builder = (*FeedQueryBuilder)(nil)
