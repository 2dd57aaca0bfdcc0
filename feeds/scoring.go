package feeds

import (
	"math"
	"time"

	"cmscore/analytics"
	"cmscore/models"
	"cmscore/query"
)

// PostActionCounter counts analytics actions on a post
type PostActionCounter interface {
	CountByPostAction(postId int64, action analytics.PostAction) int
}

// NoScoring leaves ordering to post id
type NoScoring struct{}

func (s *NoScoring) Score(post *models.Post) float64 {
	return 0
}

// TimeDecayScoring scores posts based on how recent they are
type TimeDecayScoring struct {
	Now func() time.Time
}

func (s *TimeDecayScoring) Score(post *models.Post) float64 {
	ageDays := math.Max(0, s.Now().Sub(post.CreatedAt).Hours()/24)
	return math.Pow(1.0+ageDays, -0.5)
}

// ActionScoring scores posts by how often an action happened on them
type ActionScoring struct {
	Counter PostActionCounter
	Action  analytics.PostAction
}

func (s *ActionScoring) Score(post *models.Post) float64 {
	return float64(s.Counter.CountByPostAction(post.Id, s.Action))
}

var _ query.ScoringStrategy = (*NoScoring)(nil)
var _ query.ScoringStrategy = (*TimeDecayScoring)(nil)
var _ query.ScoringStrategy = (*ActionScoring)(nil)
