package db

import (
	"fmt"
	"strings"
	"time"

	"cmscore/models"
)

type CommentRepository struct {
	comments *table[models.Comment]
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: newTable[models.Comment]()}
}

func (r *CommentRepository) Add(comment models.Comment) (models.Comment, error) {
	if strings.TrimSpace(comment.Body) == "" {
		return models.Comment{}, fmt.Errorf("%w: comment body is required", models.ErrValidation)
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	return r.comments.insert(func(id int64) models.Comment {
		comment.Id = id
		return comment
	}), nil
}

func (r *CommentRepository) GetById(id int64) (models.Comment, error) {
	comment, ok := r.comments.get(id)
	if !ok {
		return models.Comment{}, fmt.Errorf("%w: comment %d", models.ErrNotFound, id)
	}
	return comment, nil
}

// ListByPost returns a post's comments oldest first
func (r *CommentRepository) ListByPost(postId int64) []models.Comment {
	return r.comments.filter(func(c models.Comment) bool { return c.PostId == postId })
}
