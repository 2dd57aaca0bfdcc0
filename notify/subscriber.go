package notify

import (
	"fmt"

	"cmscore/models"
)

// CommentNotifier tells post authors about new comments from other users
type CommentNotifier struct {
	Notifier Notifier
}

func (s *CommentNotifier) OnEvent(event models.Event) error {
	commented, ok := event.(models.PostCommentedEvent)
	if !ok || commented.Post == nil {
		return nil
	}
	author := commented.Post.Poster
	if author.Id == commented.User.Id {
		return nil
	}
	message := fmt.Sprintf("%s commented on %q", commented.User.Username, commented.Post.DefaultTitle())
	if err := s.Notifier.Notify(author, message); err != nil {
		return fmt.Errorf("failed to notify %s: %w", author.Username, err)
	}
	return nil
}
