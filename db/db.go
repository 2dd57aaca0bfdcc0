// Package db holds the in-memory repositories
package db

// DB groups every repository behind one handle
type DB struct {
	Users       *UserRepository
	Sites       *SiteRepository
	Posts       *PostRepository
	Comments    *CommentRepository
	Media       *MediaRepository
	Permissions *PermissionRepository
}

func NewDB() *DB {
	return &DB{
		Users:       NewUserRepository(),
		Sites:       NewSiteRepository(),
		Posts:       NewPostRepository(),
		Comments:    NewCommentRepository(),
		Media:       NewMediaRepository(),
		Permissions: NewPermissionRepository(),
	}
}
