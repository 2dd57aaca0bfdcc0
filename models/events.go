package models

type EventName string

const (
	SiteAccessed  EventName = "SITE_ACCESSED"
	PostViewed    EventName = "POST_VIEWED"
	PostCommented EventName = "POST_COMMENTED"
)

// Event is a payload published on the event bus
type Event interface {
	Name() EventName
}

// SiteAccessedEvent fired when a user opens a site
type SiteAccessedEvent struct {
	User User
	Site Site
}

func (SiteAccessedEvent) Name() EventName { return SiteAccessed }

// PostViewedEvent fired when a user reads a post
type PostViewedEvent struct {
	User User
	Site Site
	Post *Post
}

func (PostViewedEvent) Name() EventName { return PostViewed }

// PostCommentedEvent fired after a comment is stored
type PostCommentedEvent struct {
	User      User
	Site      Site
	Post      *Post
	CommentId int64
}

func (PostCommentedEvent) Name() EventName { return PostCommented }
