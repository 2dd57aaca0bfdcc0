package models

import (
	"fmt"
	"strings"
	"time"
)

type Role int

const (
	RoleAdmin Role = 1
	RoleUser  Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// User of the CMS. Users are referenced elsewhere by Id.
type User struct {
	Id        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"-"`
	Role      Role   `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SiteTemplate decides how a site's front page selects posts
type SiteTemplate string

const (
	TemplateTopPostsFirst    SiteTemplate = "top_posts_first"
	TemplateTopCommentsFirst SiteTemplate = "top_comments_first"
	TemplateLatestPosts      SiteTemplate = "latest_posts"
	TemplateFocusOnMedia     SiteTemplate = "focus_on_media"
)

// SiteTemplates lists every known template in display order
var SiteTemplates = []SiteTemplate{
	TemplateTopPostsFirst,
	TemplateTopCommentsFirst,
	TemplateLatestPosts,
	TemplateFocusOnMedia,
}

type Site struct {
	Id          int64        `json:"id"`
	Owner       User         `json:"owner"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Template    SiteTemplate `json:"template"`
}

// Domain is the lower cased site name with spaces replaced by dashes
func (s Site) Domain() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s.Name)), " ", "-")
}

func (s Site) URL() string {
	return fmt.Sprintf("https://www.cms.%s.com.br", s.Domain())
}

type MediaType int

const (
	MediaImage MediaType = 1
	MediaVideo MediaType = 2
)

func (m MediaType) String() string {
	switch m {
	case MediaImage:
		return "IMAGE"
	case MediaVideo:
		return "VIDEO"
	default:
		return fmt.Sprintf("MediaType(%d)", int(m))
	}
}

type MediaFile struct {
	Id       int64         `json:"id"`
	Uploader User          `json:"uploader"`
	Filename string        `json:"filename"`
	Path     string        `json:"path"`
	Type     MediaType     `json:"type"`
	Site     Site          `json:"site"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Duration time.Duration `json:"duration,omitempty"`
}

func (m MediaFile) URL() string {
	return fmt.Sprintf("https://www.cms-media.%s.com.br/%s", m.Site.Domain(), m.Filename)
}

func (m MediaFile) Dimension() string {
	return fmt.Sprintf("%dX%d", m.Width, m.Height)
}

type Comment struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"postId"`
	Commenter User      `json:"commenter"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// Permission grants User management rights over Site
type Permission struct {
	User User `json:"user"`
	Site Site `json:"site"`
}
