// Package analytics records user actions and answers aggregate queries
package analytics

import (
	"fmt"
	"maps"
	"time"

	"cmscore/models"
)

const timestampLayout = "2006-01-02 15:04:05"

type SiteAction int

const (
	SiteAccess      SiteAction = 1
	SiteCreatePost  SiteAction = 2
	SiteUploadMedia SiteAction = 3
)

func (a SiteAction) String() string {
	switch a {
	case SiteAccess:
		return "ACCESS"
	case SiteCreatePost:
		return "CREATE_POST"
	case SiteUploadMedia:
		return "UPLOAD_MEDIA"
	default:
		return fmt.Sprintf("SiteAction(%d)", int(a))
	}
}

type PostAction int

const (
	PostView    PostAction = 1
	PostComment PostAction = 2
	PostShare   PostAction = 3
)

func (a PostAction) String() string {
	switch a {
	case PostView:
		return "VIEW"
	case PostComment:
		return "COMMENT"
	case PostShare:
		return "SHARE"
	default:
		return fmt.Sprintf("PostAction(%d)", int(a))
	}
}

// Entry is an immutable record of one user action. The only implementations
// are SiteEntry and PostEntry.
type Entry interface {
	Id() int64
	User() models.User
	Site() models.Site
	CreatedAt() time.Time
	Metadata() map[string]string
	DisplayLog() string

	withId(id int64) Entry
}

type entry struct {
	id        int64
	user      models.User
	site      models.Site
	createdAt time.Time
	metadata  map[string]string
}

func newEntry(user models.User, site models.Site, createdAt time.Time, metadata map[string]string) entry {
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return entry{
		user:      user,
		site:      site,
		createdAt: createdAt,
		metadata:  maps.Clone(metadata),
	}
}

func (e entry) Id() int64            { return e.id }
func (e entry) User() models.User    { return e.user }
func (e entry) Site() models.Site    { return e.site }
func (e entry) CreatedAt() time.Time { return e.createdAt }

func (e entry) Metadata() map[string]string {
	if e.metadata == nil {
		return map[string]string{}
	}
	return maps.Clone(e.metadata)
}

func (e entry) stamp() string {
	return e.user.Username + "@" + e.createdAt.Format(timestampLayout)
}

// SiteEntry records an action on a site
type SiteEntry struct {
	entry
	action SiteAction
}

// NewSiteEntry creates an entry. A zero createdAt means now.
func NewSiteEntry(user models.User, site models.Site, action SiteAction, createdAt time.Time, metadata map[string]string) SiteEntry {
	return SiteEntry{entry: newEntry(user, site, createdAt, metadata), action: action}
}

func (e SiteEntry) Action() SiteAction { return e.action }

func (e SiteEntry) DisplayLog() string {
	return fmt.Sprintf("%s - %s - %s", e.site.Name, e.stamp(), e.action)
}

func (e SiteEntry) withId(id int64) Entry {
	e.id = id
	return e
}

// PostEntry records an action on a post. The post title is captured when the
// entry is created.
type PostEntry struct {
	entry
	postId    int64
	postTitle string
	action    PostAction
}

// NewPostEntry creates an entry. A zero createdAt means now. A nil post leaves
// the post id and title empty.
func NewPostEntry(user models.User, site models.Site, post *models.Post, action PostAction, createdAt time.Time, metadata map[string]string) PostEntry {
	e := PostEntry{
		entry:  newEntry(user, site, createdAt, metadata),
		action: action,
	}
	if post != nil {
		e.postId = post.Id
		e.postTitle = post.DefaultTitle()
	}
	return e
}

func (e PostEntry) Action() PostAction { return e.action }
func (e PostEntry) PostId() int64      { return e.postId }

func (e PostEntry) DisplayLog() string {
	title := []rune(e.postTitle)
	if len(title) > 40 {
		title = title[:40]
	}
	return fmt.Sprintf("%s - %s\n  %s - %s", e.site.Name, string(title), e.stamp(), e.action)
}

func (e PostEntry) withId(id int64) Entry {
	e.id = id
	return e
}

var _ Entry = SiteEntry{}
var _ Entry = PostEntry{}
