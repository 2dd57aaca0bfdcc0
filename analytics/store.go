package analytics

import (
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"cmscore/events"
	"cmscore/ids"
	"cmscore/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// Store keeps every analytics entry in log order
type Store struct {
	mu      sync.RWMutex
	ids     *ids.Allocator
	entries []Entry
	metrics *storeMetrics

	// Now stamps entries created from bus events
	Now func() time.Time
}

// NewStore creates a store subscribed to the site and post events on bus
func NewStore(bus *events.Bus, reg prometheus.Registerer) *Store {
	store := &Store{
		ids:     ids.NewAllocator(),
		metrics: newStoreMetrics(reg),
		Now:     time.Now,
	}
	if bus != nil {
		for _, name := range []models.EventName{models.SiteAccessed, models.PostViewed, models.PostCommented} {
			bus.Subscribe(name, store)
		}
	}
	return store
}

// OnEvent turns bus events into entries. Unknown events are ignored.
func (s *Store) OnEvent(event models.Event) error {
	now := s.Now()

	switch event := event.(type) {
	case models.SiteAccessedEvent:
		s.Log(NewSiteEntry(event.User, event.Site, SiteAccess, now, nil))
	case models.PostViewedEvent:
		if event.Post == nil {
			return fmt.Errorf("%w: %s without a post", models.ErrValidation, event.Name())
		}
		s.Log(NewPostEntry(event.User, event.Site, event.Post, PostView, now, nil))
	case models.PostCommentedEvent:
		if event.Post == nil {
			return fmt.Errorf("%w: %s without a post", models.ErrValidation, event.Name())
		}
		s.Log(NewPostEntry(event.User, event.Site, event.Post, PostComment, now, map[string]string{
			"comment_id": strconv.FormatInt(event.CommentId, 10),
		}))
	default:
		log.WithFields(log.Fields{
			"event": event.Name(),
		}).Debug("Ignoring unknown analytics event")
	}
	return nil
}

// Log stores entry and returns its newly allocated id
func (s *Store) Log(entry Entry) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids.Next()
	entry = entry.withId(id)
	s.entries = append(s.entries, entry)

	kind, action := describe(entry)
	s.metrics.logged.WithLabelValues(kind, action).Inc()

	log.WithFields(log.Fields{
		"id":     id,
		"kind":   kind,
		"action": action,
		"site":   entry.Site().Id,
		"user":   entry.User().Username,
	}).Debug("Logged analytics entry")

	return id
}

// ShowLogs returns the limit most recent entries ordered by creation time,
// oldest first. A non positive limit returns every entry.
func (s *Store) ShowLogs(limit int) []Entry {
	entries := s.Entries()
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries
}

// Entries returns every entry in log order
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// CountBySiteAction counts site entries of a site with the given action
func (s *Store) CountBySiteAction(siteId int64, action SiteAction) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.CountBy(s.entries, func(e Entry) bool {
		site, ok := e.(SiteEntry)
		return ok && site.Site().Id == siteId && site.Action() == action
	})
}

// CountByPostSiteAction counts post entries of every post in a site
func (s *Store) CountByPostSiteAction(siteId int64, action PostAction) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.CountBy(s.entries, func(e Entry) bool {
		post, ok := e.(PostEntry)
		return ok && post.Site().Id == siteId && post.Action() == action
	})
}

// CountByPostAction counts post entries of a single post
func (s *Store) CountByPostAction(postId int64, action PostAction) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.CountBy(s.entries, func(e Entry) bool {
		post, ok := e.(PostEntry)
		return ok && post.PostId() == postId && post.Action() == action
	})
}

func describe(entry Entry) (kind string, action string) {
	switch e := entry.(type) {
	case SiteEntry:
		return "site", e.Action().String()
	case PostEntry:
		return "post", e.Action().String()
	default:
		return "unknown", ""
	}
}
