// Package app wires the CMS core together and exposes the operations the
// front ends call.
package app

import (
	"fmt"
	"time"

	"cmscore/analytics"
	"cmscore/config"
	"cmscore/db"
	"cmscore/events"
	"cmscore/feeds"
	"cmscore/languages"
	"cmscore/models"
	"cmscore/notify"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// App is the application context. Build one with New and pass it to
// whatever needs the repositories or services.
type App struct {
	Config    *config.TomlConfig
	DB        *db.DB
	Catalog   *languages.Catalog
	Detector  *languages.Detector
	Bus       *events.Bus
	Analytics *analytics.Store
	Guard     *analytics.Guard
	Feeds     feeds.FeedMap
	Notifier  notify.Notifier

	// Now is the clock used for visibility, feeds and analytics timestamps
	Now func() time.Time
}

// New builds an App from cfg. Metrics are registered with reg when it is not
// nil. A nil notifier keeps notifications in memory.
func New(cfg *config.TomlConfig, reg prometheus.Registerer, notifier notify.Notifier) (*App, error) {
	if cfg == nil {
		defaults, err := config.DefaultConfig()
		if err != nil {
			return nil, err
		}
		cfg = defaults
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier()
	}

	catalog, err := languages.FromConfig(cfg.Languages)
	if err != nil {
		return nil, fmt.Errorf("failed to build language catalog: %w", err)
	}

	a := &App{
		Config:   cfg,
		DB:       db.NewDB(),
		Catalog:  catalog,
		Bus:      events.NewBus(reg),
		Notifier: notifier,
		Now:      time.Now,
	}
	clock := func() time.Time { return a.Now() }

	a.Detector = languages.NewDetector(catalog, cfg.Detection.Threshold)
	a.Analytics = analytics.NewStore(a.Bus, reg)
	a.Analytics.Now = clock
	a.Guard = analytics.NewGuard(a.Analytics, a.DB.Sites, a.DB.Posts, a.DB.Permissions)
	a.Bus.Subscribe(models.PostCommented, &notify.CommentNotifier{Notifier: notifier})

	a.Feeds, err = feeds.InitializeFeeds(cfg, a.Analytics, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize feeds: %w", err)
	}

	log.WithFields(log.Fields{
		"languages": catalog.Len(),
		"feeds":     len(a.Feeds),
	}).Debug("Application initialized")

	return a, nil
}
