// Package events is an in-process publish/subscribe hub
package events

import (
	"fmt"
	"sync"

	"cmscore/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Subscriber receives published events. Implementations must be comparable
// (usually a pointer) so they can be unsubscribed.
type Subscriber interface {
	OnEvent(event models.Event) error
}

// Bus delivers events synchronously to subscribers in subscription order.
// A failing subscriber never stops delivery to the others or reaches the
// publisher. Only one fan-out runs at a time; events published while it runs,
// including from handlers, are queued and delivered by that publisher before
// it returns.
type Bus struct {
	sync.RWMutex
	subscribers map[models.EventName][]Subscriber

	queueMu    sync.Mutex
	delivering bool
	pending    []models.Event

	metrics *busMetrics
}

// NewBus creates a bus registering its metrics with reg. A nil reg keeps the
// metrics unregistered.
func NewBus(reg prometheus.Registerer) *Bus {
	return &Bus{
		subscribers: make(map[models.EventName][]Subscriber),
		metrics:     newBusMetrics(reg),
	}
}

func (b *Bus) Subscribe(name models.EventName, subscriber Subscriber) {
	b.Lock()
	defer b.Unlock()
	b.subscribers[name] = append(b.subscribers[name], subscriber)
	log.WithFields(log.Fields{
		"event":      name,
		"subscriber": fmt.Sprintf("%T", subscriber),
		"count":      len(b.subscribers[name]),
	}).Debug("Subscribed to event")
}

// Unsubscribe removes the first registration of subscriber under name. The
// name is dropped once it has no subscribers left.
func (b *Bus) Unsubscribe(name models.EventName, subscriber Subscriber) bool {
	b.Lock()
	defer b.Unlock()

	subscribers := b.subscribers[name]
	for i, s := range subscribers {
		if s != subscriber {
			continue
		}
		remaining := make([]Subscriber, 0, len(subscribers)-1)
		remaining = append(remaining, subscribers[:i]...)
		remaining = append(remaining, subscribers[i+1:]...)
		if len(remaining) == 0 {
			delete(b.subscribers, name)
		} else {
			b.subscribers[name] = remaining
		}
		return true
	}
	return false
}

// Subscribers returns how many subscribers are registered for name
func (b *Bus) Subscribers(name models.EventName) int {
	b.RLock()
	defer b.RUnlock()
	return len(b.subscribers[name])
}

// Names returns the event names that currently have subscribers
func (b *Bus) Names() []models.EventName {
	b.RLock()
	defer b.RUnlock()
	names := make([]models.EventName, 0, len(b.subscribers))
	for name := range b.subscribers {
		names = append(names, name)
	}
	return names
}

// Publish delivers event to every current subscriber of its name and returns
// the number of subscribers that failed. When another fan-out is in progress
// the event is queued behind it and Publish returns 0 right away.
func (b *Bus) Publish(event models.Event) int {
	b.queueMu.Lock()
	if b.delivering {
		b.pending = append(b.pending, event)
		b.queueMu.Unlock()
		log.WithFields(log.Fields{
			"event": event.Name(),
		}).Debug("Queued event published during delivery")
		return 0
	}
	b.delivering = true
	b.queueMu.Unlock()

	failures := b.fanOut(event)
	for {
		b.queueMu.Lock()
		if len(b.pending) == 0 {
			b.delivering = false
			b.queueMu.Unlock()
			return failures
		}
		next := b.pending[0]
		b.pending = b.pending[1:]
		b.queueMu.Unlock()

		b.fanOut(next)
	}
}

func (b *Bus) fanOut(event models.Event) int {
	name := event.Name()

	// Deliver to a snapshot so handlers may (un)subscribe
	b.RLock()
	subscribers := make([]Subscriber, len(b.subscribers[name]))
	copy(subscribers, b.subscribers[name])
	b.RUnlock()

	deliveryId := uuid.NewString()
	b.metrics.published.WithLabelValues(string(name)).Inc()

	failures := 0
	for _, subscriber := range subscribers {
		if err := deliver(subscriber, event); err != nil {
			failures++
			b.metrics.failed.WithLabelValues(string(name)).Inc()
			log.WithFields(log.Fields{
				"event":      name,
				"deliveryId": deliveryId,
				"subscriber": fmt.Sprintf("%T", subscriber),
				"error":      err,
			}).Error("Subscriber failed to handle event")
			continue
		}
		b.metrics.delivered.WithLabelValues(string(name)).Inc()
	}

	log.WithFields(log.Fields{
		"event":       name,
		"deliveryId":  deliveryId,
		"subscribers": len(subscribers),
		"failures":    failures,
	}).Debug("Published event")

	return failures
}

func deliver(subscriber Subscriber, event models.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panicked: %v", r)
		}
	}()
	return subscriber.OnEvent(event)
}
