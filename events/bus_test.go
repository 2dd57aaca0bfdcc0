package events_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cmscore/events"
	"cmscore/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEvent models.EventName = "X"

type namedEvent struct{ name models.EventName }

func (e namedEvent) Name() models.EventName { return e.name }

type recorder struct {
	id    string
	calls *[]string
	err   error
	panic bool
}

func (r *recorder) OnEvent(event models.Event) error {
	*r.calls = append(*r.calls, r.id)
	if r.panic {
		panic("boom")
	}
	return r.err
}

type republisher struct {
	bus   *events.Bus
	next  models.EventName
	calls *[]string
}

func (r *republisher) OnEvent(event models.Event) error {
	*r.calls = append(*r.calls, "R")
	r.bus.Publish(namedEvent{name: r.next})
	return nil
}

type counter struct{ count atomic.Int64 }

func (c *counter) OnEvent(event models.Event) error {
	c.count.Add(1)
	return nil
}

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := events.NewBus(nil)
	calls := []string{}

	for _, id := range []string{"A", "B", "C"} {
		bus.Subscribe(testEvent, &recorder{id: id, calls: &calls})
	}

	failures := bus.Publish(namedEvent{name: testEvent})

	assert.Equal(t, 0, failures)
	assert.Equal(t, []string{"A", "B", "C"}, calls)
}

func TestPublishIsolatesFailingSubscribers(t *testing.T) {
	tests := []struct {
		name   string
		broken *recorder
	}{
		{name: "subscriber returns an error", broken: &recorder{id: "B", err: errors.New("broken")}},
		{name: "subscriber panics", broken: &recorder{id: "B", panic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := events.NewBus(nil)
			calls := []string{}
			tt.broken.calls = &calls

			bus.Subscribe(testEvent, &recorder{id: "A", calls: &calls})
			bus.Subscribe(testEvent, tt.broken)
			bus.Subscribe(testEvent, &recorder{id: "C", calls: &calls})

			var failures int
			assert.NotPanics(t, func() {
				failures = bus.Publish(namedEvent{name: testEvent})
			})
			assert.Equal(t, 1, failures)
			assert.Equal(t, []string{"A", "B", "C"}, calls)
		})
	}
}

func TestPublishOnlyReachesSubscribersOfThatName(t *testing.T) {
	bus := events.NewBus(nil)
	calls := []string{}
	bus.Subscribe(models.SiteAccessed, &recorder{id: "site", calls: &calls})
	bus.Subscribe(models.PostViewed, &recorder{id: "post", calls: &calls})

	bus.Publish(models.PostViewedEvent{})
	bus.Publish(namedEvent{name: "NOBODY_LISTENS"})

	assert.Equal(t, []string{"post"}, calls)
}

func TestUnsubscribe(t *testing.T) {
	bus := events.NewBus(nil)
	calls := []string{}
	a := &recorder{id: "A", calls: &calls}
	b := &recorder{id: "B", calls: &calls}

	bus.Subscribe(testEvent, a)
	bus.Subscribe(testEvent, b)
	require.Equal(t, 2, bus.Subscribers(testEvent))

	assert.True(t, bus.Unsubscribe(testEvent, a))
	assert.False(t, bus.Unsubscribe(testEvent, a))
	bus.Publish(namedEvent{name: testEvent})
	assert.Equal(t, []string{"B"}, calls)

	assert.True(t, bus.Unsubscribe(testEvent, b))
	assert.Equal(t, 0, bus.Subscribers(testEvent))
	assert.NotContains(t, bus.Names(), testEvent)
}

func TestBusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	bus := events.NewBus(reg)
	calls := []string{}

	bus.Subscribe(testEvent, &recorder{id: "A", calls: &calls})
	bus.Subscribe(testEvent, &recorder{id: "B", calls: &calls, err: errors.New("broken")})

	bus.Publish(namedEvent{name: testEvent})
	bus.Publish(namedEvent{name: testEvent})

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			values[family.GetName()] += metric.GetCounter().GetValue()
		}
	}

	assert.Equal(t, 2.0, values["cms_events_published_total"])
	assert.Equal(t, 2.0, values["cms_events_delivered_total"])
	assert.Equal(t, 2.0, values["cms_events_delivery_failures_total"])
}

func TestPublishFromHandlerIsQueued(t *testing.T) {
	const followUp models.EventName = "FOLLOW_UP"
	bus := events.NewBus(nil)
	calls := []string{}

	bus.Subscribe(testEvent, &republisher{bus: bus, next: followUp, calls: &calls})
	bus.Subscribe(testEvent, &recorder{id: "B", calls: &calls})
	bus.Subscribe(followUp, &recorder{id: "F", calls: &calls})

	done := make(chan int)
	go func() {
		done <- bus.Publish(namedEvent{name: testEvent})
	}()

	select {
	case failures := <-done:
		assert.Equal(t, 0, failures)
	case <-time.After(2 * time.Second):
		t.Fatal("publish from a handler blocked the publisher")
	}

	// The follow up is delivered after every subscriber of the first event
	assert.Equal(t, []string{"R", "B", "F"}, calls)

	// The bus is usable again afterwards
	bus.Publish(namedEvent{name: followUp})
	assert.Equal(t, []string{"R", "B", "F", "F"}, calls)
}

func TestConcurrentPublishesAreAllDelivered(t *testing.T) {
	bus := events.NewBus(nil)
	sub := &counter{}
	bus.Subscribe(testEvent, sub)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				bus.Publish(namedEvent{name: testEvent})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), sub.count.Load())
}
