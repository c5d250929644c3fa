package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := New()
	defer bus.Close()

	var mu sync.Mutex
	var got []uint64
	bus.Subscribe(EventSampleKindsRequested, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.(SampleKindsRequestedEvent).Generation)
	})
	bus.Subscribe(EventHostsLoaded, func(e DomainEvent) {
		t.Errorf("unexpected event %s", e.Type())
	})

	bus.Publish(SampleKindsRequestedEvent{Generation: 1})
	bus.Publish(SampleKindsRequestedEvent{Generation: 2})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{1, 2}, got, "handlers run in publish order")
}

func TestUnsubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()

	calls := make(chan struct{}, 4)
	unsubscribe := bus.Subscribe(EventGraphURLBuilt, func(DomainEvent) { calls <- struct{}{} })
	done := make(chan struct{}, 1)
	bus.Subscribe(EventGraphURLBuilt, func(DomainEvent) { done <- struct{}{} })

	unsubscribe()
	bus.Publish(GraphURLBuiltEvent{URL: "/graph?host=h1"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	assert.Len(t, calls, 0)
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	bus := New()
	defer bus.Close()

	done := make(chan struct{}, 1)
	bus.Subscribe(EventHostsLoaded, func(DomainEvent) { panic("boom") })
	bus.Subscribe(EventHostsLoaded, func(DomainEvent) { done <- struct{}{} })

	bus.Publish(HostsLoadedEvent{Count: 3})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch stopped after a panicking handler")
	}
}

func TestNullBus(t *testing.T) {
	var bus EventBus = NullBus{}
	bus.Subscribe(EventHostsLoaded, func(DomainEvent) { t.Error("NullBus must not deliver") })
	bus.Publish(HostsLoadedEvent{})
	bus.Close()
}
