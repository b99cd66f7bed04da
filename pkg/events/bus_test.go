package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmitDeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	got := make(chan any, 2)

	bus.Subscribe(Logged, func(payload any) { got <- payload })
	bus.Subscribe(Logged, func(payload any) { got <- payload })
	bus.Emit(Logged, "payload")

	for i := 0; i < 2; i++ {
		select {
		case payload := <-got:
			assert.Equal(t, "payload", payload)
		case <-time.After(time.Second):
			t.Fatal("handler was not invoked")
		}
	}
}

func TestEmitWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() { bus.Emit(Error, "ignored") })
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	got := make(chan any, 1)

	unsubscribe := bus.Subscribe(Error, func(payload any) { got <- payload })
	unsubscribe()
	bus.Emit(Error, "late")

	select {
	case <-got:
		t.Fatal("unsubscribed handler was invoked")
	case <-time.After(50 * time.Millisecond):
	}
}

// Exercises concurrent Emit against subscriber churn; run with -race.
func TestConcurrentEmitAndUnsubscribe(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		unsubscribe := bus.Subscribe(Logged, func(any) {})

		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Emit(Logged, "payload")
		}()
		go func() {
			defer wg.Done()
			unsubscribe()
		}()
	}
	wg.Wait()
}

func TestEventsAreIsolatedByName(t *testing.T) {
	bus := NewBus()
	got := make(chan any, 1)

	bus.Subscribe(Logged, func(payload any) { got <- payload })
	bus.Emit(Error, "wrong channel")

	select {
	case <-got:
		t.Fatal("handler received an event it did not subscribe to")
	case <-time.After(50 * time.Millisecond):
	}
}
