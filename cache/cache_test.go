package cache

import (
	"testing"
	"time"
)

func TestGetLoadsOnce(t *testing.T) {
	s := NewStore(time.Minute, 0)
	defer s.Close()

	loads := 0
	loader := func() []string {
		loads++
		return []string{"Toyota", "Skoda"}
	}

	first := Get(s, "cars", loader, "cars")
	second := Get(s, "cars", loader, "cars")
	if loads != 1 {
		t.Errorf("loader ran %d times, want 1", loads)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("Get() = %v then %v, want two entries each", first, second)
	}
}

func TestInvalidateDropsTaggedEntries(t *testing.T) {
	s := NewStore(time.Minute, 0)
	defer s.Close()

	loads := 0
	loader := func() int {
		loads++
		return loads
	}

	Get(s, "cars", loader, "cars")
	Get(s, "orders", loader, "orders")

	s.Invalidate("cars")

	if got := Get(s, "cars", loader, "cars"); got != 3 {
		t.Errorf("Get(cars) after invalidate = %d, want a reload", got)
	}
	if got := Get(s, "orders", loader, "orders"); got != 2 {
		t.Errorf("Get(orders) = %d, untagged entry should survive", got)
	}
}

func TestInvalidateNotifiesSubscribers(t *testing.T) {
	s := NewStore(time.Minute, 0)
	defer s.Close()

	notified := 0
	s.Subscribe("cars", func() { notified++ })
	s.Subscribe("cars", func() { notified++ })

	s.Invalidate("cars")
	s.Invalidate("orders")

	if notified != 2 {
		t.Errorf("subscribers notified %d times, want 2", notified)
	}
}

func TestEntriesExpire(t *testing.T) {
	s := NewStore(10*time.Millisecond, 0)
	defer s.Close()

	loads := 0
	loader := func() string {
		loads++
		return "val"
	}

	Get(s, "cars", loader, "cars")
	time.Sleep(25 * time.Millisecond)
	Get(s, "cars", loader, "cars")

	if loads != 2 {
		t.Errorf("loader ran %d times, want reload after expiry", loads)
	}
}
