package xperf

import (
	"sync"
	"sync/atomic"
	"time"
)

// Observer pattern

// Op discriminates what an Entry describes.
type Op uint8

const (
	OpPoint Op = iota + 1
	OpStart
	OpStop
	OpAdd
	OpExtra
)

// Entry is sent to Observers after a recording actually lands. Suppressed
// writes (duplicate keys, closed logger) produce no Entry. Extras is a copy
// per emit; safe to hold.
type Entry struct {
	Op     Op
	Name   string
	At     time.Time // boundary instant; zero for untimed points and extras
	Value  any       // OpExtra only
	Extras Extras
}

// Observer is notified for each successful recording.
// Implementations MUST be concurrency-safe.
type Observer interface {
	OnRecord(Entry)
}

// ObserverFunc adapter.
type ObserverFunc func(Entry)

func (f ObserverFunc) OnRecord(e Entry) { f(e) }

// observerList stores an immutable []Observer in an atomic.Value so the
// notify path never takes a lock; writers serialize on mu and replace the
// whole slice.
type observerList struct {
	v  atomic.Value // holds []Observer
	mu sync.Mutex
}

func (ol *observerList) init(obs []Observer) {
	if len(obs) > 0 {
		cp := make([]Observer, len(obs))
		copy(cp, obs)
		ol.v.Store(cp)
	} else {
		ol.v.Store(([]Observer)(nil))
	}
}

func (ol *observerList) snapshot() []Observer {
	v := ol.v.Load()
	if v == nil {
		return nil
	}
	cur := v.([]Observer)
	if len(cur) == 0 {
		return nil
	}
	out := make([]Observer, len(cur))
	copy(out, cur)
	return out
}

func (ol *observerList) add(o Observer) {
	ol.mu.Lock()
	defer ol.mu.Unlock()
	cur := ol.snapshot()
	cur = append(cur, o)
	ol.v.Store(cur)
}

// notify runs outside the Logger mutex so observers may call back into the
// Logger without deadlocking.
func (ol *observerList) notify(e Entry) {
	v := ol.v.Load()
	if v == nil {
		return
	}
	obs := v.([]Observer)
	for _, o := range obs {
		o.OnRecord(e)
	}
}
