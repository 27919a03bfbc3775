package xperf

import (
	"sync"
	"time"
)

// Event is a fluent builder (Builder pattern) for a single recording.
// API: log.Record("db.query").Str("driver", "pg").Start()
//
// Exactly one terminator (Mark, Start, Stop, Add) must be called; the builder
// is recycled afterwards and must not be reused.
type Event struct {
	l      *Logger
	name   string
	at     time.Time
	hasAt  bool
	fields []Field
}

var eventPool = sync.Pool{
	New: func() any { return &Event{fields: make([]Field, 0, 8)} },
}

// Record starts a fluent recording for the given name.
func (l *Logger) Record(name string) *Event {
	ev := eventPool.Get().(*Event)
	ev.l = l
	ev.name = name
	ev.at = time.Time{}
	ev.hasAt = false
	ev.fields = ev.fields[:0]
	return ev
}

func (e *Event) putBack() {
	// allow GC of large backing arrays by capping
	if cap(e.fields) > 128 {
		e.fields = make([]Field, 0, 8)
	}
	e.l = nil
	e.name = ""
	eventPool.Put(e)
}

// Field builders (zerolog-style)

func (e *Event) Str(k, v string) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindString, Str: v})
	return e
}

func (e *Event) Int(k string, v int) *Event { return e.Int64(k, int64(v)) }

func (e *Event) Int64(k string, v int64) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindInt64, Int64: v})
	return e
}

func (e *Event) Uint64(k string, v uint64) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindUint64, Uint64: v})
	return e
}

func (e *Event) Float64(k string, v float64) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindFloat64, Float64: v})
	return e
}

func (e *Event) Bool(k string, v bool) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindBool, Bool: v})
	return e
}

func (e *Event) Dur(k string, v time.Duration) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindDuration, Dur: v})
	return e
}

func (e *Event) Time(k string, v time.Time) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindTime, Time: v})
	return e
}

func (e *Event) Bytes(k string, v []byte) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindBytes, Bytes: v})
	return e
}

func (e *Event) Err(err error) *Event {
	if err == nil {
		return e
	}
	e.fields = append(e.fields, Field{K: "error", Kind: KindError, Err: err})
	return e
}

func (e *Event) Any(k string, v any) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindAny, Any: v})
	return e
}

// At sets an explicit timestamp for Mark instead of the instance clock.
func (e *Event) At(t time.Time) *Event {
	e.at = t
	e.hasAt = true
	return e
}

// Terminators

// Mark records the event as a point.
func (e *Event) Mark() {
	if e.hasAt {
		e.l.MarkPointAt(e.name, e.at, e.fields...)
	} else {
		e.l.MarkPoint(e.name, e.fields...)
	}
	e.putBack()
}

// Start opens a timespan; fields become its start annotations.
func (e *Event) Start() {
	e.l.StartTimespan(e.name, e.fields...)
	e.putBack()
}

// Stop completes a started timespan; fields become its end annotations.
func (e *Event) Stop() {
	e.l.StopTimespan(e.name, e.fields...)
	e.putBack()
}

// Add inserts a fully-formed timespan between start and end; fields become
// its start annotations.
func (e *Event) Add(start, end time.Time) {
	e.l.AddTimespan(e.name, start, end, e.fields, nil)
	e.putBack()
}
