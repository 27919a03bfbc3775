package xperf

import (
	"sync"
	"time"

	"github.com/trickstertwo/xclock"
)

// Logger records performance events for one logical session: named points,
// named start/stop timespans, and free-form session extras.
//
// Every mapping is write-once per key: the first successful write binds the
// key and later writes are silent no-ops. Closing a Logger freezes it against
// further mutation; reads keep serving the frozen state. Instrumentation must
// never disturb the host program, so no operation panics or returns an error.
type Logger struct {
	mu     sync.Mutex
	clock  xclock.Clock
	closed bool

	points      map[string]Point
	pointExtras map[string]Extras
	timespans   map[string]*Timespan
	extras      Extras

	// Observers: lock-free reads via atomic.Value; synchronized updates via
	// obsMu. Stored value is []Observer and MUST be treated as immutable by
	// readers.
	observers observerList
}

// Factory: internal constructor.
func newLogger(cfg Config) *Logger {
	l := &Logger{clock: cfg.Clock}
	l.resetLocked()
	l.observers.init(cfg.Observers)
	return l
}

// resetLocked reinstalls empty state. Caller holds l.mu (or owns l exclusively).
func (l *Logger) resetLocked() {
	l.points = make(map[string]Point)
	l.pointExtras = make(map[string]Extras)
	l.timespans = make(map[string]*Timespan)
	l.extras = make(Extras)
	l.closed = false
}

// now reads the instance clock, falling back to the process clock.
func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}

// MarkPoint records a named instant at the current clock time. The first mark
// of a name wins: later marks of the same name change neither the stored
// timestamp nor any stored annotation, even when they carry one.
func (l *Logger) MarkPoint(name string, fields ...Field) {
	l.markPoint(name, time.Time{}, true, fields)
}

// MarkPointAt records a named instant at an explicit time. A zero at records
// the point as present without a timestamp, which is a valid value and
// distinct from the point not existing.
func (l *Logger) MarkPointAt(name string, at time.Time, fields ...Field) {
	l.markPoint(name, at, false, fields)
}

func (l *Logger) markPoint(name string, at time.Time, useClock bool, fields []Field) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if _, dup := l.points[name]; dup {
		l.mu.Unlock()
		return
	}
	if useClock {
		at = l.now()
	}
	p := Point{At: at, Valid: !at.IsZero()}
	l.points[name] = p
	ex := extrasFromFields(fields)
	if ex != nil {
		l.pointExtras[name] = ex
	}
	entry := Entry{Op: OpPoint, Name: name, At: at, Extras: copyExtras(ex)}
	l.mu.Unlock()

	l.observers.notify(entry)
}

// StartTimespan opens a named timespan at the current clock time. When the
// name is already present the existing record is preserved untouched and no
// clock read happens.
func (l *Logger) StartTimespan(name string, fields ...Field) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if _, dup := l.timespans[name]; dup {
		l.mu.Unlock()
		return
	}
	start := l.now()
	ts := &Timespan{Start: start, StartExtras: extrasFromFields(fields)}
	l.timespans[name] = ts
	entry := Entry{Op: OpStart, Name: name, At: start, Extras: copyExtras(ts.StartExtras)}
	l.mu.Unlock()

	l.observers.notify(entry)
}

// StopTimespan completes a previously started timespan: End is the current
// clock time and Total = End - Start, computed once. Stopping a nonexistent
// or already-completed timespan is a no-op.
func (l *Logger) StopTimespan(name string, fields ...Field) {
	l.mu.Lock()
	ts, ok := l.timespans[name]
	if l.closed || !ok || ts.Done {
		l.mu.Unlock()
		return
	}
	end := l.now()
	ts.End = end
	ts.Total = end.Sub(ts.Start)
	ts.Done = true
	if ex := extrasFromFields(fields); ex != nil {
		ts.EndExtras = ex
	}
	entry := Entry{Op: OpStop, Name: name, At: end, Extras: copyExtras(ts.EndExtras)}
	l.mu.Unlock()

	l.observers.notify(entry)
}

// AddTimespan inserts a fully-formed timespan with both bounds supplied by the
// caller; Total is computed immediately. Like StartTimespan, an existing name
// is preserved untouched.
func (l *Logger) AddTimespan(name string, start, end time.Time, startFields, endFields []Field) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if _, dup := l.timespans[name]; dup {
		l.mu.Unlock()
		return
	}
	ts := &Timespan{
		Start:       start,
		End:         end,
		Total:       end.Sub(start),
		Done:        true,
		StartExtras: extrasFromFields(startFields),
		EndExtras:   extrasFromFields(endFields),
	}
	l.timespans[name] = ts
	entry := Entry{Op: OpAdd, Name: name, At: end, Extras: copyExtras(ts.StartExtras)}
	l.mu.Unlock()

	l.observers.notify(entry)
}

// SetExtra binds a session extra. The first value bound to a key wins.
func (l *Logger) SetExtra(key string, value any) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if _, dup := l.extras[key]; dup {
		l.mu.Unlock()
		return
	}
	l.extras[key] = value
	l.mu.Unlock()

	l.observers.notify(Entry{Op: OpExtra, Name: key, Value: value})
}

// RemoveExtra deletes a session extra and returns its prior value with the
// comma-ok idiom. Removal on a closed Logger is a no-op reporting absence.
func (l *Logger) RemoveExtra(key string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, false
	}
	v, ok := l.extras[key]
	if ok {
		delete(l.extras, key)
	}
	return v, ok
}

// HasTimespan reports whether a timespan with the given name exists, open or
// completed.
func (l *Logger) HasTimespan(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.timespans[name]
	return ok
}

// Read views. Each returns a caller-owned copy; mutating it cannot bypass the
// write-once rules.

// Points returns a copy of the recorded points.
func (l *Logger) Points() map[string]Point {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pointsLocked()
}

// PointExtras returns a copy of the per-point annotations.
func (l *Logger) PointExtras() map[string]Extras {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pointExtrasLocked()
}

// Timespans returns a copy of the recorded timespans.
func (l *Logger) Timespans() map[string]Timespan {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timespansLocked()
}

// Extras returns a copy of the session extras.
func (l *Logger) Extras() Extras {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.extrasLocked()
}

func (l *Logger) pointsLocked() map[string]Point {
	out := make(map[string]Point, len(l.points))
	for k, v := range l.points {
		out[k] = v
	}
	return out
}

func (l *Logger) pointExtrasLocked() map[string]Extras {
	out := make(map[string]Extras, len(l.pointExtras))
	for k, v := range l.pointExtras {
		out[k] = copyExtras(v)
	}
	return out
}

func (l *Logger) timespansLocked() map[string]Timespan {
	out := make(map[string]Timespan, len(l.timespans))
	for k, v := range l.timespans {
		out[k] = v.clone()
	}
	return out
}

func (l *Logger) extrasLocked() Extras {
	out := make(Extras, len(l.extras))
	for k, v := range l.extras {
		out[k] = v
	}
	return out
}

// Close freezes the Logger permanently. Reads keep working against the frozen
// state; there is no un-close. Clear is the only way back to a writable
// instance.
func (l *Logger) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}

// Closed reports whether Close has frozen this Logger.
func (l *Logger) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Clear discards all accumulated state and reopens the Logger. The instance
// identity is unchanged, so holders of the same *Logger observe the reset.
func (l *Logger) Clear() {
	l.mu.Lock()
	l.resetLocked()
	l.mu.Unlock()
}

// AddObserver registers an observer for subsequent recordings.
func (l *Logger) AddObserver(o Observer) {
	l.observers.add(o)
}
