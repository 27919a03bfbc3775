package xperf

import "time"

// Extras is a string-keyed annotation map attached to points, timespan
// boundaries, or the session itself.
type Extras map[string]any

// Point records a named instant. Valid reports whether At holds a timestamp;
// a point can be marked as present without one.
type Point struct {
	At    time.Time
	Valid bool
}

// Timespan is one named start/stop bracket. End and Total are meaningful only
// once Done is true; Total is computed exactly once, at stop or add time.
type Timespan struct {
	Start       time.Time
	End         time.Time
	Total       time.Duration
	Done        bool
	StartExtras Extras
	EndExtras   Extras
}

// clone returns a value copy whose annotation maps are detached from the
// receiver, so callers cannot reach internal storage through a read view.
func (ts *Timespan) clone() Timespan {
	out := *ts
	out.StartExtras = copyExtras(ts.StartExtras)
	out.EndExtras = copyExtras(ts.EndExtras)
	return out
}

func copyExtras(src Extras) Extras {
	if src == nil {
		return nil
	}
	out := make(Extras, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
