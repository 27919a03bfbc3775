package xlog

import (
	"sort"
	"time"

	"github.com/trickstertwo/xlog"
	"github.com/trickstertwo/xperf"
)

// Exporter forwards xperf snapshots to an xlog.Logger as structured entries:
// one line per point, one per timespan, and one carrying the session extras.
// Output order is sorted by name so log streams stay diffable.
type Exporter struct {
	l     *xlog.Logger
	level xlog.Level
}

// New builds an Exporter emitting at Info.
func New(l *xlog.Logger) *Exporter {
	return &Exporter{l: l, level: xlog.LevelInfo}
}

// NewWithLevel builds an Exporter emitting at the given level.
func NewWithLevel(l *xlog.Logger, level xlog.Level) *Exporter {
	return &Exporter{l: l, level: level}
}

// Export implements xperf.Exporter. Logging cannot fail, so the error is
// always nil; the signature satisfies the Strategy interface.
func (e *Exporter) Export(s xperf.Snapshot) error {
	for _, name := range sortedKeys(s.Points) {
		p := s.Points[name]
		ev := e.event().Str("point", name)
		if p.Valid {
			ev = ev.Time("at", p.At)
		}
		ev = appendExtras(ev, "", s.PointExtras[name])
		ev.Msg("perf point")
	}

	for _, name := range sortedKeys(s.Timespans) {
		ts := s.Timespans[name]
		ev := e.event().Str("timespan", name).Time("start", ts.Start)
		if ts.Done {
			ev = ev.Time("end", ts.End).Dur("total", ts.Total)
		}
		ev = appendExtras(ev, "start_", ts.StartExtras)
		ev = appendExtras(ev, "end_", ts.EndExtras)
		ev.Msg("perf timespan")
	}

	if len(s.Extras) > 0 {
		ev := appendExtras(e.event(), "", s.Extras)
		ev.Msg("perf extras")
	}
	return nil
}

func (e *Exporter) event() *xlog.Event {
	switch {
	case e.level >= xlog.LevelError:
		return e.l.Error()
	case e.level >= xlog.LevelWarn:
		return e.l.Warn()
	case e.level >= xlog.LevelInfo:
		return e.l.Info()
	case e.level >= xlog.LevelDebug:
		return e.l.Debug()
	}
	return e.l.Trace()
}

func appendExtras(ev *xlog.Event, prefix string, ex xperf.Extras) *xlog.Event {
	for _, k := range sortedKeys(ex) {
		key := prefix + k
		switch v := ex[k].(type) {
		case string:
			ev = ev.Str(key, v)
		case int64:
			ev = ev.Int64(key, v)
		case uint64:
			ev = ev.Uint64(key, v)
		case float64:
			ev = ev.Float64(key, v)
		case bool:
			ev = ev.Bool(key, v)
		case time.Duration:
			ev = ev.Dur(key, v)
		case time.Time:
			ev = ev.Time(key, v)
		case []byte:
			ev = ev.Bytes(key, v)
		case error:
			ev = ev.Str(key, v.Error())
		default:
			ev = ev.Any(key, v)
		}
	}
	return ev
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
