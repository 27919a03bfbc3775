package zerolog

import (
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xperf"
)

// Exporter forwards xperf snapshots straight through rs/zerolog: one event
// per point, one per timespan, one carrying the session extras. Names are
// emitted in sorted order so output stays diffable.
type Exporter struct {
	l zerolog.Logger
}

// Config is an explicit, code-first configuration. No envs, no hidden init,
// one call to Use.
type Config struct {
	Writer io.Writer     // default: os.Stdout
	Level  zerolog.Level // min level applied to the underlying logger
}

// Use builds a zerolog.Logger from Config and wraps it in an Exporter.
func Use(cfg Config) *Exporter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	return New(zerolog.New(w).Level(cfg.Level))
}

// New wraps an existing zerolog.Logger. Events are emitted at Info.
func New(l zerolog.Logger) *Exporter {
	return &Exporter{l: l}
}

// Export implements xperf.Exporter. zerolog writes are fire-and-forget, so
// the error is always nil.
func (e *Exporter) Export(s xperf.Snapshot) error {
	for _, name := range sortedKeys(s.Points) {
		p := s.Points[name]
		ev := e.l.Info().Str("point", name)
		if p.Valid {
			ev = ev.Time("at", p.At)
		}
		ev = appendExtras(ev, "", s.PointExtras[name])
		ev.Msg("perf point")
	}

	for _, name := range sortedKeys(s.Timespans) {
		ts := s.Timespans[name]
		ev := e.l.Info().Str("timespan", name).Time("start", ts.Start)
		if ts.Done {
			ev = ev.Time("end", ts.End).Dur("total", ts.Total)
		}
		ev = appendExtras(ev, "start_", ts.StartExtras)
		ev = appendExtras(ev, "end_", ts.EndExtras)
		ev.Msg("perf timespan")
	}

	if len(s.Extras) > 0 {
		appendExtras(e.l.Info(), "", s.Extras).Msg("perf extras")
	}
	return nil
}

func appendExtras(ev *zerolog.Event, prefix string, ex xperf.Extras) *zerolog.Event {
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
			ev = ev.AnErr(key, v)
		default:
			ev = ev.Interface(key, v)
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
