package zap

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/trickstertwo/xperf"
)

// Exporter forwards xperf snapshots to a zap.Logger: one entry per point,
// one per timespan, one carrying the session extras, names in sorted order.
type Exporter struct {
	l *zap.Logger
}

// New wraps an existing zap.Logger. Entries are emitted at Info.
func New(l *zap.Logger) *Exporter {
	return &Exporter{l: l}
}

// Export implements xperf.Exporter. zap writes are fire-and-forget here, so
// the error is always nil.
func (e *Exporter) Export(s xperf.Snapshot) error {
	for _, name := range sortedKeys(s.Points) {
		p := s.Points[name]
		fields := []zap.Field{zap.String("point", name)}
		if p.Valid {
			fields = append(fields, zap.Time("at", p.At))
		}
		fields = appendExtras(fields, "", s.PointExtras[name])
		e.l.Info("perf point", fields...)
	}

	for _, name := range sortedKeys(s.Timespans) {
		ts := s.Timespans[name]
		fields := []zap.Field{zap.String("timespan", name), zap.Time("start", ts.Start)}
		if ts.Done {
			fields = append(fields, zap.Time("end", ts.End), zap.Duration("total", ts.Total))
		}
		fields = appendExtras(fields, "start_", ts.StartExtras)
		fields = appendExtras(fields, "end_", ts.EndExtras)
		e.l.Info("perf timespan", fields...)
	}

	if len(s.Extras) > 0 {
		e.l.Info("perf extras", appendExtras(nil, "", s.Extras)...)
	}
	return nil
}

func appendExtras(fields []zap.Field, prefix string, ex xperf.Extras) []zap.Field {
	for _, k := range sortedKeys(ex) {
		key := prefix + k
		switch v := ex[k].(type) {
		case string:
			fields = append(fields, zap.String(key, v))
		case int64:
			fields = append(fields, zap.Int64(key, v))
		case uint64:
			fields = append(fields, zap.Uint64(key, v))
		case float64:
			fields = append(fields, zap.Float64(key, v))
		case bool:
			fields = append(fields, zap.Bool(key, v))
		case time.Duration:
			fields = append(fields, zap.Duration(key, v))
		case time.Time:
			fields = append(fields, zap.Time(key, v))
		case []byte:
			fields = append(fields, zap.Binary(key, v))
		case error:
			fields = append(fields, zap.NamedError(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}
	return fields
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
