package otel

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/trickstertwo/xperf"
)

const scopeName = "github.com/trickstertwo/xperf/adapter/otel"

// Exporter replays a snapshot onto an OpenTelemetry tracer. Completed
// timespans become spans with their recorded start/end timestamps; points
// with a timestamp become zero-duration spans. Open timespans and untimed
// points have no span representation and are skipped.
//
// The exporter does not propagate context: every span is a root. Annotations
// turn into attributes, prefixed start./end. for timespan boundaries.
type Exporter struct {
	tracer trace.Tracer
}

// New builds an Exporter on the given provider.
func New(tp trace.TracerProvider) *Exporter {
	return &Exporter{tracer: tp.Tracer(scopeName)}
}

// Global builds an Exporter on the process-wide provider registered via
// otel.SetTracerProvider.
func Global() *Exporter {
	return New(otel.GetTracerProvider())
}

// Export implements xperf.Exporter. Span creation cannot fail, so the error
// is always nil.
func (e *Exporter) Export(s xperf.Snapshot) error {
	ctx := context.Background()

	for _, name := range sortedKeys(s.Points) {
		p := s.Points[name]
		if !p.Valid {
			continue
		}
		attrs := appendAttrs(nil, "", s.PointExtras[name])
		attrs = append(attrs, attribute.String("xperf.kind", "point"))
		_, span := e.tracer.Start(ctx, name,
			trace.WithTimestamp(p.At),
			trace.WithAttributes(attrs...),
		)
		span.End(trace.WithTimestamp(p.At))
	}

	for _, name := range sortedKeys(s.Timespans) {
		ts := s.Timespans[name]
		if !ts.Done {
			continue
		}
		attrs := appendAttrs(nil, "start.", ts.StartExtras)
		attrs = appendAttrs(attrs, "end.", ts.EndExtras)
		attrs = append(attrs, attribute.String("xperf.kind", "timespan"))
		_, span := e.tracer.Start(ctx, name,
			trace.WithTimestamp(ts.Start),
			trace.WithAttributes(attrs...),
		)
		span.End(trace.WithTimestamp(ts.End))
	}
	return nil
}

func appendAttrs(attrs []attribute.KeyValue, prefix string, ex xperf.Extras) []attribute.KeyValue {
	for _, k := range sortedKeys(ex) {
		key := prefix + k
		switch v := ex[k].(type) {
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		case float64:
			attrs = append(attrs, attribute.Float64(key, v))
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		case time.Duration:
			attrs = append(attrs, attribute.String(key, v.String()))
		case time.Time:
			attrs = append(attrs, attribute.String(key, v.Format(time.RFC3339Nano)))
		case error:
			attrs = append(attrs, attribute.String(key, v.Error()))
		default:
			attrs = append(attrs, attribute.String(key, fmt.Sprint(v)))
		}
	}
	return attrs
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
