package zerolog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xperf"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("bad json line %q: %v", sc.Text(), err)
		}
		out = append(out, m)
	}
	return out
}

func TestExportJSONLines(t *testing.T) {
	t.Parallel()

	l := xperf.New()
	l.MarkPointAt("boot", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), xperf.Str("mode", "cold"))
	l.AddTimespan("req",
		time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 2, 0, time.UTC),
		[]xperf.Field{xperf.Str("path", "/api")},
		[]xperf.Field{xperf.Int64("status", 200)},
	)
	l.SetExtra("build", "abc123")

	var buf bytes.Buffer
	if err := l.Flush(New(zerolog.New(&buf))); err != nil {
		t.Fatalf("flush: %v", err)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(lines), lines)
	}

	point := lines[0]
	if point["point"] != "boot" || point["mode"] != "cold" || point["message"] != "perf point" {
		t.Fatalf("point line mismatch: %v", point)
	}
	if _, ok := point["at"]; !ok {
		t.Fatalf("point line missing timestamp: %v", point)
	}

	span := lines[1]
	if span["timespan"] != "req" || span["start_path"] != "/api" {
		t.Fatalf("timespan line mismatch: %v", span)
	}
	if span["end_status"] != float64(200) {
		t.Fatalf("end extras mismatch: %v", span["end_status"])
	}
	if _, ok := span["total"]; !ok {
		t.Fatalf("timespan line missing total: %v", span)
	}

	extras := lines[2]
	if extras["build"] != "abc123" || extras["message"] != "perf extras" {
		t.Fatalf("extras line mismatch: %v", extras)
	}
}

func TestExportUntimedPointOmitsAt(t *testing.T) {
	t.Parallel()

	l := xperf.New()
	l.MarkPointAt("present", time.Time{})

	var buf bytes.Buffer
	if err := l.Flush(New(zerolog.New(&buf))); err != nil {
		t.Fatalf("flush: %v", err)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if _, ok := lines[0]["at"]; ok {
		t.Fatalf("untimed point exported a timestamp: %v", lines[0])
	}
}

func TestUseDefaultsToStdout(t *testing.T) {
	t.Parallel()

	// Smoke test: Use must accept an empty Config without panicking.
	if exp := Use(Config{Level: zerolog.Disabled}); exp == nil {
		t.Fatal("Use returned nil")
	}
}
