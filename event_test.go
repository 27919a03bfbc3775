package xperf

import (
	"errors"
	"testing"
	"time"

	"github.com/trickstertwo/xclock"
)

func TestRecordMark(t *testing.T) {
	t.Parallel()

	ft := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewBuilder().WithClock(xclock.NewFrozen(ft)).Build()

	l.Record("render").
		Str("view", "home").
		Int("widgets", 7).
		Mark()

	p := l.Points()["render"]
	if !p.Valid || !p.At.Equal(ft) {
		t.Fatalf("point mismatch: %+v", p)
	}
	ex := l.PointExtras()["render"]
	if ex["view"] != "home" {
		t.Fatalf("missing view extra: %+v", ex)
	}
	if ex["widgets"] != int64(7) {
		t.Fatalf("widgets = %v (%T), want int64(7)", ex["widgets"], ex["widgets"])
	}
}

func TestRecordMarkAtExplicitTime(t *testing.T) {
	t.Parallel()

	l := New()
	at := time.Unix(1700000000, 0).UTC()
	l.Record("deploy").At(at).Mark()

	p := l.Points()["deploy"]
	if !p.Valid || !p.At.Equal(at) {
		t.Fatalf("explicit timestamp ignored: %+v", p)
	}
}

func TestRecordStartStop(t *testing.T) {
	t.Parallel()

	ft := time.Date(2025, 4, 4, 4, 0, 0, 0, time.UTC)
	l := NewBuilder().WithClock(xclock.NewFrozen(ft)).Build()

	l.Record("req").Str("path", "/api").Start()
	l.Record("req").Int("status", 200).Err(errors.New("partial")).Stop()

	ts := l.Timespans()["req"]
	if !ts.Done {
		t.Fatalf("timespan not completed: %+v", ts)
	}
	if ts.StartExtras["path"] != "/api" {
		t.Fatalf("start extras mismatch: %+v", ts.StartExtras)
	}
	if ts.EndExtras["status"] != int64(200) {
		t.Fatalf("end extras mismatch: %+v", ts.EndExtras)
	}
	if err, ok := ts.EndExtras["error"].(error); !ok || err.Error() != "partial" {
		t.Fatalf("error extra mismatch: %+v", ts.EndExtras)
	}
}

func TestRecordAdd(t *testing.T) {
	t.Parallel()

	l := New()
	start := time.Unix(0, 0).UTC()
	end := start.Add(250 * time.Millisecond)

	l.Record("import").Str("source", "csv").Add(start, end)

	ts := l.Timespans()["import"]
	if ts.Total != 250*time.Millisecond {
		t.Fatalf("total mismatch: %v", ts.Total)
	}
	if ts.StartExtras["source"] != "csv" {
		t.Fatalf("start extras mismatch: %+v", ts.StartExtras)
	}
}

func TestRecordNilErrSkipped(t *testing.T) {
	t.Parallel()

	l := New()
	l.Record("p").Err(nil).Mark()
	if _, ok := l.PointExtras()["p"]; ok {
		t.Fatal("nil error produced an annotation")
	}
}

func TestRecordFieldKinds(t *testing.T) {
	t.Parallel()

	l := New()
	at := time.Unix(5, 0).UTC()
	l.Record("kinds").
		Uint64("u", 9).
		Float64("f", 1.5).
		Bool("b", true).
		Dur("d", time.Second).
		Time("t", at).
		Bytes("raw", []byte{1, 2}).
		Any("any", struct{ X int }{1}).
		Mark()

	ex := l.PointExtras()["kinds"]
	if ex["u"] != uint64(9) || ex["f"] != 1.5 || ex["b"] != true {
		t.Fatalf("scalar extras mismatch: %+v", ex)
	}
	if ex["d"] != time.Second {
		t.Fatalf("duration extra mismatch: %+v", ex["d"])
	}
	if got, ok := ex["t"].(time.Time); !ok || !got.Equal(at) {
		t.Fatalf("time extra mismatch: %+v", ex["t"])
	}
	if got, ok := ex["raw"].([]byte); !ok || len(got) != 2 {
		t.Fatalf("bytes extra mismatch: %+v", ex["raw"])
	}
}
