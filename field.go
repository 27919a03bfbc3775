package xperf

import (
	"time"
)

// Kind identifies the concrete type stored in a Field.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt64
	KindUint64
	KindFloat64
	KindBool
	KindDuration
	KindTime
	KindError
	KindBytes
	KindAny
)

// Field is a compact, reflection-free union for annotation values.
type Field struct {
	K       string
	Kind    Kind
	Str     string
	Int64   int64
	Uint64  uint64
	Float64 float64
	Bool    bool
	Dur     time.Duration
	Time    time.Time
	Err     error
	Bytes   []byte
	Any     any
}

// Helpers for ergonomics.

func Str(k, v string) Field             { return Field{K: k, Kind: KindString, Str: v} }
func Int64(k string, v int64) Field     { return Field{K: k, Kind: KindInt64, Int64: v} }
func Uint64(k string, v uint64) Field   { return Field{K: k, Kind: KindUint64, Uint64: v} }
func Float64(k string, v float64) Field { return Field{K: k, Kind: KindFloat64, Float64: v} }
func Bool(k string, v bool) Field       { return Field{K: k, Kind: KindBool, Bool: v} }
func Dur(k string, v time.Duration) Field {
	return Field{K: k, Kind: KindDuration, Dur: v}
}
func Time(k string, v time.Time) Field { return Field{K: k, Kind: KindTime, Time: v} }
func Err(k string, e error) Field      { return Field{K: k, Kind: KindError, Err: e} }
func Bytes(k string, b []byte) Field   { return Field{K: k, Kind: KindBytes, Bytes: b} }
func Any(k string, v any) Field        { return Field{K: k, Kind: KindAny, Any: v} }

// value unwraps the typed slot selected by Kind.
func (f *Field) value() any {
	switch f.Kind {
	case KindString:
		return f.Str
	case KindInt64:
		return f.Int64
	case KindUint64:
		return f.Uint64
	case KindFloat64:
		return f.Float64
	case KindBool:
		return f.Bool
	case KindDuration:
		return f.Dur
	case KindTime:
		return f.Time
	case KindError:
		return f.Err
	case KindBytes:
		return f.Bytes
	}
	return f.Any
}

// extrasFromFields collapses fields into an annotation map.
// Returns nil for an empty field list so callers can skip storage entirely.
func extrasFromFields(fs []Field) Extras {
	if len(fs) == 0 {
		return nil
	}
	m := make(Extras, len(fs))
	for i := range fs {
		m[fs[i].K] = fs[i].value()
	}
	return m
}
