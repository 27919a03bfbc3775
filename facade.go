package xperf

import "time"

// Facade helpers using the process-wide Singleton logger.
// Usage: xperf.Record("db.query").Str("driver", "pg").Start()

func MarkPoint(name string, fields ...Field) { Default().MarkPoint(name, fields...) }

func MarkPointAt(name string, at time.Time, fields ...Field) {
	Default().MarkPointAt(name, at, fields...)
}

func StartTimespan(name string, fields ...Field) { Default().StartTimespan(name, fields...) }

func StopTimespan(name string, fields ...Field) { Default().StopTimespan(name, fields...) }

func AddTimespan(name string, start, end time.Time, startFields, endFields []Field) {
	Default().AddTimespan(name, start, end, startFields, endFields)
}

func SetExtra(key string, value any) { Default().SetExtra(key, value) }

func RemoveExtra(key string) (any, bool) { return Default().RemoveExtra(key) }

func HasTimespan(name string) bool { return Default().HasTimespan(name) }

func Record(name string) *Event { return Default().Record(name) }

func Clear() { Default().Clear() }

func Take() Snapshot { return Default().Snapshot() }
