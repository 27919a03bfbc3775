package xperf

// Snapshot is a point-in-time, caller-owned copy of a Logger's state. It
// shares no storage with the Logger; holding or mutating it cannot bypass the
// write-once rules.
type Snapshot struct {
	Points      map[string]Point
	PointExtras map[string]Extras
	Timespans   map[string]Timespan
	Extras      Extras
}

// Snapshot copies the four mappings under one lock acquisition, so the copy
// is internally consistent.
func (l *Logger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Points:      l.pointsLocked(),
		PointExtras: l.pointExtrasLocked(),
		Timespans:   l.timespansLocked(),
		Extras:      l.extrasLocked(),
	}
}

// Exporter is the forwarding Strategy for collected snapshots (structured-log
// or tracing backends). Implementations live under adapter/.
type Exporter interface {
	Export(Snapshot) error
}

// Flush hands the current snapshot to an exporter.
func (l *Logger) Flush(e Exporter) error {
	return e.Export(l.Snapshot())
}
