package xperf

import "github.com/trickstertwo/xclock"

// Config for constructing a Logger (Factory data structure).
type Config struct {
	Clock     xclock.Clock // optional; defaults to the process clock (xclock.Now)
	Observers []Observer
}

// New returns a brand-new, empty Logger, fully independent of any other
// instance ever created.
func New() *Logger {
	return newLogger(Config{})
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) AddObserver(o Observer) *Builder {
	b.cfg.Observers = append(b.cfg.Observers, o)
	return b
}

// Build constructs the Logger. A Logger has no required collaborator, so
// Build cannot fail.
func (b *Builder) Build() *Logger {
	return newLogger(b.cfg)
}
