package anim

import "time"

// DefaultResizeDebounce is the quiet period after the last resize before a replay.
const DefaultResizeDebounce = 300 * time.Millisecond

// Debouncer collapses bursts of triggers. Only the latest trigger settles.
type Debouncer struct {
	Delay time.Duration
	seq   uint64
}

// NewDebouncer returns a debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{Delay: delay}
}

// Trigger records a new event and returns its token.
func (d *Debouncer) Trigger() uint64 {
	d.seq++
	return d.seq
}

// Settled reports whether token belongs to the latest trigger.
func (d *Debouncer) Settled(token uint64) bool {
	return token != 0 && token == d.seq
}
