package anim

import (
	"time"

	"github.com/verte-zerg/fishcap/internal/score"
)

// DefaultDuration is the length of a full animation run.
const DefaultDuration = 1500 * time.Millisecond

// Clock returns the current frame time.
type Clock func() time.Time

// Status is the lifecycle state of an Animation.
type Status int

const (
	// Idle means no run is in flight: never started, or finished.
	Idle Status = iota
	// Running means frames are still being produced.
	Running
	// Cancelled means the run was stopped before reaching its target.
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Cancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Animation eases every metric of a target set from zero to its value.
type Animation struct {
	target   score.ScoreSet
	start    time.Time
	duration time.Duration
	ease     Easing
	status   Status
	progress float64
}

// NewAnimation starts an animation toward target at start.
func NewAnimation(target score.ScoreSet, start time.Time, duration time.Duration, ease Easing) *Animation {
	if ease == nil {
		ease = EaseOutCubic
	}
	return &Animation{
		target:   target.Clone(),
		start:    start,
		duration: duration,
		ease:     ease,
		status:   Running,
	}
}

// Status returns the lifecycle state.
func (a *Animation) Status() Status {
	return a.status
}

// Target returns a copy of the target values.
func (a *Animation) Target() score.ScoreSet {
	return a.target.Clone()
}

// Progress returns clamp((now-start)/duration, 0, 1). A non-positive
// duration is complete immediately.
func (a *Animation) Progress(now time.Time) float64 {
	if a.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(a.start)) / float64(a.duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// LastProgress returns the progress of the most recent sample.
func (a *Animation) LastProgress() float64 {
	return a.progress
}

// SampleAt returns target[m]*ease(progress) for every metric. Progress never
// moves backwards, and is frozen once the animation is cancelled. At full
// progress the exact target values are returned and the animation goes idle.
func (a *Animation) SampleAt(now time.Time) score.ScoreSet {
	p := a.progress
	if a.status == Running {
		if next := a.Progress(now); next > p {
			p = next
		}
		a.progress = p
	}
	if p >= 1 {
		if a.status == Running {
			a.status = Idle
		}
		return a.target.Clone()
	}
	k := a.ease(p)
	out := make(score.ScoreSet, len(a.target))
	for m, v := range a.target {
		out[m] = v * k
	}
	return out
}

// Cancel stops the animation at its last sampled progress.
func (a *Animation) Cancel() {
	if a.status == Running {
		a.status = Cancelled
	}
}
