package anim

import (
	"time"

	"github.com/verte-zerg/fishcap/internal/score"
)

// Run identifies one Start call. Frames carrying an older Run are stale.
type Run uint64

// Sample is the displayed state produced for one frame.
type Sample struct {
	Run      Run
	Values   score.ScoreSet
	Progress float64
	Done     bool
}

// Driver owns the animation of a single chart. It is not safe for
// concurrent use; the host calls it from its frame loop.
type Driver struct {
	duration  time.Duration
	ease      Easing
	run       Run
	anim      *Animation
	displayed score.ScoreSet
}

// NewDriver returns an idle driver.
func NewDriver(duration time.Duration, ease Easing) *Driver {
	if ease == nil {
		ease = EaseOutCubic
	}
	return &Driver{duration: duration, ease: ease, displayed: score.ScoreSet{}}
}

// Start begins a new run from zero toward target, superseding any run in flight.
func (d *Driver) Start(target score.ScoreSet, now time.Time) Run {
	if d.anim != nil {
		d.anim.Cancel()
	}
	d.run++
	d.anim = NewAnimation(target, now, d.duration, d.ease)
	d.displayed = make(score.ScoreSet, len(target))
	for m := range target {
		d.displayed[m] = 0
	}
	return d.run
}

// Frame advances the given run to now. It reports false when the run is
// stale, cancelled or finished, in which case the host stops scheduling frames.
func (d *Driver) Frame(run Run, now time.Time) (Sample, bool) {
	if d.anim == nil || run != d.run || d.anim.Status() != Running {
		return Sample{}, false
	}
	values := d.anim.SampleAt(now)
	d.displayed = values
	return Sample{
		Run:      run,
		Values:   values.Clone(),
		Progress: d.anim.LastProgress(),
		Done:     d.anim.Status() == Idle,
	}, true
}

// Cancel stops the current run. Displayed values stay where they are.
func (d *Driver) Cancel() {
	if d.anim != nil {
		d.anim.Cancel()
	}
}

// Running reports whether a run is in flight.
func (d *Driver) Running() bool {
	return d.anim != nil && d.anim.Status() == Running
}

// Status returns the state of the latest run.
func (d *Driver) Status() Status {
	if d.anim == nil {
		return Idle
	}
	return d.anim.Status()
}

// Run returns the id of the latest run.
func (d *Driver) Run() Run {
	return d.run
}

// Progress returns the progress of the latest sample.
func (d *Driver) Progress() float64 {
	if d.anim == nil {
		return 0
	}
	return d.anim.LastProgress()
}

// Displayed returns the values of the latest frame.
func (d *Driver) Displayed() score.ScoreSet {
	return d.displayed.Clone()
}

// Settle jumps to target without animating, cancelling any run in flight.
func (d *Driver) Settle(target score.ScoreSet) {
	d.Cancel()
	d.displayed = target.Clone()
}
