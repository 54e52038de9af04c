package motion

import "math"

// Mode identifies what an axis is currently doing.
type Mode int

const (
	// Stopped wants no motion; residual speed ramps down to zero.
	Stopped Mode = iota
	// Rolling moves indefinitely in one direction until stopped or
	// arrested by a bound.
	Rolling
	// Seeking moves toward a finite target and settles there.
	Seeking
)

func (m Mode) String() string {
	switch m {
	case Stopped:
		return "stopped"
	case Rolling:
		return "rolling"
	case Seeking:
		return "seeking"
	default:
		return "unknown"
	}
}

// Axis controls one scalar quantity. Its value never jumps: every control
// operation only retargets the axis, and the value itself advances inside
// Update with linear speed ramps, a braking window ahead of the target to
// avoid overshoot, and hard clamping to [min, max].
//
// While Rolling, the internal target is ±Inf and serves purely as a
// direction sentinel; it is never exposed through Target as a reachable
// position.
type Axis struct {
	mode       Mode
	current    float64
	target     float64
	min, max   float64
	maxSpeed   float64
	multiplier float64
	speed      float64
	onChange   func(float64)
}

// NewAxis creates a stopped axis bounded to [min, max]. Pass ±Inf for an
// unbounded side. onChange may be nil; when set it fires from Update each
// time the value actually moves.
func NewAxis(onChange func(float64), min, max float64) *Axis {
	cur := clamp(0, min, max)
	return &Axis{
		current:    cur,
		target:     cur,
		min:        min,
		max:        max,
		multiplier: 1,
		onChange:   onChange,
	}
}

func (a *Axis) Current() float64  { return a.current }
func (a *Axis) Speed() float64    { return a.speed }
func (a *Axis) MaxSpeed() float64 { return a.maxSpeed }
func (a *Axis) Mode() Mode        { return a.mode }

// Target returns the position the axis is seeking. A Rolling axis (or one
// still coasting after a roll was stopped) has no finite target; its
// present value is reported instead, so Target always lies within bounds.
func (a *Axis) Target() float64 {
	if math.IsInf(a.target, 0) {
		return a.current
	}
	return a.target
}

// SetMaxSpeed sets the nominal top speed in units per second.
func (a *Axis) SetMaxSpeed(v float64) {
	if v < 0 {
		v = 0
	}
	a.maxSpeed = v
}

// Goto retargets the axis at position (clamped to bounds) and switches to
// Seeking. Speed is left alone; it ramps naturally on the next Update.
func (a *Axis) Goto(position, multiplier float64) {
	a.target = clamp(position, a.min, a.max)
	a.mode = Seeking
	a.multiplier = multiplier
}

// Step nudges the target by delta. While the target is the rolling
// sentinel — still Rolling, or coasting after a stopped roll — the nudge is
// relative to the value at the moment of the call, never to ±Inf.
func (a *Axis) Step(delta, multiplier float64) {
	if math.IsInf(a.target, 0) {
		a.target = a.current
	}
	a.Goto(a.target+delta, multiplier)
}

// Roll starts unbounded motion, upward by default, downward when invert is
// set. The axis accelerates to maxSpeed*multiplier and cruises until Stop,
// Goto or SetCurrent intervenes, or a bound arrests it.
func (a *Axis) Roll(invert bool, multiplier float64) {
	a.mode = Rolling
	if invert {
		a.target = math.Inf(-1)
	} else {
		a.target = math.Inf(1)
	}
	a.multiplier = multiplier
}

// Stop requests a halt. The value and speed are untouched here; subsequent
// Update calls ramp the speed down to zero, so there is no velocity
// discontinuity.
func (a *Axis) Stop() {
	a.mode = Stopped
}

// SetCurrent snaps the axis to value (clamped to bounds): current and
// target coincide, mode is Stopped, speed is zeroed. The change callback is
// not invoked; the caller already knows the value.
func (a *Axis) SetCurrent(value float64) {
	v := clamp(value, a.min, a.max)
	a.current = v
	a.target = v
	a.mode = Stopped
	a.speed = 0
}

// Update advances the axis by elapsedMs of wall time and reports whether
// the value moved. The change callback fires (synchronously) only when it
// did.
func (a *Axis) Update(elapsedMs float64) bool {
	if elapsedMs <= 0 {
		return false
	}
	dt := elapsedMs / 1000
	top := a.maxSpeed * a.multiplier

	mode := a.mode
	if top <= 0 {
		// No usable speed: a Seeking target is only reachable through
		// SetCurrent, so halt outright.
		a.mode = Stopped
		a.speed = 0
		mode = Stopped
		top = 0
	} else if mode == Seeking {
		// Inside the braking window, decelerate for this step only. The
		// window is the stopping distance from the present speed under the
		// same ramp rate used below: v^2 / (2 * 2*top). The comparison is
		// inclusive so a zero-distance target with zero speed settles
		// instead of ramping up in place.
		braking := a.speed * a.speed / (4 * top)
		if math.Abs(a.target-a.current) <= braking {
			mode = Stopped
		}
	}

	want := 0.0
	if mode != Stopped {
		want = top
	}
	ramp := 2 * top * dt
	switch {
	case a.speed < want:
		a.speed = math.Min(a.speed+ramp, want)
	case a.speed > want:
		a.speed = math.Max(a.speed-ramp, want)
	}

	pos := a.current
	if a.speed > 0 {
		travel := a.speed * dt
		switch {
		case a.current < a.target:
			pos = math.Min(a.current+travel, a.target)
		case a.current > a.target:
			pos = math.Max(a.current-travel, a.target)
		}
	}
	if a.mode == Seeking && a.speed == 0 {
		// Braking can drain the speed a fraction of a frame's travel short
		// of the target. Land on it instead of reporting a motionless frame
		// in the middle of a seek.
		pos = a.target
	}
	pos = clamp(pos, a.min, a.max)

	if a.mode == Seeking && pos == a.target && a.speed == 0 {
		a.mode = Stopped
	}

	if pos == a.current {
		return false
	}
	a.current = pos
	if a.onChange != nil {
		a.onChange(pos)
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
