package motion

import (
	"fmt"
	"sort"
)

// Range bounds one named axis of a [Composite]. Use ±Inf for an unbounded
// side; the zero value pins the axis to a single point.
type Range struct {
	Min float64
	Max float64
}

// Composite fans control operations out to a fixed set of named axes and
// folds their per-frame results into one change signal. The axis set is
// immutable after construction.
//
// Fan-out operations take sparse maps: axes absent from the map are left
// untouched. A name outside the axis set rejects the whole call with
// [ErrUnknownAxis] before any axis is modified.
type Composite struct {
	axes     map[string]*Axis
	onChange func(map[string]float64)
}

// NewComposite builds one axis per entry of ranges. onChange may be nil;
// when set it fires at most once per Update with a snapshot of every
// axis's value.
func NewComposite(ranges map[string]Range, onChange func(map[string]float64)) *Composite {
	c := &Composite{
		axes:     make(map[string]*Axis, len(ranges)),
		onChange: onChange,
	}
	for name, r := range ranges {
		c.axes[name] = NewAxis(nil, r.Min, r.Max)
	}
	return c
}

// Axis returns the named axis, or nil if the name is not in the set.
func (c *Composite) Axis(name string) *Axis { return c.axes[name] }

// Names returns the axis names in sorted order.
func (c *Composite) Names() []string {
	names := make([]string, 0, len(c.axes))
	for name := range c.axes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetMaxSpeed applies the same nominal top speed to every axis.
func (c *Composite) SetMaxSpeed(v float64) {
	for _, a := range c.axes {
		a.SetMaxSpeed(v)
	}
}

// Goto retargets every axis named in targets.
func (c *Composite) Goto(targets map[string]float64, multiplier float64) error {
	if err := c.checkValues(targets); err != nil {
		return err
	}
	for name, pos := range targets {
		c.axes[name].Goto(pos, multiplier)
	}
	return nil
}

// Step nudges every axis named in deltas by its delta.
func (c *Composite) Step(deltas map[string]float64, multiplier float64) error {
	if err := c.checkValues(deltas); err != nil {
		return err
	}
	for name, delta := range deltas {
		c.axes[name].Step(delta, multiplier)
	}
	return nil
}

// Roll starts unbounded motion on every axis named in invert; the mapped
// bool flips the direction downward.
func (c *Composite) Roll(invert map[string]bool, multiplier float64) error {
	for name := range invert {
		if _, ok := c.axes[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAxis, name)
		}
	}
	for name, inv := range invert {
		c.axes[name].Roll(inv, multiplier)
	}
	return nil
}

// SetCurrent snaps every axis named in values. No change callback fires.
func (c *Composite) SetCurrent(values map[string]float64) error {
	if err := c.checkValues(values); err != nil {
		return err
	}
	for name, v := range values {
		c.axes[name].SetCurrent(v)
	}
	return nil
}

// Stop requests a halt on every axis, named or not.
func (c *Composite) Stop() {
	for _, a := range c.axes {
		a.Stop()
	}
}

// Update advances every axis by elapsedMs. If any value moved, the change
// callback fires exactly once with a full snapshot and Update reports true.
func (c *Composite) Update(elapsedMs float64) bool {
	changed := false
	for _, a := range c.axes {
		if a.Update(elapsedMs) {
			changed = true
		}
	}
	if !changed {
		return false
	}
	if c.onChange != nil {
		c.onChange(c.Values())
	}
	return true
}

// Values returns a snapshot of every axis's current value.
func (c *Composite) Values() map[string]float64 {
	out := make(map[string]float64, len(c.axes))
	for name, a := range c.axes {
		out[name] = a.Current()
	}
	return out
}

func (c *Composite) checkValues(m map[string]float64) error {
	for name := range m {
		if _, ok := c.axes[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAxis, name)
		}
	}
	return nil
}
