// Package motion provides kinematic controllers for scalar view parameters.
//
// An [Axis] owns one scalar quantity (a camera yaw, a zoom level) and moves
// it toward a target value, or indefinitely in one direction, with linear
// acceleration and deceleration instead of instantaneous jumps. A
// [Composite] groups a fixed set of named axes behind one control surface
// and a single aggregated change notification.
//
// Controllers are frame-driven: nothing moves until Update is called with
// the wall time elapsed since the previous call. A run is therefore fully
// deterministic given the sequence of deltas and control operations.
//
// # Example
//
//	ctrl := motion.NewComposite(map[string]motion.Range{
//		"yaw":  {Min: -180, Max: 180},
//		"zoom": {Min: 1, Max: 10},
//	}, onChange)
//	ctrl.SetMaxSpeed(90)
//	ctrl.Goto(map[string]float64{"yaw": 45}, 1)
//	for range frames {
//		ctrl.Update(elapsedMs)
//	}
//
// # Thread Safety
//
// Controllers are NOT thread-safe. All control operations and Update calls
// must come from one logical thread, typically the render loop. Change
// callbacks run synchronously inside Update and may themselves issue
// control operations; avoiding feedback loops that never settle is the
// caller's responsibility.
package motion
