package motion

import (
	"math"
	"testing"
)

const frameMs = 16.0

// settle runs fixed-interval updates until the axis stops moving and its
// speed drains, failing the test if that takes more than frames updates.
func settle(t *testing.T, a *Axis, frames int) int {
	t.Helper()
	for i := 0; i < frames; i++ {
		a.Update(frameMs)
		if a.Mode() == Stopped && a.Speed() == 0 && a.Current() == a.Target() {
			return i + 1
		}
	}
	t.Fatalf("axis did not settle within %d frames (current=%f target=%f speed=%f mode=%s)",
		frames, a.Current(), a.Target(), a.Speed(), a.Mode())
	return frames
}

func TestGotoConvergesWithoutOvershoot(t *testing.T) {
	a := NewAxis(nil, -100, 100)
	a.SetMaxSpeed(10)
	a.Goto(5, 1)

	for i := 0; i < 2000; i++ {
		a.Update(frameMs)
		if a.Current() > 5 {
			t.Fatalf("overshot target: current=%f at frame %d", a.Current(), i)
		}
		if a.Mode() == Stopped && a.Speed() == 0 {
			break
		}
	}

	if a.Current() != 5 {
		t.Errorf("expected current 5, got %f", a.Current())
	}
	if a.Mode() != Stopped {
		t.Errorf("expected Stopped, got %s", a.Mode())
	}
	if a.Speed() != 0 {
		t.Errorf("expected zero speed, got %f", a.Speed())
	}
}

func TestGotoConvergesFromAbove(t *testing.T) {
	a := NewAxis(nil, -100, 100)
	a.SetMaxSpeed(25)
	a.SetCurrent(50)
	a.Goto(-20, 1)

	for i := 0; i < 2000; i++ {
		a.Update(frameMs)
		if a.Current() < -20 {
			t.Fatalf("overshot target from above: current=%f", a.Current())
		}
		if a.Mode() == Stopped && a.Speed() == 0 {
			break
		}
	}
	if a.Current() != -20 {
		t.Errorf("expected current -20, got %f", a.Current())
	}
}

func TestGotoClampsToBounds(t *testing.T) {
	a := NewAxis(nil, -10, 10)
	a.SetMaxSpeed(5)
	a.Goto(500, 1)

	if a.Target() != 10 {
		t.Fatalf("expected target clamped to 10, got %f", a.Target())
	}

	settle(t, a, 2000)

	if a.Current() != 10 {
		t.Errorf("expected current 10, got %f", a.Current())
	}
}

func TestGotoCurrentPositionSettles(t *testing.T) {
	a := NewAxis(nil, -10, 10)
	a.SetMaxSpeed(5)
	a.Goto(0, 1)

	if a.Update(frameMs) {
		t.Error("update should report no change for zero-distance target")
	}
	if a.Mode() != Stopped {
		t.Errorf("expected Stopped, got %s", a.Mode())
	}
	if a.Speed() != 0 {
		t.Errorf("expected zero speed, got %f", a.Speed())
	}
}

func TestRollNeverConverges(t *testing.T) {
	a := NewAxis(nil, math.Inf(-1), math.Inf(1))
	a.SetMaxSpeed(10)
	a.Roll(false, 1)

	prev := a.Current()
	for i := 0; i < 500; i++ {
		if !a.Update(frameMs) {
			t.Fatalf("rolling axis stalled at frame %d", i)
		}
		if a.Current() <= prev {
			t.Fatalf("expected strictly increasing value, got %f after %f", a.Current(), prev)
		}
		prev = a.Current()
	}

	if a.Mode() != Rolling {
		t.Errorf("expected Rolling, got %s", a.Mode())
	}
	if a.Speed() != 10 {
		t.Errorf("expected cruise speed 10, got %f", a.Speed())
	}
}

func TestRollInvertDecreases(t *testing.T) {
	a := NewAxis(nil, math.Inf(-1), math.Inf(1))
	a.SetMaxSpeed(10)
	a.Roll(true, 1)

	for i := 0; i < 100; i++ {
		a.Update(frameMs)
	}
	if a.Current() >= 0 {
		t.Errorf("inverted roll should move down, got %f", a.Current())
	}
}

func TestRollArrestedAtBound(t *testing.T) {
	a := NewAxis(nil, -3, 3)
	a.SetMaxSpeed(10)
	a.Roll(false, 1)

	for i := 0; i < 500; i++ {
		a.Update(frameMs)
	}
	if a.Current() != 3 {
		t.Fatalf("expected current pinned at 3, got %f", a.Current())
	}

	for i := 0; i < 10; i++ {
		if a.Update(frameMs) {
			t.Error("update should report no change once arrested at bound")
		}
	}
	if a.Current() != 3 {
		t.Errorf("current moved past bound: %f", a.Current())
	}
}

func TestSetCurrentSnaps(t *testing.T) {
	calls := 0
	a := NewAxis(func(float64) { calls++ }, -10, 10)
	a.SetMaxSpeed(10)
	a.Roll(false, 1)
	for i := 0; i < 20; i++ {
		a.Update(frameMs)
	}

	calls = 0
	a.SetCurrent(2)

	if a.Current() != 2 || a.Target() != 2 {
		t.Errorf("expected current == target == 2, got %f / %f", a.Current(), a.Target())
	}
	if a.Mode() != Stopped {
		t.Errorf("expected Stopped, got %s", a.Mode())
	}
	if a.Speed() != 0 {
		t.Errorf("expected zero speed, got %f", a.Speed())
	}
	if calls != 0 {
		t.Errorf("snap must not invoke the change callback, got %d calls", calls)
	}
	if a.Update(frameMs) {
		t.Error("no residual motion expected after snap")
	}
}

func TestSetCurrentClamps(t *testing.T) {
	a := NewAxis(nil, 0, 10)
	a.SetCurrent(-5)
	if a.Current() != 0 {
		t.Errorf("expected clamp to 0, got %f", a.Current())
	}
}

func TestStepWhileRollingIsRelativeToNow(t *testing.T) {
	a := NewAxis(nil, math.Inf(-1), math.Inf(1))
	a.SetMaxSpeed(10)
	a.Roll(false, 1)
	for i := 0; i < 100; i++ {
		a.Update(frameMs)
	}

	at := a.Current()
	a.Step(1, 1)

	if a.Mode() != Seeking {
		t.Fatalf("expected Seeking after step, got %s", a.Mode())
	}
	if a.Target() != at+1 {
		t.Errorf("expected target %f, got %f", at+1, a.Target())
	}
	if math.IsInf(a.Target(), 0) {
		t.Error("step must not be relative to the rolling sentinel")
	}
}

func TestSeekReportsChangeEveryFrameUntilArrival(t *testing.T) {
	a := NewAxis(nil, math.Inf(-1), math.Inf(1))
	a.SetMaxSpeed(10)
	a.Goto(100, 1)

	for i := 0; i < 5000; i++ {
		changed := a.Update(frameMs)
		if !changed && a.Current() != a.Target() {
			t.Fatalf("motionless frame %d short of target: current=%v target=%v speed=%v mode=%s",
				i, a.Current(), a.Target(), a.Speed(), a.Mode())
		}
		if a.Mode() == Stopped && a.Speed() == 0 {
			if a.Current() != 100 {
				t.Fatalf("settled off target: %v", a.Current())
			}
			return
		}
	}
	t.Fatal("axis did not settle")
}

func TestStepAfterStoppedRollIsRelativeToNow(t *testing.T) {
	a := NewAxis(nil, -10, 10)
	a.SetMaxSpeed(10)
	a.Roll(false, 1)
	for i := 0; i < 20; i++ {
		a.Update(frameMs)
	}

	a.Stop()
	for i := 0; i < 500; i++ {
		a.Update(frameMs)
		if a.Speed() == 0 {
			break
		}
	}
	rest := a.Current()

	a.Step(1, 1)
	if a.Mode() != Seeking {
		t.Fatalf("expected Seeking after step, got %s", a.Mode())
	}
	if math.IsInf(a.Target(), 0) {
		t.Fatal("step must not seek toward the rolling sentinel")
	}
	if got := a.Target(); got != rest+1 {
		t.Fatalf("expected target %f relative to the resting value, got %f", rest+1, got)
	}

	settle(t, a, 2000)
	if a.Current() != rest+1 {
		t.Errorf("expected current %f, got %f", rest+1, a.Current())
	}
}

func TestStepWhileSeekingNudgesTarget(t *testing.T) {
	a := NewAxis(nil, -100, 100)
	a.SetMaxSpeed(10)
	a.Goto(5, 1)
	a.Step(2, 1)

	if a.Target() != 7 {
		t.Errorf("expected target 7, got %f", a.Target())
	}
}

func TestStopDeceleratesSmoothly(t *testing.T) {
	a := NewAxis(nil, math.Inf(-1), math.Inf(1))
	a.SetMaxSpeed(10)
	a.Roll(false, 1)
	for i := 0; i < 100; i++ {
		a.Update(frameMs)
	}
	if a.Speed() != 10 {
		t.Fatalf("expected cruise speed before stop, got %f", a.Speed())
	}

	a.Stop()
	if a.Speed() != 10 {
		t.Fatal("stop must not zero the speed instantly")
	}

	prevSpeed := a.Speed()
	prevPos := a.Current()
	moved := false
	for i := 0; i < 500; i++ {
		a.Update(frameMs)
		if a.Speed() > prevSpeed {
			t.Fatalf("speed increased after stop: %f > %f", a.Speed(), prevSpeed)
		}
		if a.Current() > prevPos {
			moved = true
		}
		prevSpeed = a.Speed()
		prevPos = a.Current()
		if a.Speed() == 0 {
			break
		}
	}
	if a.Speed() != 0 {
		t.Errorf("speed did not drain to zero, got %f", a.Speed())
	}
	if !moved {
		t.Error("axis should coast forward while decelerating")
	}
}

func TestDegenerateSpeedStopsImmediately(t *testing.T) {
	a := NewAxis(nil, -10, 10)
	a.Goto(5, 1) // maxSpeed is 0

	if a.Update(frameMs) {
		t.Error("update should report no change with zero top speed")
	}
	if a.Mode() != Stopped {
		t.Errorf("expected forced Stopped, got %s", a.Mode())
	}
	if a.Current() != 0 {
		t.Errorf("current must not move, got %f", a.Current())
	}
}

func TestZeroMultiplierStopsImmediately(t *testing.T) {
	a := NewAxis(nil, -10, 10)
	a.SetMaxSpeed(10)
	a.Goto(5, 0)

	if a.Update(frameMs) {
		t.Error("update should report no change with zero multiplier")
	}
	if a.Mode() != Stopped {
		t.Errorf("expected forced Stopped, got %s", a.Mode())
	}
}

func TestSpeedMultiplierScalesCruise(t *testing.T) {
	a := NewAxis(nil, math.Inf(-1), math.Inf(1))
	a.SetMaxSpeed(10)
	a.Roll(false, 0.5)

	for i := 0; i < 200; i++ {
		a.Update(frameMs)
	}
	if a.Speed() != 5 {
		t.Errorf("expected cruise speed 5 with multiplier 0.5, got %f", a.Speed())
	}
}

func TestChangeCallbackFiresOnlyOnMovement(t *testing.T) {
	var got []float64
	a := NewAxis(func(v float64) { got = append(got, v) }, -10, 10)
	a.SetMaxSpeed(10)

	if a.Update(frameMs) {
		t.Error("idle update should not change anything")
	}
	if len(got) != 0 {
		t.Fatalf("callback fired while idle: %v", got)
	}

	a.Goto(1, 1)
	a.Update(frameMs)
	if len(got) != 1 {
		t.Fatalf("expected one callback after first moving frame, got %d", len(got))
	}
	if got[0] != a.Current() {
		t.Errorf("callback value %f does not match current %f", got[0], a.Current())
	}
}

func TestReentrantControlFromCallback(t *testing.T) {
	var a *Axis
	a = NewAxis(func(v float64) {
		if v > 2 {
			a.Stop()
		}
	}, -10, 10)
	a.SetMaxSpeed(10)
	a.Goto(8, 1)

	for i := 0; i < 2000; i++ {
		a.Update(frameMs)
		if a.Mode() == Stopped && a.Speed() == 0 {
			break
		}
	}
	if a.Speed() != 0 {
		t.Errorf("expected settled axis, speed %f", a.Speed())
	}
	if a.Current() >= 8 {
		t.Errorf("reentrant stop should settle short of the target, got %f", a.Current())
	}
}

func TestVariableTimestepStillConverges(t *testing.T) {
	a := NewAxis(nil, -100, 100)
	a.SetMaxSpeed(30)
	a.Goto(12, 1)

	deltas := []float64{5, 33, 16, 7, 41, 16, 16, 9, 25}
	for i := 0; i < 3000; i++ {
		a.Update(deltas[i%len(deltas)])
		if a.Current() > 12 {
			t.Fatalf("overshot with variable timestep: %f", a.Current())
		}
		if a.Mode() == Stopped && a.Speed() == 0 && a.Current() == 12 {
			return
		}
	}
	t.Fatalf("did not converge: current=%f speed=%f", a.Current(), a.Speed())
}

func TestNonPositiveElapsedIsNoop(t *testing.T) {
	a := NewAxis(nil, -10, 10)
	a.SetMaxSpeed(10)
	a.Goto(5, 1)

	if a.Update(0) {
		t.Error("zero elapsed time must not move the axis")
	}
	if a.Update(-16) {
		t.Error("negative elapsed time must not move the axis")
	}
	if a.Current() != 0 {
		t.Errorf("current moved without time passing: %f", a.Current())
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Stopped, "stopped"},
		{Rolling, "rolling"},
		{Seeking, "seeking"},
		{Mode(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
