package animation_test

import (
	"testing"
	"time"

	"github.com/npillmayer/restyle/animation"
	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestTimingFunctions(t *testing.T) {
	if v := animation.Linear.Value(0.3); v != 0.3 {
		t.Errorf("expected linear(0.3) = 0.3, is %v", v)
	}
	assert.InDelta(t, 0.4085106, animation.Ease.Value(0.25), 1e-4)
	assert.InDelta(t, 0.8024034, animation.Ease.Value(0.5), 1e-4)
	for _, tf := range []animation.TimingFunction{animation.Ease, animation.EaseIn,
		animation.EaseOut, animation.EaseInOut} {
		if tf.Value(0) != 0 {
			t.Errorf("expected %v(0) = 0, is %v", tf, tf.Value(0))
		}
		assert.InDelta(t, 1.0, tf.Value(1), 1e-5, "%v(1)", tf)
	}
	if !animation.CubicBezier(0.3, 0.3, 0.7, 0.7).IsLinear() {
		t.Errorf("expected diagonal Bézier curve to be linear")
	}
	steps := animation.Steps(4, false)
	if v := steps.Value(0.3); v != 0.25 {
		t.Errorf("expected steps(4)(0.3) = 0.25, is %v", v)
	}
	if v := animation.Steps(4, true).Value(0.3); v != 0.5 {
		t.Errorf("expected steps(4, jump-start)(0.3) = 0.5, is %v", v)
	}
}

func twoFrames(from, to float32) *animation.State[float32] {
	s := animation.NewState[float32](entity.NewAnimation(0, 0))
	s.AddKeyframe(animation.Keyframe[float32]{Time: 1, Value: to})
	s.AddKeyframe(animation.Keyframe[float32]{Time: 0, Value: from})
	return s
}

func TestKeyframeOrder(t *testing.T) {
	s := twoFrames(0, 10)
	s.AddKeyframe(animation.Keyframe[float32]{Time: 0.5, Value: 7})
	s.AddKeyframe(animation.Keyframe[float32]{Time: 0.5, Value: 5})
	if len(s.Keyframes) != 3 {
		t.Fatalf("expected 3 keyframes, have %d", len(s.Keyframes))
	}
	for i, want := range []float32{0, 0.5, 1} {
		if s.Keyframes[i].Time != want {
			t.Errorf("expected keyframe %d at %v, is at %v", i, want, s.Keyframes[i].Time)
		}
	}
	if s.Keyframes[1].Value != 5 {
		t.Errorf("expected keyframe at 0.5 to be replaced, is %v", s.Keyframes[1].Value)
	}
}

func TestAdvanceBoundaries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.animation")
	defer teardown()
	//
	t0 := time.Unix(1000, 0)
	d := 100 * time.Millisecond
	s := twoFrames(10, 20).Clone()
	s.Play(t0, animation.Description{Duration: d})
	var last float32
	for i, at := range []time.Duration{0, d / 2, d, 2 * d} {
		s.Advance(t0.Add(at), animation.LerpFloat32)
		if s.Progress < last {
			t.Errorf("expected progress to be non-decreasing, step %d: %v < %v", i, s.Progress, last)
		}
		last = s.Progress
		v, ok := s.Output()
		if !ok {
			t.Fatalf("expected output at step %d", i)
		}
		switch i {
		case 0:
			if v != 10 {
				t.Errorf("expected first keyframe value at start, is %v", v)
			}
		case 1:
			assert.InDelta(t, 15, v, 1e-3)
		case 2, 3:
			if v != 20 || s.Progress != 1 {
				t.Errorf("expected last keyframe value and t=1 at end, is %v, t=%v", v, s.Progress)
			}
		}
	}
	if !s.Finished() || s.Running() {
		t.Errorf("expected animation to be finished")
	}
}

func TestDelayAndFill(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := twoFrames(1, 2).Clone()
	s.Play(t0, animation.Description{Duration: time.Second, Delay: time.Second})
	s.Advance(t0.Add(500*time.Millisecond), animation.LerpFloat32)
	if _, ok := s.Output(); ok {
		t.Errorf("expected no output during delay without backwards fill")
	}
	s.Play(t0, animation.Description{Duration: time.Second, Delay: time.Second,
		Fill: animation.FillBackwards})
	s.Advance(t0.Add(500*time.Millisecond), animation.LerpFloat32)
	if v, ok := s.Output(); !ok || v != 1 {
		t.Errorf("expected first keyframe during delay with backwards fill, is %v/%v", v, ok)
	}
	if s.Persistent() {
		t.Errorf("expected backwards fill not to be persistent")
	}
	s.Fill = animation.FillBoth
	if !s.Persistent() {
		t.Errorf("expected fill 'both' to be persistent")
	}
}

func TestIterationsAndDirection(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := twoFrames(0, 100).Clone()
	s.Play(t0, animation.Description{Duration: time.Second, Iterations: 2,
		Direction: animation.Alternate})
	s.Advance(t0.Add(1250*time.Millisecond), animation.LerpFloat32)
	v, _ := s.Output()
	assert.InDelta(t, 75, v, 1e-3)
	assert.InDelta(t, 0.625, s.Progress, 1e-6)
	s.Advance(t0.Add(3*time.Second), animation.LerpFloat32)
	v, _ = s.Output()
	if v != 0 || !s.Finished() {
		t.Errorf("expected alternate x2 to end at first keyframe, is %v", v)
	}
	s.Play(t0, animation.Description{Duration: time.Second, Iterations: animation.Infinite})
	s.Advance(t0.Add(10*time.Second+500*time.Millisecond), animation.LerpFloat32)
	if !s.Running() || !s.Persistent() {
		t.Errorf("expected infinite animation to keep running")
	}
	v, _ = s.Output()
	assert.InDelta(t, 50, v, 1e-3)
}

func TestSeekAndEntities(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := twoFrames(0, 10).Clone()
	s.Play(t0, animation.Description{Duration: time.Second})
	s.Seek(t0, 0.25)
	s.Advance(t0, animation.LerpFloat32)
	v, _ := s.Output()
	assert.InDelta(t, 2.5, v, 1e-3)
	a, b := entity.NewEntity(1, 0), entity.NewEntity(2, 0)
	s.AddEntity(a)
	s.AddEntity(b)
	s.AddEntity(a)
	if len(s.Entities()) != 2 {
		t.Errorf("expected 2 entities, have %d", len(s.Entities()))
	}
	if !s.RemoveEntity(a) || s.RemoveEntity(a) || s.HasEntity(a) {
		t.Errorf("expected entity a to be removed exactly once")
	}
	if len(s.Clone().Entities()) != 0 {
		t.Errorf("expected clone to carry no entities")
	}
}

func TestSingleKeyframe(t *testing.T) {
	s := animation.NewState[int32](entity.NewAnimation(3, 0))
	s.AddKeyframe(animation.Keyframe[int32]{Time: 0.3, Value: 42})
	s.Play(time.Unix(0, 0), animation.Description{Duration: time.Second})
	s.Advance(time.Unix(0, 0).Add(700*time.Millisecond), animation.LerpInt32)
	if v, ok := s.Output(); !ok || v != 42 {
		t.Errorf("expected constant output 42, is %v", v)
	}
	if animation.Discrete("a", "b", 0.49) != "a" || animation.Discrete("a", "b", 0.5) != "b" {
		t.Errorf("expected discrete interpolation to flip at half time")
	}
}
