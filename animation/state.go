package animation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/npillmayer/restyle/entity"
)

// Direction is the playback direction of an animation.
type Direction uint8

// Playback directions, as known from CSS 'animation-direction'.
const (
	Normal Direction = iota
	Reverse
	Alternate
	AlternateReverse
)

// FillMode tells if an animation applies its values before it starts
// and after it ends.
type FillMode uint8

// Fill modes, as known from CSS 'animation-fill-mode'.
const (
	FillNone FillMode = iota
	FillForwards
	FillBackwards
	FillBoth
)

// Infinite is the iteration count of animations which never end.
const Infinite = -1

// Description holds the playback parameters of an animation instance.
// The zero value plays once, forwards, without fill.
type Description struct {
	Duration   time.Duration
	Delay      time.Duration
	Iterations int // 0 is treated as 1; may be Infinite
	Direction  Direction
	Fill       FillMode
}

func (d Description) iterations() int {
	if d.Iterations == 0 {
		return 1
	}
	return d.Iterations
}

// Keyframe is a control point of an animation. Time is normalized to
// [0…1]; Timing shapes the segment starting at this keyframe.
type Keyframe[T any] struct {
	Time   float32
	Value  T
	Timing TimingFunction
}

// Transition records the shared data slots a transition animates between.
// From is -1 if the transition did not start from a shared value.
type Transition struct {
	From, To int
}

// State is either an animation template or an active animation instance.
type State[T any] struct {
	ID         entity.Animation
	Keyframes  []Keyframe[T] // sorted by time
	Transition *Transition   // non-nil for transitions
	Description
	Start     time.Time
	Progress  float32 // normalized progress of the whole animation
	Active    bool
	output    T
	hasOutput bool
	entities  []entity.Entity
}

// NewState creates an empty animation template.
func NewState[T any](id entity.Animation) *State[T] {
	return &State[T]{ID: id}
}

// AddKeyframe inserts a keyframe, keeping keyframes sorted by time.
// A keyframe at an already present time replaces the existing one.
func (s *State[T]) AddKeyframe(kf Keyframe[T]) *State[T] {
	kf.Time = clamp01(kf.Time)
	i := sort.Search(len(s.Keyframes), func(i int) bool {
		return s.Keyframes[i].Time >= kf.Time
	})
	if i < len(s.Keyframes) && s.Keyframes[i].Time == kf.Time {
		s.Keyframes[i] = kf
		return s
	}
	s.Keyframes = append(s.Keyframes, Keyframe[T]{})
	copy(s.Keyframes[i+1:], s.Keyframes[i:])
	s.Keyframes[i] = kf
	return s
}

// Clone copies a template. The copy has no entities and no output.
func (s *State[T]) Clone() *State[T] {
	c := &State[T]{
		ID:          s.ID,
		Description: s.Description,
		Start:       s.Start,
		Progress:    s.Progress,
		Active:      s.Active,
	}
	c.Keyframes = make([]Keyframe[T], len(s.Keyframes))
	copy(c.Keyframes, s.Keyframes)
	if s.Transition != nil {
		tr := *s.Transition
		c.Transition = &tr
	}
	return c
}

// Play (re-)starts an instance at time start.
func (s *State[T]) Play(start time.Time, d Description) {
	s.Start = start
	s.Description = d
	s.Progress = 0
	s.Active = true
	s.hasOutput = false
}

// Persistent instances are kept after they finished.
func (s *State[T]) Persistent() bool {
	return s.Fill == FillForwards || s.Fill == FillBoth || s.iterations() == Infinite
}

// Finished is true once an instance reached its end.
func (s *State[T]) Finished() bool {
	return s.Progress >= 1
}

// Running is true for active instances which have not yet finished.
// Infinite animations keep running forever.
func (s *State[T]) Running() bool {
	return s.Active && s.Progress < 1
}

// Output returns the current interpolated value.
func (s *State[T]) Output() (T, bool) {
	return s.output, s.hasOutput
}

// Seek moves the start of an instance so that its progress at time now
// equals p. Advance must be called to update the output.
func (s *State[T]) Seek(now time.Time, p float32) {
	p = clamp01(p)
	total := time.Duration(float64(s.Duration) * float64(s.iterations()))
	if s.iterations() == Infinite {
		total = s.Duration
	}
	s.Start = now.Add(-s.Delay - time.Duration(float64(total)*float64(p)))
	s.Progress = p
}

// Advance computes progress and output at time now.
func (s *State[T]) Advance(now time.Time, lerp Lerp[T]) {
	if len(s.Keyframes) == 0 {
		tracer().Debugf("animation %v has no keyframes", s.ID)
		s.Progress, s.hasOutput = 1, false
		return
	}
	elapsed := now.Sub(s.Start) - s.Delay
	if elapsed < 0 { // delay phase
		s.Progress = 0
		if s.Fill == FillBackwards || s.Fill == FillBoth {
			s.setOutput(s.sample(s.directed(0, 0), lerp))
		} else {
			s.hasOutput = false
		}
		return
	}
	n := s.iterations()
	if s.Duration <= 0 {
		s.Complete(lerp)
		return
	}
	p := float64(elapsed) / float64(s.Duration)
	if n != Infinite && p >= float64(n) {
		s.Complete(lerp)
		return
	}
	iter := math.Floor(p)
	local := float32(p - iter)
	if n == Infinite {
		s.Progress = local
	} else {
		s.Progress = float32(p / float64(n))
		if s.Progress >= 1 { // rounding
			s.Complete(lerp)
			return
		}
	}
	s.setOutput(s.sample(s.directed(local, int(iter)), lerp))
}

// Complete forces an instance to its end state.
func (s *State[T]) Complete(lerp Lerp[T]) {
	s.Progress = 1
	if len(s.Keyframes) == 0 {
		s.hasOutput = false
		return
	}
	n := s.iterations()
	if n == Infinite {
		n = 1
	}
	s.setOutput(s.sample(s.directed(1, n-1), lerp))
}

func (s *State[T]) setOutput(v T) {
	s.output, s.hasOutput = v, true
}

// directed maps local progress of an iteration to keyframe time,
// respecting the playback direction.
func (s *State[T]) directed(x float32, iter int) float32 {
	switch s.Direction {
	case Reverse:
		return 1 - x
	case Alternate:
		if iter%2 == 1 {
			return 1 - x
		}
	case AlternateReverse:
		if iter%2 == 0 {
			return 1 - x
		}
	}
	return x
}

// sample interpolates the keyframe segment containing x.
func (s *State[T]) sample(x float32, lerp Lerp[T]) T {
	kfs := s.Keyframes
	if len(kfs) == 1 || x <= kfs[0].Time {
		return kfs[0].Value
	}
	last := kfs[len(kfs)-1]
	if x >= last.Time {
		return last.Value
	}
	for i := 0; i < len(kfs)-1; i++ {
		a, b := kfs[i], kfs[i+1]
		if a.Time <= x && x < b.Time {
			span := b.Time - a.Time
			return lerp(a.Value, b.Value, a.Timing.Value((x-a.Time)/span))
		}
	}
	return last.Value
}

// --- Entities ---------------------------------------------------------

// Entities returns the entities driven by an instance.
func (s *State[T]) Entities() []entity.Entity {
	return s.entities
}

// HasEntity is true if e is driven by this instance.
func (s *State[T]) HasEntity(e entity.Entity) bool {
	for _, x := range s.entities {
		if x == e {
			return true
		}
	}
	return false
}

// AddEntity attaches an entity to an instance.
func (s *State[T]) AddEntity(e entity.Entity) {
	if !s.HasEntity(e) {
		s.entities = append(s.entities, e)
	}
}

// RemoveEntity detaches an entity. It returns false if e was not attached.
func (s *State[T]) RemoveEntity(e entity.Entity) bool {
	for i, x := range s.entities {
		if x == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State[T]) String() string {
	return fmt.Sprintf("(%v t=%.3f kf=%d entities=%d)", s.ID, s.Progress, len(s.Keyframes), len(s.entities))
}
