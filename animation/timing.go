package animation

import (
	"fmt"
	"math"
)

type timingKind uint8

const (
	linearTiming timingKind = iota
	bezierTiming
	stepsTiming
)

// TimingFunction maps normalized time [0…1] to normalized progress.
// The zero value is the linear timing function.
type TimingFunction struct {
	kind           timingKind
	x1, y1, x2, y2 float32
	steps          int
	jumpStart      bool
}

// Named timing functions, as known from CSS.
var (
	Linear    = TimingFunction{}
	Ease      = CubicBezier(0.25, 0.1, 0.25, 1.0)
	EaseIn    = CubicBezier(0.42, 0, 1, 1)
	EaseOut   = CubicBezier(0, 0, 0.58, 1)
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
)

// CubicBezier creates a timing function from the two inner control points of
// a cubic Bézier curve running from (0,0) to (1,1). x1 and x2 are clamped to
// [0…1] to keep the curve a function of time.
func CubicBezier(x1, y1, x2, y2 float32) TimingFunction {
	return TimingFunction{
		kind: bezierTiming,
		x1:   clamp01(x1),
		y1:   y1,
		x2:   clamp01(x2),
		y2:   y2,
	}
}

// Steps creates a step timing function with n intervals. If jumpStart is set,
// the first jump happens at the start of the animation (CSS 'jump-start'),
// otherwise at the end of each interval (CSS 'jump-end').
func Steps(n int, jumpStart bool) TimingFunction {
	if n < 1 {
		n = 1
	}
	return TimingFunction{kind: stepsTiming, steps: n, jumpStart: jumpStart}
}

// IsLinear is true for the identity timing function.
func (tf TimingFunction) IsLinear() bool {
	return tf.kind == linearTiming ||
		(tf.kind == bezierTiming && tf.x1 == tf.y1 && tf.x2 == tf.y2)
}

// Value returns the progress for normalized time x.
func (tf TimingFunction) Value(x float32) float32 {
	x = clamp01(x)
	switch tf.kind {
	case bezierTiming:
		if tf.IsLinear() {
			return x
		}
		return tf.bezierY(tf.solveT(x))
	case stepsTiming:
		n := float32(tf.steps)
		if tf.jumpStart {
			return float32(math.Ceil(float64(x*n))) / n
		}
		return float32(math.Floor(float64(x*n))) / n
	}
	return x
}

func (tf TimingFunction) String() string {
	switch tf.kind {
	case bezierTiming:
		return fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", tf.x1, tf.y1, tf.x2, tf.y2)
	case stepsTiming:
		if tf.jumpStart {
			return fmt.Sprintf("steps(%d, jump-start)", tf.steps)
		}
		return fmt.Sprintf("steps(%d)", tf.steps)
	}
	return "linear"
}

// Polynomial coefficients for one dimension of the Bézier curve:
// B(t) = ((a·t + b)·t + c)·t
func coefficients(p1, p2 float32) (a, b, c float32) {
	c = 3 * p1
	b = 3*(p2-p1) - c
	a = 1 - c - b
	return
}

func (tf TimingFunction) bezierX(t float32) float32 {
	a, b, c := coefficients(tf.x1, tf.x2)
	return ((a*t+b)*t + c) * t
}

func (tf TimingFunction) bezierY(t float32) float32 {
	a, b, c := coefficients(tf.y1, tf.y2)
	return ((a*t+b)*t + c) * t
}

func (tf TimingFunction) bezierDX(t float32) float32 {
	a, b, c := coefficients(tf.x1, tf.x2)
	return (3*a*t+2*b)*t + c
}

const (
	newtonIterations = 8
	newtonMinSlope   = 1e-6
	bisectEpsilon    = 1e-7
)

// solveT finds the curve parameter t for which x(t) = x.
func (tf TimingFunction) solveT(x float32) float32 {
	t := x
	for i := 0; i < newtonIterations; i++ {
		dx := tf.bezierX(t) - x
		if math.Abs(float64(dx)) < bisectEpsilon {
			return t
		}
		slope := tf.bezierDX(t)
		if math.Abs(float64(slope)) < newtonMinSlope {
			break
		}
		t -= dx / slope
	}
	lo, hi := float32(0), float32(1)
	t = x
	for i := 0; i < 64 && hi-lo > bisectEpsilon; i++ {
		if tf.bezierX(t) < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
