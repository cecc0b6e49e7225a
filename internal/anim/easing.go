// Package anim drives frame-based value animations for charts.
package anim

import (
	"fmt"
	"math"
)

// Easing maps clamped progress in [0, 1] to an eased fraction.
// The result may leave [0, 1] for overshooting curves.
type Easing func(p float64) float64

// Easing names accepted by EasingByName.
const (
	EaseCubicOut     = "cubic-out"
	EaseBezier       = "bezier"
	EaseBezierLegacy = "bezier-legacy"
	EaseLinear       = "linear"
)

// Control points of the overshooting radar curve.
const (
	BackX1 = 0.34
	BackY1 = 1.56
	BackX2 = 0.64
	BackY2 = 1.0
)

// Linear returns p unchanged.
func Linear(p float64) float64 {
	return p
}

// EaseOutCubic decelerates to the target: 1 - (1-p)^3.
func EaseOutCubic(p float64) float64 {
	u := 1 - p
	return 1 - u*u*u
}

// CubicBezier returns a CSS-style cubic-bezier timing function through
// (0,0), (x1,y1), (x2,y2), (1,1). x1 and x2 must lie in [0, 1]; y values may
// exceed that range, which makes the curve overshoot.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}
		return bezier(solveBezierT(p, x1, x2), y1, y2)
	}
}

// LegacyBezier evaluates the x polynomial of the curve at t = p, treating the
// x control points as ordinates. It never overshoots for x1, x2 in [0, 1].
func LegacyBezier(x1, _, x2, _ float64) Easing {
	return func(p float64) float64 {
		return bezier(p, x1, x2)
	}
}

// EasingByName resolves a configured easing name.
func EasingByName(name string) (Easing, error) {
	switch name {
	case EaseCubicOut:
		return EaseOutCubic, nil
	case EaseBezier:
		return CubicBezier(BackX1, BackY1, BackX2, BackY2), nil
	case EaseBezierLegacy:
		return LegacyBezier(BackX1, BackY1, BackX2, BackY2), nil
	case EaseLinear:
		return Linear, nil
	default:
		return nil, fmt.Errorf("unknown easing %q (want %s, %s, %s or %s)",
			name, EaseCubicOut, EaseBezier, EaseBezierLegacy, EaseLinear)
	}
}

func bezier(t, c1, c2 float64) float64 {
	u := 1 - t
	return 3*u*u*t*c1 + 3*u*t*t*c2 + t*t*t
}

func bezierSlope(t, c1, c2 float64) float64 {
	u := 1 - t
	return 3*u*u*c1 + 6*u*t*(c2-c1) + 3*t*t*(1-c2)
}

const bezierEpsilon = 1e-7

func solveBezierT(x, x1, x2 float64) float64 {
	t := x
	for i := 0; i < 8; i++ {
		diff := bezier(t, x1, x2) - x
		if math.Abs(diff) < bezierEpsilon {
			return t
		}
		slope := bezierSlope(t, x1, x2)
		if math.Abs(slope) < 1e-6 {
			break
		}
		t -= diff / slope
	}

	// Newton did not converge; fall back to bisection.
	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < 64; i++ {
		v := bezier(t, x1, x2)
		if math.Abs(v-x) < bezierEpsilon {
			break
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}
