// Package envelope implements the ADSR, AR and AHD amplitude envelope
// state machines and the interpolation curves used to shape their
// segments.
package envelope

import "math"

// Curve maps a normalized progress value in [0,1] to a normalized output
// in [0,1]. Every curve passes through (0,0) and (1,1) and is
// monotonically non-decreasing.
type Curve struct {
	kind CurveKind
	p    float64
}

// CurveKind selects which interpolation profile a Curve applies.
type CurveKind int

const (
	CurveLinear CurveKind = iota
	CurveExponential
	CurveLogarithmic
	CurveSCurve
)

// Linear returns the identity curve.
func Linear() Curve { return Curve{kind: CurveLinear} }

// Exponential returns a t^p curve (slow start, fast finish).
func Exponential(p float64) Curve { return Curve{kind: CurveExponential, p: p} }

// Logarithmic returns a 1-(1-t)^p curve (fast start, slow finish).
func Logarithmic(p float64) Curve { return Curve{kind: CurveLogarithmic, p: p} }

// SCurve returns the smoothstep curve 3t^2 - 2t^3.
func SCurve() Curve { return Curve{kind: CurveSCurve} }

// Apply clamps t to [0,1] and evaluates the curve.
func (c Curve) Apply(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	switch c.kind {
	case CurveExponential:
		return math.Pow(t, c.p)
	case CurveLogarithmic:
		return 1 - math.Pow(1-t, c.p)
	case CurveSCurve:
		return t * t * (3 - 2*t)
	default:
		return t
	}
}
