package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Round rounds v to the given number of decimal places using
// round-half-to-even, so that values sitting exactly on a tie do not drift
// in one direction.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}

// Cross returns the z-component of the cross product of u and v treated as
// 3-D vectors lying in the z=0 plane.
func Cross(u, v v2.Vec) float64 {
	return u.Cross(v)
}

// Angle returns the angle in [0, pi] between u and v, computed from
// cos(phi) = <u,v> / (|u||v|). The cosine is rounded to precision decimal
// places before inversion so floating noise never pushes it outside [-1, 1].
// ok is false when either vector has zero length.
func Angle(u, v v2.Vec, precision int) (phi float64, ok bool) {
	lu, lv := u.Length(), v.Length()
	if lu == 0 || lv == 0 {
		return 0, false
	}
	cos := Round(u.Dot(v)/(lu*lv), precision)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos), true
}
