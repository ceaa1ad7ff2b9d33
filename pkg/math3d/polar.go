package math3d

import "math"

// Polar coordinates in Prism use Z as the pole:
//
//	x = r·sin(theta)·sin(phi)
//	y = r·sin(theta)·cos(phi)
//	z = r·cos(theta)
//
// so theta is the angle from +Z and phi is the azimuth measured from +Y
// towards +X.

// FromPolar converts polar coordinates to a Cartesian vector.
func FromPolar(r, theta, phi float64) Vec3 {
	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)
	return Vec3{
		r * sinTheta * sinPhi,
		r * sinTheta * cosPhi,
		r * cosTheta,
	}
}

// PolarTheta returns the polar angle of v in [0, π].
// The zero vector has theta 0.
func PolarTheta(v Vec3) float64 {
	l := v.Len()
	if l == 0 {
		return 0
	}
	return math.Acos(Clamp(v.Z/l, -1, 1))
}

// PolarPhi returns the azimuth of v in (-π, π].
// Vectors on the Z axis have phi 0.
func PolarPhi(v Vec3) float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Atan2(v.X, v.Y)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
