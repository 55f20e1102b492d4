package geom

import "math"

// Degrees to radians, using the engine's 2π/360 factor.
func Radians(degrees float64) float64 {
	return degrees * (math.Pi * 2 / 360)
}

// AngleVectors turns a (pitch, yaw, roll) triple in degrees into the
// forward, right and up basis vectors. Right points to the player's right,
// so yaw 0 gives a right vector of (0, -1, 0).
func AngleVectors(angles Vector3) (forward, right, up Vector3) {
	sp, cp := math.Sincos(Radians(angles.X()))
	sy, cy := math.Sincos(Radians(angles.Y()))
	sr, cr := math.Sincos(Radians(angles.Z()))

	forward = Vector3{
		cp * cy,
		cp * sy,
		-sp,
	}

	right = Vector3{
		-sr*sp*cy + cr*sy,
		-sr*sp*sy - cr*cy,
		-sr * cp,
	}

	up = Vector3{
		cr*sp*cy + sr*sy,
		cr*sp*sy - sr*cy,
		cr * cp,
	}

	return forward, right, up
}

// WrapDegrees brings an angle that overshot [0, 360) by less than a full
// turn back into range with a single add or subtract.
func WrapDegrees(angle float64) float64 {
	if angle >= 360 {
		return angle - 360
	}
	if angle < 0 {
		return angle + 360
	}
	return angle
}
