package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 is a point or direction in level space. Lengths and
// normalization come in two flavours: the 2D ones only look at the
// horizontal (xy) plane, which is what movement code cares about.
type Vector3 mgl64.Vec3

var Zero = Vector3{}

func NewVector(x, y, z float64) Vector3 {
	return Vector3{x, y, z}
}

func (v Vector3) X() float64 { return v[0] }
func (v Vector3) Y() float64 { return v[1] }
func (v Vector3) Z() float64 { return v[2] }

func (v Vector3) IsZero() bool { return v[0] == 0 && v[1] == 0 && v[2] == 0 }

func (v Vector3) Dot(o Vector3) float64 {
	return mgl64.Vec3(v).Dot(mgl64.Vec3(o))
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3(mgl64.Vec3(v).Add(mgl64.Vec3(o)))
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3(mgl64.Vec3(v).Sub(mgl64.Vec3(o)))
}

func (v Vector3) Mul(k float64) Vector3 {
	return Vector3(mgl64.Vec3(v).Mul(k))
}

// Length is the full 3D magnitude.
func (v Vector3) Length() float64 {
	return mgl64.Vec3(v).Len()
}

// Length2D is the horizontal magnitude, ignoring z.
func (v Vector3) Length2D() float64 {
	return math.Hypot(v[0], v[1])
}

// Flatten drops the vertical component.
func (v Vector3) Flatten() Vector3 {
	return Vector3{v[0], v[1], 0}
}

// Normalize2D divides every component by the horizontal length. A vector
// without horizontal extent normalizes to the zero vector.
func (v Vector3) Normalize2D() Vector3 {
	length := v.Length2D()
	if length == 0 {
		return Zero
	}
	return v.Mul(1 / length)
}

// Normalize divides by the 3D length, returning the zero vector for a
// zero length input.
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return Zero
	}
	return Vector3(mgl64.Vec3(v).Mul(1 / length))
}

func Distance(from, to Vector3) float64 {
	return from.Sub(to).Length()
}
