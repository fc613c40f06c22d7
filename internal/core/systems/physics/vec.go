// Package physics holds the small amount of vector math the simulation needs.
package physics

import "math"

// Vec3 is a point or direction in world units. Z is up.
type Vec3 struct {
	X float64 `json:"x" msgpack:"x" yaml:"x"`
	Y float64 `json:"y" msgpack:"y" yaml:"y"`
	Z float64 `json:"z" msgpack:"z" yaml:"z"`
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3       { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3       { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(k float64) Vec3  { return Vec3{v.X * k, v.Y * k, v.Z * k} }
func (v Vec3) Len() float64          { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) IsZero() bool          { return v.X == 0 && v.Y == 0 && v.Z == 0 }
func (v Vec3) Dist(o Vec3) float64   { return o.Sub(v).Len() }
func (v Vec3) Dist2D(o Vec3) float64 { return Distance2(v.X, v.Y, o.X, o.Y) }

// Normalize returns the unit vector along v and v's original length.
// A zero vector normalizes to itself.
func (v Vec3) Normalize() (Vec3, float64) {
	l := v.Len()
	if l == 0 {
		return Vec3{}, 0
	}
	return v.Scale(1 / l), l
}

// Distance2 computes Euclidean distance between two 2D points.
func Distance2(x1, y1, x2, y2 float64) float64 { return math.Hypot(x2-x1, y2-y1) }

// Heading returns the unit XY direction for an angle in degrees.
func Heading(deg float64) (dx, dy float64) {
	r := deg * math.Pi / 180
	return math.Cos(r), math.Sin(r)
}

// Bearing is the angle in degrees from a to b on the XY plane.
func Bearing(a, b Vec3) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
