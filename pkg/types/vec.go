package types

import "math"

// Vec3 is a world-space position. Y is height; the ground plane is X/Z.
type Vec3 struct {
	X float64 `yaml:"x" msgpack:"x" json:"x"`
	Y float64 `yaml:"y" msgpack:"y" json:"y"`
	Z float64 `yaml:"z" msgpack:"z" json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Distance returns the euclidean distance between two points.
func (v Vec3) Distance(o Vec3) float64 { return v.Sub(o).Length() }

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp interpolates between v and o; t is clamped to [0, 1].
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return v.Add(o.Sub(v).Scale(t))
}

// MoveTowards steps from v to target by at most maxStep without overshooting.
func (v Vec3) MoveTowards(target Vec3, maxStep float64) Vec3 {
	d := target.Sub(v)
	dist := d.Length()
	if dist <= maxStep || dist == 0 {
		return target
	}
	return v.Add(d.Scale(maxStep / dist))
}
