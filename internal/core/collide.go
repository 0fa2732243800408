package core

import "math"

// Contact describes the result of a circle-vs-shape overlap test.
// Normal points from the shape toward the circle center; pushing the circle
// along Normal by Penetration separates the two.
type Contact struct {
	Hit         bool
	Normal      Vec2
	Penetration float64
}

// CircleVsRect tests a circle against an axis-aligned rectangle.
// The nearest point on the rectangle is found by clamping the circle center
// to the rectangle bounds. When the center lies inside the rectangle the
// distance is zero and the normal defaults to Up.
func CircleVsRect(center Vec2, radius float64, r Rect) Contact {
	nearest := Vec2{
		X: ClampF(center.X, r.X, r.Right()),
		Y: ClampF(center.Y, r.Y, r.Top()),
	}
	d := center.Sub(nearest)
	dist := d.Len()
	if dist >= radius {
		return Contact{}
	}
	if dist == 0 {
		return Contact{Hit: true, Normal: Up, Penetration: radius}
	}
	return Contact{
		Hit:         true,
		Normal:      d.Scale(1 / dist),
		Penetration: radius - dist,
	}
}

// CircleVsRotatedRect tests a circle against a rotated rectangle by moving
// the circle center into the rectangle's local frame, running the
// axis-aligned test there and rotating the normal back to world space.
func CircleVsRotatedRect(center Vec2, radius float64, r RotatedRect) Contact {
	local := center.Sub(r.Center).Rotate(-r.Angle)
	box := Rect{X: -r.W / 2, Y: -r.H / 2, W: r.W, H: r.H}
	c := CircleVsRect(local, radius, box)
	if !c.Hit {
		return c
	}
	c.Normal = c.Normal.Rotate(r.Angle)
	return c
}

// CircleVsCircle tests two circles for overlap. The normal points from b
// toward a. Coincident centers report Up.
func CircleVsCircle(a Vec2, ra float64, b Vec2, rb float64) Contact {
	d := a.Sub(b)
	dist := d.Len()
	sum := ra + rb
	if dist >= sum {
		return Contact{}
	}
	if dist == 0 {
		return Contact{Hit: true, Normal: Up, Penetration: sum}
	}
	return Contact{Hit: true, Normal: d.Scale(1 / dist), Penetration: sum - dist}
}

// Reflect mirrors a velocity about a unit normal: v - 2(v·n)n.
func Reflect(v, n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// ReflectInPlace reflects *v about n. The caller pushes the body out along
// n by the penetration depth.
func ReflectInPlace(v *Vec2, n Vec2) {
	*v = Reflect(*v, n)
}

// ApproxEqual reports whether two floats differ by less than eps.
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}
