package core

import (
	"math"
	"testing"
)

func TestCircleVsRect(t *testing.T) {
	box := NewRect(0, 0, 10, 10)

	tests := []struct {
		name       string
		center     Vec2
		radius     float64
		hit        bool
		normal     Vec2
		penetraton float64
	}{
		{"clear miss", V(20, 5), 2, false, Vec2{}, 0},
		{"touching edge is not a hit", V(12, 5), 2, false, Vec2{}, 0},
		{"right side", V(11, 5), 2, true, V(1, 0), 1},
		{"top side", V(5, 11.5), 2, true, V(0, 1), 0.5},
		{"bottom side", V(5, -1), 2, true, V(0, -1), 1},
		{"center inside defaults upward", V(5, 5), 2, true, Up, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := CircleVsRect(tc.center, tc.radius, box)
			if c.Hit != tc.hit {
				t.Fatalf("Hit = %v, expected %v", c.Hit, tc.hit)
			}
			if !tc.hit {
				return
			}
			if !ApproxEqual(c.Normal.X, tc.normal.X, 1e-9) || !ApproxEqual(c.Normal.Y, tc.normal.Y, 1e-9) {
				t.Errorf("Normal = %v, expected %v", c.Normal, tc.normal)
			}
			if !ApproxEqual(c.Penetration, tc.penetraton, 1e-9) {
				t.Errorf("Penetration = %f, expected %f", c.Penetration, tc.penetraton)
			}
		})
	}
}

func TestCircleVsRectCorner(t *testing.T) {
	c := CircleVsRect(V(11, 11), 2, NewRect(0, 0, 10, 10))
	if !c.Hit {
		t.Fatal("expected corner hit")
	}
	want := 1 / math.Sqrt2
	if !ApproxEqual(c.Normal.X, want, 1e-9) || !ApproxEqual(c.Normal.Y, want, 1e-9) {
		t.Errorf("Normal = %v, expected diagonal", c.Normal)
	}
}

func TestCircleVsRotatedRect(t *testing.T) {
	// A 20x2 bar rotated 90° becomes a 2x20 vertical bar.
	bar := RotatedRect{Center: V(0, 0), W: 20, H: 2, Angle: math.Pi / 2}

	c := CircleVsRotatedRect(V(2, 0), 1.5, bar)
	if !c.Hit {
		t.Fatal("expected hit against rotated bar")
	}
	if !ApproxEqual(c.Normal.X, 1, 1e-9) || !ApproxEqual(c.Normal.Y, 0, 1e-9) {
		t.Errorf("Normal = %v, expected (1, 0)", c.Normal)
	}
	if !ApproxEqual(c.Penetration, 0.5, 1e-9) {
		t.Errorf("Penetration = %f, expected 0.5", c.Penetration)
	}

	// Unrotated, the same point sits beside the bar's long side.
	flat := bar
	flat.Angle = 0
	if c := CircleVsRotatedRect(V(0, 3), 1.5, flat); c.Hit {
		t.Errorf("expected miss above flat bar, got %+v", c)
	}
}

func TestCollisionIdempotence(t *testing.T) {
	box := NewRect(3, 4, 7, 2)
	rot := RotatedRect{Center: V(5, 5), W: 8, H: 3, Angle: 0.7}
	center := V(6.2, 6.9)

	a1 := CircleVsRect(center, 1.3, box)
	a2 := CircleVsRect(center, 1.3, box)
	if a1 != a2 {
		t.Errorf("CircleVsRect not idempotent: %+v vs %+v", a1, a2)
	}

	b1 := CircleVsRotatedRect(center, 1.3, rot)
	b2 := CircleVsRotatedRect(center, 1.3, rot)
	if b1 != b2 {
		t.Errorf("CircleVsRotatedRect not idempotent: %+v vs %+v", b1, b2)
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		v, n     Vec2
		expected Vec2
	}{
		{"floor bounce", V(3, -4), V(0, 1), V(3, 4)},
		{"wall bounce", V(5, 2), V(-1, 0), V(-5, 2)},
		{"parallel unchanged", V(5, 0), V(0, 1), V(5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.v
			ReflectInPlace(&v, tc.n)
			if !ApproxEqual(v.X, tc.expected.X, 1e-9) || !ApproxEqual(v.Y, tc.expected.Y, 1e-9) {
				t.Errorf("Reflect(%v, %v) = %v, expected %v", tc.v, tc.n, v, tc.expected)
			}
		})
	}
}

func TestCircleVsCircle(t *testing.T) {
	if c := CircleVsCircle(V(0, 0), 1, V(3, 0), 1); c.Hit {
		t.Error("expected miss")
	}
	c := CircleVsCircle(V(0, 0), 1, V(1.5, 0), 1)
	if !c.Hit || !ApproxEqual(c.Penetration, 0.5, 1e-9) || !ApproxEqual(c.Normal.X, -1, 1e-9) {
		t.Errorf("unexpected contact %+v", c)
	}
}
