package core

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Lerp start", a.Lerp(b, 0), a},
		{"Lerp end", a.Lerp(b, 1), b},
		{"Lerp middle", a.Lerp(b, 0.5), NewVec3(2.5, -1.5, 4.5)},
	}

	approx := cmpopts.EquateApprox(0, 1e-12)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, tt.result, approx); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestVec3_DotAndCross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	z := NewVec3(0, 0, 1)

	if got := x.Cross(y); got != z {
		t.Errorf("x cross y = %v, want %v", got, z)
	}
	if got := y.Cross(z); got != x {
		t.Errorf("y cross z = %v, want %v", got, x)
	}
	if got := z.Cross(x); got != y {
		t.Errorf("z cross x = %v, want %v", got, y)
	}

	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %f, want 32", got)
	}

	// Cross product is perpendicular to both operands
	c := a.Cross(b)
	if math.Abs(c.Dot(a)) > 1e-12 || math.Abs(c.Dot(b)) > 1e-12 {
		t.Errorf("cross product %v is not perpendicular to operands", c)
	}
	if c != NewVec3(-3, 6, -3) {
		t.Errorf("Cross = %v, want (-3, 6, -3)", c)
	}
}

func TestVec3_Length(t *testing.T) {
	v := NewVec3(2, 3, 6)
	if v.LengthSquared() != 49 {
		t.Errorf("LengthSquared = %f, want 49", v.LengthSquared())
	}
	if v.Length() != 7 {
		t.Errorf("Length = %f, want 7", v.Length())
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("normalized length = %f, want 1", n.Length())
	}
	if math.Abs(n.X-0.6) > 1e-12 || math.Abs(n.Z-0.8) > 1e-12 {
		t.Errorf("Normalize = %v, want (0.6, 0, 0.8)", n)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("normalizing the zero vector should return zero, got %v", zero)
	}
}

func TestVec3_Luminance(t *testing.T) {
	if l := NewVec3(1, 1, 1).Luminance(); math.Abs(l-1) > 1e-12 {
		t.Errorf("white luminance = %f, want 1", l)
	}
	if l := NewVec3(0, 0, 0).Luminance(); l != 0 {
		t.Errorf("black luminance = %f, want 0", l)
	}
}

func TestRay_At(t *testing.T) {
	tests := []struct {
		name     string
		ray      Ray
		param    float64
		expected Vec3
	}{
		{"t=0 returns origin", NewRay(NewVec3(1, 2, 3), NewVec3(1, 0, 0)), 0, NewVec3(1, 2, 3)},
		{"unit direction", NewRay(NewVec3(1, 2, 3), NewVec3(1, 0, 0)), 1, NewVec3(2, 2, 3)},
		{"scaled direction", NewRay(NewVec3(0, 0, 0), NewVec3(2, 3, 4)), 2, NewVec3(4, 6, 8)},
		{"negative direction", NewRay(NewVec3(5, 5, 5), NewVec3(-1, -1, -1)), 2, NewVec3(3, 3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ray.At(tt.param); got != tt.expected {
				t.Errorf("Ray.At(%f) = %v, want %v", tt.param, got, tt.expected)
			}
		})
	}
}
