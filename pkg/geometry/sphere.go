package geometry

import (
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Hit tests if a ray intersects with the sphere.
// Only roots strictly inside rayT are accepted; the nearer root wins.
// Spheres with a non-positive radius are never hit, and neither is a ray
// that only touches the surface tangentially, which has no side to face.
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*HitRecord, bool) {
	if s.Radius <= 0 {
		return nil, false
	}

	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	// Quadratic coefficients with b = -2h
	a := ray.Direction.LengthSquared()
	if a == 0 {
		return nil, false
	}
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	point := ray.At(root)

	// Outward normal points from center to hit point
	outwardNormal := point.Subtract(s.Center).Divide(s.Radius)
	if ray.Direction.Dot(outwardNormal) == 0 {
		return nil, false
	}

	hitRecord := &HitRecord{
		T:     root,
		Point: point,
	}
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
