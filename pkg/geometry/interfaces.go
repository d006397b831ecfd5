package geometry

import "github.com/df07/go-diffuse-raytracer/pkg/core"

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always opposing the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the outer side of the surface
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must point away from the surface interior.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Hittable is implemented by anything a ray can intersect.
// A miss is reported as (nil, false) and is not an error.
type Hittable interface {
	Hit(ray core.Ray, rayT core.Interval) (*HitRecord, bool)
}
