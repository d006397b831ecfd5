package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var defaultRange = core.NewInterval(0.001, math.Inf(1))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, defaultRange)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
	if hit != nil {
		t.Errorf("Expected nil hit record on miss, got %+v", hit)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name     string
		ray      core.Ray
		expected HitRecord
	}{
		{
			name: "front face hit",
			ray:  core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)),
			expected: HitRecord{
				Point:     core.NewVec3(0, 0, 1),
				Normal:    core.NewVec3(0, 0, 1),
				T:         1.0,
				FrontFace: true,
			},
		},
		{
			name: "back face hit",
			ray:  core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
			expected: HitRecord{
				Point:     core.NewVec3(0, 0, 1),
				Normal:    core.NewVec3(0, 0, -1),
				T:         1.0,
				FrontFace: false,
			},
		},
		{
			name: "non-unit direction",
			ray:  core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -2)),
			expected: HitRecord{
				Point:     core.NewVec3(0, 0, 1),
				Normal:    core.NewVec3(0, 0, 1),
				T:         1.0,
				FrontFace: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(tt.ray, defaultRange)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if diff := cmp.Diff(tt.expected, *hit, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("hit record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSphere_Hit_TangentRayMisses(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	// Discriminant is exactly zero: the ray touches (1,0,0) perpendicular to the normal
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Hit(ray, defaultRange); isHit {
		t.Errorf("Expected tangent ray to miss, got hit at %v with normal %v", hit.Point, hit.Normal)
	}
}

func TestSphere_Hit_NearlyTangentHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0.999, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, defaultRange)
	if !isHit {
		t.Fatal("Expected nearly tangent hit, but got miss")
	}
	if d := ray.Direction.Dot(hit.Normal); d >= 0 {
		t.Errorf("normal %v does not oppose ray direction (dot=%g)", hit.Normal, d)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Both roots (t=1 and t=3) beyond tMax
	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 0.5))
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Both roots before tMin
	hit, isHit = sphere.Hit(ray, core.NewInterval(3.5, 1000))
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit = sphere.Hit(ray, core.NewInterval(1.5, 1000))
	if !isHit {
		t.Fatal("Expected far root hit")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected far root t=3, got t=%f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Far root is an exit point and should be a back face hit")
	}

	// Roots on the interval boundary are rejected (open interval)
	if _, isHit := sphere.Hit(ray, core.NewInterval(1, 3)); isHit {
		t.Error("Expected miss when roots lie exactly on interval bounds")
	}
}

func TestSphere_Hit_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		sphere *Sphere
		ray    core.Ray
	}{
		{"zero-length direction", NewSphere(core.NewVec3(0, 0, -1), 0.5), core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0))},
		{"zero radius", NewSphere(core.NewVec3(0, 0, -1), 0), core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))},
		{"negative radius", NewSphere(core.NewVec3(0, 0, -1), -0.5), core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, isHit := tt.sphere.Hit(tt.ray, defaultRange); isHit {
				t.Errorf("Expected no hit, got %+v", hit)
			}
		})
	}
}

func TestSphere_Hit_Deterministic(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -2), 0.75)
	ray := core.NewRay(core.NewVec3(0.1, 0.1, 0), core.NewVec3(0.05, -0.1, -1))

	first, firstHit := sphere.Hit(ray, defaultRange)
	for i := 0; i < 10; i++ {
		hit, isHit := sphere.Hit(ray, defaultRange)
		if isHit != firstHit {
			t.Fatalf("call %d: hit=%t, first call hit=%t", i, isHit, firstHit)
		}
		if isHit && *hit != *first {
			t.Fatalf("call %d: %+v differs from first result %+v", i, *hit, *first)
		}
	}
}

func TestSphere_Hit_NormalOpposesRay(t *testing.T) {
	sampler := core.NewSeededSampler(99)
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	hits := 0
	for i := 0; i < 5000; i++ {
		// Origins both inside and outside the sphere
		origin := sampler.Get3D().Multiply(4).Subtract(core.NewVec3(2, 2, 2))
		direction := core.RandomUnitVector(sampler).Multiply(0.5 + sampler.Get1D())
		ray := core.NewRay(origin, direction)

		hit, isHit := sphere.Hit(ray, defaultRange)
		if !isHit {
			continue
		}
		hits++
		if d := ray.Direction.Dot(hit.Normal); d >= 0 {
			t.Fatalf("normal %v does not oppose ray direction %v (dot=%g)", hit.Normal, ray.Direction, d)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("normal %v is not unit length", hit.Normal)
		}
		if !defaultRange.Surrounds(hit.T) {
			t.Fatalf("t=%f outside query interval", hit.T)
		}
	}

	if hits == 0 {
		t.Fatal("expected at least some random rays to hit the sphere")
	}
}
