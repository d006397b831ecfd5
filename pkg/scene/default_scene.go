package scene

import (
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// NewDefaultScene creates a small sphere resting on a large ground sphere,
// seen from the origin looking down -Z
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:          core.NewVec3(0, 0, 0),
		FocalLength:     1.0,
		ViewportHeight:  2.0,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100), // ground
	)

	return &Scene{
		Name:   "Default Scene",
		World:  world,
		Camera: applyOverrides(defaultCameraConfig, cameraOverrides),
		Width:  400,
	}
}
