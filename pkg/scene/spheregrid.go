package scene

import (
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

const (
	gridColumns     = 7
	gridRows        = 4
	gridSpacing     = 0.55
	gridRadius      = 0.2
	gridNearZ       = -1.2
	groundRadius    = 100.0
	groundSurfaceY  = -0.5
	gridCameraLiftY = 0.25
)

var groundCenter = core.NewVec3(0, groundSurfaceY-groundRadius, -1)

// NewSphereGridScene creates a grid of small spheres resting on the ground
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:          core.NewVec3(0, gridCameraLiftY, 0.5),
		FocalLength:     1.0,
		ViewportHeight:  2.0,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	world := geometry.NewHittableList(geometry.NewSphere(groundCenter, groundRadius))

	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridColumns; col++ {
			x := (float64(col) - float64(gridColumns-1)/2) * gridSpacing
			z := gridNearZ - float64(row)*gridSpacing
			world.Add(geometry.NewSphere(restingOnGround(x, z, gridRadius), gridRadius))
		}
	}

	return &Scene{
		Name:   "Sphere Grid",
		World:  world,
		Camera: applyOverrides(defaultCameraConfig, cameraOverrides),
		Width:  400,
	}
}

// restingOnGround returns the center of a sphere of the given radius that
// touches the ground sphere above (x, z)
func restingOnGround(x, z, radius float64) core.Vec3 {
	dx := x - groundCenter.X
	dz := z - groundCenter.Z
	reach := groundRadius + radius
	y := groundCenter.Y + math.Sqrt(reach*reach-dx*dx-dz*dz)
	return core.NewVec3(x, y, z)
}
