package scene

import (
	"errors"

	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/log"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

var (
	ErrUnknownScene = errors.New("unknown scene")
	ErrInvalidScene = errors.New("invalid scene")
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	World  *geometry.HittableList // Objects in the scene
	Camera renderer.CameraConfig
	Width  int // Image width in pixels
}

// ObjectCount returns the number of top-level objects in the world
func (s *Scene) ObjectCount() int {
	return s.World.Len()
}

// applyOverrides merges the first override, if any, into the camera config
func applyOverrides(base renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) == 0 {
		return base
	}
	return renderer.MergeCameraConfig(base, overrides[0])
}
