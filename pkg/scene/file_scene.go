package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/loaders"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// defaultFileWidth is used when a scene file has no Film statement
const defaultFileWidth = 400

// LoadFileScene loads a scene file and converts it to a scene
func LoadFileScene(path string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}

	base := filepath.Base(path)
	s, err := FromSceneFile(sceneFile, titleCase(strings.TrimSuffix(base, filepath.Ext(base))))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Camera = applyOverrides(s.Camera, cameraOverrides)
	return s, nil
}

// FromSceneFile converts parsed scene file statements to a scene. name is
// used when the file has no "# Scene:" header.
func FromSceneFile(sceneFile *loaders.SceneFile, name string) (*Scene, error) {
	s := &Scene{
		Name:   name,
		World:  geometry.NewHittableList(),
		Camera: renderer.DefaultCameraConfig(),
		Width:  defaultFileWidth,
	}
	if sceneFile.Name != "" {
		s.Name = sceneFile.Name
	}

	if err := convertCamera(sceneFile.Camera, &s.Camera); err != nil {
		return nil, err
	}
	if err := convertSampler(sceneFile.Sampler, &s.Camera); err != nil {
		return nil, err
	}
	if err := convertFilm(sceneFile.Film, &s.Width); err != nil {
		return nil, err
	}

	for i := range sceneFile.Shapes {
		shape, err := convertShape(&sceneFile.Shapes[i])
		if err != nil {
			return nil, err
		}
		s.World.Add(shape)
	}

	if err := s.Camera.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if s.Width <= 0 {
		return nil, fmt.Errorf("%w: image width must be positive, got %d", ErrInvalidScene, s.Width)
	}

	logger.Debugf("converted scene %q with %d objects", s.Name, s.World.Len())
	return s, nil
}

func statementError(stmt *loaders.Statement, err error) error {
	return fmt.Errorf("%w: line %d: %s %q: %w", ErrInvalidScene, stmt.Line, stmt.Type, stmt.Subtype, err)
}

func unsupported(stmt *loaders.Statement) error {
	return fmt.Errorf("%w: line %d: unsupported %s type %q", ErrInvalidScene, stmt.Line, stmt.Type, stmt.Subtype)
}

func convertCamera(stmt *loaders.Statement, config *renderer.CameraConfig) error {
	if stmt == nil {
		return nil
	}
	if stmt.Subtype != "pinhole" {
		return unsupported(stmt)
	}

	var err error
	if config.Center, err = stmt.Point3Param("center", config.Center); err != nil {
		return statementError(stmt, err)
	}
	if config.FocalLength, err = stmt.FloatParam("focallength", config.FocalLength); err != nil {
		return statementError(stmt, err)
	}
	if config.ViewportHeight, err = stmt.FloatParam("viewportheight", config.ViewportHeight); err != nil {
		return statementError(stmt, err)
	}
	if config.AspectRatio, err = stmt.FloatParam("aspectratio", config.AspectRatio); err != nil {
		return statementError(stmt, err)
	}
	return nil
}

func convertSampler(stmt *loaders.Statement, config *renderer.CameraConfig) error {
	if stmt == nil {
		return nil
	}
	if stmt.Subtype != "random" {
		return unsupported(stmt)
	}

	var err error
	if config.SamplesPerPixel, err = stmt.IntParam("pixelsamples", config.SamplesPerPixel); err != nil {
		return statementError(stmt, err)
	}
	if config.MaxDepth, err = stmt.IntParam("maxdepth", config.MaxDepth); err != nil {
		return statementError(stmt, err)
	}
	return nil
}

func convertFilm(stmt *loaders.Statement, width *int) error {
	if stmt == nil {
		return nil
	}
	if stmt.Subtype != "ppm" {
		return unsupported(stmt)
	}

	var err error
	if *width, err = stmt.IntParam("xresolution", *width); err != nil {
		return statementError(stmt, err)
	}
	return nil
}

func convertShape(stmt *loaders.Statement) (geometry.Hittable, error) {
	switch stmt.Subtype {
	case "sphere":
		center, err := stmt.Point3Param("center", core.Vec3{})
		if err != nil {
			return nil, statementError(stmt, err)
		}
		radius, err := stmt.FloatParam("radius", 1.0)
		if err != nil {
			return nil, statementError(stmt, err)
		}
		if radius <= 0 {
			return nil, fmt.Errorf("%w: line %d: sphere radius must be positive, got %g", ErrInvalidScene, stmt.Line, radius)
		}
		return geometry.NewSphere(center, radius), nil
	default:
		return nil, unsupported(stmt)
	}
}
