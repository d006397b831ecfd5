package scene

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/loaders"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	assert.Equal(t, "Default Scene", s.Name)
	assert.Equal(t, 400, s.Width)
	assert.Equal(t, 2, s.ObjectCount())
	assert.Equal(t, renderer.DefaultCameraConfig(), s.Camera)
	assert.Equal(t, 225, s.Camera.ImageHeight(s.Width))

	objects := s.World.Objects()
	small, ok := objects[0].(*geometry.Sphere)
	require.True(t, ok)
	assert.Equal(t, core.NewVec3(0, 0, -1), small.Center)
	assert.Equal(t, 0.5, small.Radius)

	ground, ok := objects[1].(*geometry.Sphere)
	require.True(t, ok)
	assert.Equal(t, core.NewVec3(0, -100.5, -1), ground.Center)
	assert.Equal(t, 100.0, ground.Radius)
}

func TestNewDefaultScene_Overrides(t *testing.T) {
	s := NewDefaultScene(renderer.CameraConfig{SamplesPerPixel: 8, MaxDepth: 4})

	assert.Equal(t, 8, s.Camera.SamplesPerPixel)
	assert.Equal(t, 4, s.Camera.MaxDepth)
	assert.Equal(t, 1.0, s.Camera.FocalLength)
}

func TestNewSphereGridScene_SpheresRestOnGround(t *testing.T) {
	s := NewSphereGridScene()
	require.Equal(t, 1+gridRows*gridColumns, s.ObjectCount())
	require.NoError(t, s.Camera.Validate())

	objects := s.World.Objects()
	ground := objects[0].(*geometry.Sphere)
	for _, object := range objects[1:] {
		sphere := object.(*geometry.Sphere)
		distance := sphere.Center.Subtract(ground.Center).Length()
		assert.InDelta(t, ground.Radius+sphere.Radius, distance, 1e-9)
		assert.Less(t, sphere.Center.Z, s.Camera.Center.Z, "spheres are in front of the camera")
	}
}

func TestBuiltinScenesRender(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Create(info.ID, renderer.CameraConfig{SamplesPerPixel: 1, MaxDepth: 3})
			require.NoError(t, err)

			rt, err := renderer.NewRaytracer(s.World, s.Camera, renderer.DefaultConfig())
			require.NoError(t, err)

			img, stats, err := rt.Render(context.Background(), 32)
			require.NoError(t, err)
			assert.Equal(t, 32*18, len(img.Pixels))
			assert.Greater(t, stats.AverageLuminance, 0.0)
		})
	}
}

func TestFromSceneFile(t *testing.T) {
	sceneFile, err := loaders.ParseSceneFile(strings.NewReader(`
Camera "pinhole" "point3 center" [0 1 2] "float focallength" 1.5 "float aspectratio" 2
Sampler "random" "integer pixelsamples" 16
Film "ppm" "integer xresolution" 200
WorldBegin
Shape "sphere" "point3 center" [0 0 -1] "float radius" 0.5
Shape "sphere"
WorldEnd
`))
	require.NoError(t, err)

	s, err := FromSceneFile(sceneFile, "Fallback")
	require.NoError(t, err)

	assert.Equal(t, "Fallback", s.Name)
	assert.Equal(t, 200, s.Width)
	assert.Equal(t, core.NewVec3(0, 1, 2), s.Camera.Center)
	assert.Equal(t, 1.5, s.Camera.FocalLength)
	assert.Equal(t, 2.0, s.Camera.AspectRatio)
	assert.Equal(t, 2.0, s.Camera.ViewportHeight, "unset values keep defaults")
	assert.Equal(t, 16, s.Camera.SamplesPerPixel)
	assert.Equal(t, 50, s.Camera.MaxDepth)

	require.Equal(t, 2, s.ObjectCount())
	unit := s.World.Objects()[1].(*geometry.Sphere)
	assert.Equal(t, core.Vec3{}, unit.Center)
	assert.Equal(t, 1.0, unit.Radius)
}

func TestFromSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown shape", "WorldBegin\nShape \"cube\"\nWorldEnd"},
		{"negative radius", "WorldBegin\nShape \"sphere\" \"float radius\" -1\nWorldEnd"},
		{"zero radius", "WorldBegin\nShape \"sphere\" \"float radius\" 0\nWorldEnd"},
		{"malformed center", "WorldBegin\nShape \"sphere\" \"point3 center\" [1 2]\nWorldEnd"},
		{"unknown camera", "Camera \"perspective\"\nWorldBegin\nWorldEnd"},
		{"zero focal length", "Camera \"pinhole\" \"float focallength\" 0\nWorldBegin\nWorldEnd"},
		{"unknown sampler", "Sampler \"halton\"\nWorldBegin\nWorldEnd"},
		{"zero samples", "Sampler \"random\" \"integer pixelsamples\" 0\nWorldBegin\nWorldEnd"},
		{"unknown film", "Film \"exr\"\nWorldBegin\nWorldEnd"},
		{"zero width", "Film \"ppm\" \"integer xresolution\" 0\nWorldBegin\nWorldEnd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sceneFile, err := loaders.ParseSceneFile(strings.NewReader(tt.content))
			require.NoError(t, err)

			_, err = FromSceneFile(sceneFile, "test")
			assert.True(t, errors.Is(err, ErrInvalidScene), "got %v", err)
		})
	}
}

func TestRestingOnGround(t *testing.T) {
	center := restingOnGround(0, -1, 0.5)
	assert.InDelta(t, 0.0, center.Y, 1e-9)
	assert.False(t, math.IsNaN(restingOnGround(1.65, -2.85, gridRadius).Y))
}
