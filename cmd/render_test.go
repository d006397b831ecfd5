package cmd

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-diffuse-raytracer/pkg/imaging"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"sphere grid scene", "sphere-grid", false},
		{"scene file by path", filepath.Join("..", "scenes", "two-spheres.pbrt"), false},
		{"unknown scene", "nonexistent", true},
		{"missing scene file", filepath.Join("..", "scenes", "nonexistent.pbrt"), true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := CreateScene(tt.sceneName, renderer.CameraConfig{})
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, sc)
				return
			}

			require.NoError(t, err)
			assert.Greater(t, sc.Width, 0)
			assert.Greater(t, sc.ObjectCount(), 0)
			assert.NoError(t, sc.Camera.Validate())
		})
	}
}

func TestCreateScene_Overrides(t *testing.T) {
	sc, err := CreateScene("default", renderer.CameraConfig{SamplesPerPixel: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, sc.Camera.SamplesPerPixel)
	assert.Equal(t, 50, sc.Camera.MaxDepth, "zero override keeps the scene value")

	_, err = CreateScene("nonexistent", renderer.CameraConfig{})
	assert.True(t, errors.Is(err, scene.ErrUnknownScene))
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		format   string
		out      string
		expected string
		wantErr  bool
	}{
		{"", "render.ppm", FormatPPM, false},
		{"", "render.PNG", FormatPNG, false},
		{"", "-", FormatPPM, false},
		{"png", "-", FormatPNG, false},
		{"PPM", "render.png", FormatPPM, false},
		{"jpeg", "render.jpg", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.out, func(t *testing.T) {
			format, err := resolveFormat(tt.format, tt.out)
			if tt.wantErr {
				assert.ErrorIs(t, err, errUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestWriteImage_Stdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeImage(imaging.NewImage(2, 1), "-", FormatPPM, &buf))
	assert.Equal(t, "P3\n2 1\n255\n0 0 0\n0 0 0\n", buf.String())
}

func TestWriteImage_File(t *testing.T) {
	img := imaging.NewImage(3, 2)
	img.Set(1, 1, imaging.NewColor(0.5, 0.25, 1))

	out := filepath.Join(t.TempDir(), "nested", "frame.png")
	require.NoError(t, writeImage(img, out, FormatPNG, nil))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Bounds().Dx())
	assert.Equal(t, 2, decoded.Bounds().Dy())
}
