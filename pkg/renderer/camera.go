package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// CameraConfig describes the viewpoint and sampling parameters of a render
type CameraConfig struct {
	Center          core.Vec3 // Camera position
	FocalLength     float64   // Distance from the camera to the viewport plane
	ViewportHeight  float64   // Viewport height in world units
	AspectRatio     float64   // Image width / image height
	SamplesPerPixel int       // Number of jittered rays per pixel
	MaxDepth        int       // Maximum number of ray bounces
}

// DefaultCameraConfig returns a camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:          core.NewVec3(0, 0, 0),
		FocalLength:     1.0,
		ViewportHeight:  2.0,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.FocalLength != 0 {
		result.FocalLength = override.FocalLength
	}
	if override.ViewportHeight != 0 {
		result.ViewportHeight = override.ViewportHeight
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}

// Validate checks the configuration for values that cannot produce an image
func (c CameraConfig) Validate() error {
	if !isPositiveFinite(c.FocalLength) {
		return fmt.Errorf("%w: focal length must be positive, got %g", ErrInvalidCamera, c.FocalLength)
	}
	if !isPositiveFinite(c.ViewportHeight) {
		return fmt.Errorf("%w: viewport height must be positive, got %g", ErrInvalidCamera, c.ViewportHeight)
	}
	if !isPositiveFinite(c.AspectRatio) {
		return fmt.Errorf("%w: aspect ratio must be positive, got %g", ErrInvalidCamera, c.AspectRatio)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, c.MaxDepth)
	}
	return nil
}

// ImageHeight returns the image height for width, floored
func (c CameraConfig) ImageHeight(width int) int {
	return int(float64(width) / c.AspectRatio)
}

func isPositiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// Camera generates rays for the pixels of an image of fixed size
type Camera struct {
	config        CameraConfig
	imageWidth    int
	imageHeight   int
	viewportWidth float64
	pixel00       core.Vec3 // Center of pixel (0,0), top-left
	pixelDeltaU   core.Vec3 // Offset to the pixel to the right
	pixelDeltaV   core.Vec3 // Offset to the pixel below
}

// NewCamera computes the viewport geometry for an image imageWidth pixels wide
func NewCamera(config CameraConfig, imageWidth int) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if imageWidth <= 0 {
		return nil, fmt.Errorf("%w: width must be positive, got %d", ErrInvalidWidth, imageWidth)
	}
	imageHeight := config.ImageHeight(imageWidth)
	if imageHeight < 1 {
		return nil, fmt.Errorf("%w: width %d with aspect ratio %g yields zero height",
			ErrInvalidWidth, imageWidth, config.AspectRatio)
	}

	viewportWidth := config.ViewportHeight * config.AspectRatio

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := core.NewVec3(viewportWidth, 0, 0)
	viewportV := core.NewVec3(0, -config.ViewportHeight, 0)

	pixelDeltaU := viewportU.Divide(float64(imageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := config.Center.
		Subtract(core.NewVec3(0, 0, config.FocalLength)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return &Camera{
		config:        config,
		imageWidth:    imageWidth,
		imageHeight:   imageHeight,
		viewportWidth: viewportWidth,
		pixel00:       pixel00,
		pixelDeltaU:   pixelDeltaU,
		pixelDeltaV:   pixelDeltaV,
	}, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int { return c.imageWidth }

// ImageHeight returns the image height in pixels
func (c *Camera) ImageHeight() int { return c.imageHeight }

// ViewportWidth returns the viewport width in world units
func (c *Camera) ViewportWidth() float64 { return c.viewportWidth }

// GetRay returns a ray through a uniformly jittered point of pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	return c.rayThrough(float64(i)+offset.X-0.5, float64(j)+offset.Y-0.5)
}

// CenterRay returns the ray through the center of pixel (i, j)
func (c *Camera) CenterRay(i, j int) core.Ray {
	return c.rayThrough(float64(i), float64(j))
}

// rayThrough maps continuous pixel coordinates to a ray from the camera center
func (c *Camera) rayThrough(x, y float64) core.Ray {
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(x)).
		Add(c.pixelDeltaV.Multiply(y))

	return core.NewRay(c.config.Center, pixelSample.Subtract(c.config.Center))
}
