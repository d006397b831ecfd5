package renderer

import (
	"image"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/imaging"
)

// TileRenderer renders rectangular regions of an image
type TileRenderer struct {
	world  geometry.Hittable
	camera *Camera
}

// NewTileRenderer creates a new tile renderer for the given world and camera
func NewTileRenderer(world geometry.Hittable, camera *Camera) *TileRenderer {
	return &TileRenderer{
		world:  world,
		camera: camera,
	}
}

// RenderTileBounds renders the pixels within bounds into img. Pixels are
// visited row by row so a given sampler always yields the same result.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *imaging.Image, sampler core.Sampler) RenderStats {
	stats := RenderStats{}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := tr.SamplePixel(i, j, sampler)
			img.Set(i, j, imaging.ColorFromVec3(ps.GetColor()).Gamma())

			stats.TotalPixels++
			stats.TotalSamples += ps.SampleCount
		}
	}

	return stats
}

// SamplePixel traces the configured number of jittered rays through pixel
// (i, j) and returns their accumulated linear colors
func (tr *TileRenderer) SamplePixel(i, j int, sampler core.Sampler) PixelStats {
	config := tr.camera.Config()

	var ps PixelStats
	for s := 0; s < config.SamplesPerPixel; s++ {
		ray := tr.camera.GetRay(i, j, sampler)
		ps.AddSample(RayColor(ray, tr.world, config.MaxDepth, sampler))
	}
	return ps
}
