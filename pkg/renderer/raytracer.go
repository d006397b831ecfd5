package renderer

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/imaging"
	"github.com/df07/go-diffuse-raytracer/pkg/log"
)

const (
	// Albedo is the fraction of light kept at every diffuse bounce
	Albedo = 0.5

	// HitEpsilon is the minimum ray parameter accepted for an intersection.
	// It keeps bounced rays from re-hitting the surface they start on.
	HitEpsilon = 0.001
)

var (
	hitRange = core.NewInterval(HitEpsilon, math.Inf(1))

	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
)

// Config contains rendering configuration that does not affect the image
// content, apart from the seed
type Config struct {
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	TileSize   int   // Tile edge length in pixels
	Seed       int64 // Base seed, tile i uses Seed+i
	Logger     log.Logger
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers: 0,
		TileSize:   32,
		Seed:       42,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, c.TileSize)
	}
	return nil
}

// Raytracer renders a world as seen through a camera
type Raytracer struct {
	world  geometry.Hittable
	camera CameraConfig
	config Config
	logger log.Logger
}

// NewRaytracer creates a new raytracer. The world must not be modified
// while a render is in progress.
func NewRaytracer(world geometry.Hittable, camera CameraConfig, config Config) (*Raytracer, error) {
	if world == nil {
		return nil, ErrNoWorld
	}
	if err := camera.Validate(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New("renderer")
	}

	return &Raytracer{
		world:  world,
		camera: camera,
		config: config,
		logger: logger,
	}, nil
}

// CameraConfig returns the camera configuration used for rendering
func (rt *Raytracer) CameraConfig() CameraConfig {
	return rt.camera
}

// Render renders an image imageWidth pixels wide. The height is derived from
// the camera aspect ratio. The result depends only on the width, the scene
// and the seed, not on the number of workers.
func (rt *Raytracer) Render(ctx context.Context, imageWidth int) (*imaging.Image, RenderStats, error) {
	camera, err := NewCamera(rt.camera, imageWidth)
	if err != nil {
		return nil, RenderStats{}, err
	}

	img := imaging.NewImage(camera.ImageWidth(), camera.ImageHeight())
	tiles := NewTileGrid(img.Width, img.Height, rt.config.TileSize)

	numWorkers := rt.config.NumWorkers
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = min(numWorkers, len(tiles))

	rt.logger.Infof("rendering %dx%d, %d spp, max depth %d, %d tiles on %d workers",
		img.Width, img.Height, rt.camera.SamplesPerPixel, rt.camera.MaxDepth, len(tiles), numWorkers)

	pool := NewWorkerPool(NewTileRenderer(rt.world, camera), numWorkers, rt.config.Seed, rt.logger)

	start := time.Now()
	stats, err := pool.Run(ctx, tiles, img)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render interrupted: %w", err)
	}

	stats.Width = img.Width
	stats.Height = img.Height
	stats.SamplesPerPixel = rt.camera.SamplesPerPixel
	stats.MaxDepth = rt.camera.MaxDepth
	stats.Tiles = len(tiles)
	stats.Workers = numWorkers
	stats.RenderTime = time.Since(start)
	stats.AverageLuminance = CalculateAverageLuminance(img)

	rt.logger.Infof("rendered frame in %s", stats.RenderTime)

	return img, stats, nil
}

// Background returns the sky gradient seen along a ray that hits nothing:
// white looking straight down, blue looking straight up.
func Background(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)

	return skyBottom.Lerp(skyTop, a)
}

// RayColor returns the color carried back along a ray. Each diffuse bounce
// scatters towards normal + random unit vector and keeps Albedo of the
// light; a path still bouncing after depth steps contributes black.
func RayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	throughput := 1.0

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, hitRange)
		if !isHit {
			return Background(ray).Multiply(throughput)
		}

		direction := hit.Normal.Add(core.RandomUnitVector(sampler))
		ray = core.NewRay(hit.Point, direction)
		throughput *= Albedo
	}

	return core.Vec3{X: 0, Y: 0, Z: 0}
}
