package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-diffuse-raytracer/pkg/imaging"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

const (
	FormatPPM = "ppm"
	FormatPNG = "png"
)

var errUnknownFormat = errors.New("unknown output format")

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	overrides := renderer.CameraConfig{
		SamplesPerPixel: ctx.Int("spp"),
	}

	sc, err := CreateScene(ctx.String("scene"), overrides)
	if err != nil {
		return err
	}
	// Depth 0 is a valid request, so the flag overrides whenever it is given
	if ctx.IsSet("max-depth") {
		sc.Camera.MaxDepth = ctx.Int("max-depth")
	}

	width := sc.Width
	if w := ctx.Int("width"); w != 0 {
		width = w
	}

	out := ctx.String("out")
	format, err := resolveFormat(ctx.String("format"), out)
	if err != nil {
		return err
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = ctx.Int("workers")
	config.TileSize = ctx.Int("tile-size")
	config.Seed = ctx.Int64("seed")
	config.Logger = logger

	rt, err := renderer.NewRaytracer(sc.World, sc.Camera, config)
	if err != nil {
		return err
	}

	logger.Noticef("rendering scene %q", sc.Name)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := rt.Render(sigCtx, width)
	if err != nil {
		return err
	}

	if err := writeImage(img, out, format, ctx.App.Writer); err != nil {
		return err
	}
	if out != "-" {
		logger.Noticef("frame saved as %s", out)
	}

	displayFrameStats(sc.Name, stats)
	return nil
}

// CreateScene resolves a built-in scene, a scene file name or a scene file
// path and applies the non-zero camera overrides
func CreateScene(nameOrPath string, overrides renderer.CameraConfig) (*scene.Scene, error) {
	if nameOrPath == "" {
		return nil, errors.New("missing scene name")
	}
	return scene.Create(nameOrPath, overrides)
}

// resolveFormat picks the output format from the flag, or from the file
// extension when the flag is empty
func resolveFormat(format, out string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(out), ".png") {
			return FormatPNG, nil
		}
		return FormatPPM, nil
	}

	format = strings.ToLower(format)
	switch format {
	case FormatPPM, FormatPNG:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// writeImage encodes img to out, or to stdout when out is "-"
func writeImage(img *imaging.Image, out, format string, stdout io.Writer) (err error) {
	var w io.Writer = stdout
	if out != "-" {
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("could not create output directory: %w", err)
			}
		}
		var f *os.File
		if f, err = os.Create(out); err != nil {
			return fmt.Errorf("could not create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = cerr
			}
		}()
		w = f
	}

	if format == FormatPNG {
		return img.WritePNG(w)
	}
	return img.WritePPM(w)
}

func displayFrameStats(name string, stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Resolution", "Samples/pixel", "Max depth", "Tiles", "Workers", "Avg luminance", "Render time"})
	table.Append([]string{
		name,
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%.0f", stats.AverageSamples()),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%.4f", stats.AverageLuminance),
		stats.RenderTime.String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "RAYS", fmt.Sprintf("%d", stats.TotalSamples)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
