package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-diffuse-raytracer/cmd"
	"github.com/df07/go-diffuse-raytracer/pkg/log"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "go-diffuse-raytracer"
	app.Usage = "render diffuse sphere scenes to PPM or PNG images"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, notice, warning or error (overrides -v and -vv)",
		},
		cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored log output",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene, a scene file from the scenes directory (by name) or a
scene file given by path. Flags left at zero keep the scene's own settings.

The frame is written as plain-text PPM unless --format png is given or the
output file ends in .png. Use --out - to write to stdout.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene id, scene file name or path to a .pbrt file",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width; height follows the camera aspect ratio (0 = scene width)",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel (0 = scene value)",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Usage: "maximum ray bounces, 0 renders black (default: scene value)",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 = number of CPUs)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 32,
					Usage: "tile edge length in pixels",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "random seed; equal seeds produce identical frames",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.ppm",
					Usage: "image filename for the rendered frame, - for stdout",
				},
				cli.StringFlag{
					Name:  "format, f",
					Usage: "output format: ppm or png (default from the file extension)",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list available scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: scene.DefaultScenesDir,
					Usage: "directory to search for scene files",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve the render API over HTTP",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "host",
					Usage: "interface to listen on (empty = all)",
				},
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to serve on",
				},
				cli.StringFlag{
					Name:  "dir",
					Value: scene.DefaultScenesDir,
					Usage: "directory to search for scene files",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers per request (0 = number of CPUs)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 32,
					Usage: "tile edge length in pixels",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "seed for requests that do not set one",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New("raytracer").Error(err)
		os.Exit(1)
	}
}
