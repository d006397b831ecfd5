package cmd

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-diffuse-raytracer/pkg/log"
)

var logger = log.New("raytracer")

// setupLogging applies the global verbosity flags. An explicit --log-level
// wins over -v and -vv.
func setupLogging(ctx *cli.Context) error {
	level := log.Notice
	switch {
	case ctx.GlobalBool("vv"):
		level = log.Debug
	case ctx.GlobalBool("v"):
		level = log.Info
	}

	if name := ctx.GlobalString("log-level"); name != "" {
		parsed, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		level = parsed
	}

	out := ctx.App.ErrWriter
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out, !ctx.GlobalBool("no-color"))
	log.SetLevel(level)
	return nil
}
