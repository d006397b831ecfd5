package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

// List built-in scenes and the scene files found in the scenes directory.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	scenes, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Description"})
	for _, info := range scenes {
		id := info.ID
		if info.Type == scene.TypeFile {
			id = info.FilePath
		}
		table.Append([]string{id, info.Name, info.Group, info.Description})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%d", len(scenes))})
	table.Render()

	return nil
}
