package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BardoBard/Bardrix-sub000/geometry"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Trace a single ray through the scene and display the BVH candidates
// along with the closest hit.
func TraceRay(ctx *cli.Context) error {
	setupLogging(ctx)

	origin, err := parseVec3(ctx.String("origin"))
	if err != nil {
		return err
	}
	dir, err := parseVec3(ctx.String("dir"))
	if err != nil {
		return err
	}
	if dir.Len() == 0 {
		return errors.New("ray direction must be non-zero")
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	ray := geometry.NewRay(origin, dir)
	candidates := sc.Candidates(ray, nil)
	hit, closest, found := sc.ClosestHit(ray)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Shape", "BBox", "Hit distance"})
	for idx, shape := range candidates {
		dist := "---"
		if shapeHit, ok := shape.Intersect(ray); ok {
			dist = fmt.Sprintf("%3.3f", shapeHit.T)
		}
		table.Append([]string{fmt.Sprint(idx), shape.Type().String(), shape.BBox().String(), dist})
	}

	footer := "no hit"
	if found {
		footer = fmt.Sprintf("%s at %v (t = %3.3f)", closest.Type(), hit.Point, hit.T)
	}
	table.SetFooter([]string{"", "", "CLOSEST HIT", footer})
	table.Render()

	logger.Noticef("tested %d of %d shapes for ray %v -> %v\n%s", len(candidates), len(sc.Shapes()), ray.Origin, ray.Dir, buf.String())
	return nil
}
