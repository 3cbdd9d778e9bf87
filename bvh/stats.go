package bvh

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BardoBard/Bardrix-sub000/geometry"
	"github.com/olekukonko/tablewriter"
)

// Construction statistics for a BVH tree.
type Stats struct {
	// Number of indexed shapes.
	Shapes int

	// Internal node and leaf counts.
	Nodes int
	Leafs int

	// Length of the longest root-to-leaf path.
	MaxDepth int

	// The axis used for sorting shapes.
	Axis geometry.Axis

	// Mean surface area heuristic score over all internal nodes whose
	// bbox has a non-zero area. A split scores 1 when both children span
	// the full parent volume.
	SplitScore float32

	BuildTime time.Duration
}

// Stats returns the statistics collected by the last construction.
func (t *Tree) Stats() Stats {
	return t.stats
}

// Build a tabular representation of the tree statistics.
func (t *Tree) StatsTable() string {
	bounds := "---"
	if !t.Empty() {
		bounds = t.Bounds().String()
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"BVH", "Value"})
	table.Append([]string{"Shapes", fmt.Sprint(t.stats.Shapes)})
	table.Append([]string{"Internal nodes", fmt.Sprint(t.stats.Nodes)})
	table.Append([]string{"Leafs", fmt.Sprint(t.stats.Leafs)})
	table.Append([]string{"Max depth", fmt.Sprint(t.stats.MaxDepth)})
	table.Append([]string{"Split axis", t.stats.Axis.String()})
	table.Append([]string{"SAH split score", fmt.Sprintf("%.3f", t.stats.SplitScore)})
	table.Append([]string{"Bounds", bounds})
	table.SetFooter([]string{"Build time", t.stats.BuildTime.String()})

	table.Render()
	return buf.String()
}
