package tracer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

type WorkerStat struct {
	// The worker id.
	Id string

	// The first row of the assigned block, the block height and the
	// percentage of total frame area it represents.
	BlockY       uint32
	BlockH       uint32
	FramePercent float32

	// Number of traced primary rays and rays that hit a shape.
	Rays uint64
	Hits uint64

	// Render time for assigned block
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}

// Get the number of primary rays traced for the frame.
func (fs FrameStats) Rays() uint64 {
	var total uint64
	for _, stat := range fs.Workers {
		total += stat.Rays
	}
	return total
}

// Get the number of primary rays that hit a shape.
func (fs FrameStats) Hits() uint64 {
	var total uint64
	for _, stat := range fs.Workers {
		total += stat.Hits
	}
	return total
}

// Build a tabular representation of the frame statistics.
func (fs FrameStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Block", "% of frame", "Rays", "Hits", "Render time"})
	for _, stat := range fs.Workers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d-%d", stat.BlockY, stat.BlockY+stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.Rays),
			fmt.Sprintf("%d", stat.Hits),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%d", fs.Rays()), fmt.Sprintf("%d", fs.Hits()), fs.RenderTime.String()})

	table.Render()
	return buf.String()
}
