package tracer

import (
	"fmt"
	"image/color"
)

// ShadingMode selects how a primary ray hit is converted to a pixel color.
type ShadingMode uint8

const (
	// Grayscale intensity based on the angle between the ray and the
	// surface normal.
	ShadeFacing ShadingMode = iota

	// Map the surface normal to RGB.
	ShadeNormals

	// Grayscale intensity falling off with hit distance.
	ShadeDepth
)

func (m ShadingMode) String() string {
	switch m {
	case ShadeFacing:
		return "facing"
	case ShadeNormals:
		return "normals"
	case ShadeDepth:
		return "depth"
	}
	return "unknown"
}

// Parse a shading mode name.
func ParseShadingMode(name string) (ShadingMode, error) {
	for _, mode := range []ShadingMode{ShadeFacing, ShadeNormals, ShadeDepth} {
		if mode.String() == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("tracer: unknown shading mode %q", name)
}

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of worker goroutines. If zero, one worker per CPU is used.
	Workers int

	Shading ShadingMode

	// Distance at which depth shading fades to black. If zero, it is
	// derived from the scene bounds.
	DepthRange float32

	// Color for pixels whose primary ray misses the scene.
	Background color.RGBA
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		FrameW:     512,
		FrameH:     512,
		Shading:    ShadeFacing,
		Background: color.RGBA{20, 20, 20, 255},
	}
}
