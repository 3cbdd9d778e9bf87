// Package tracer renders scenes on the CPU by tracing one primary ray per
// pixel against the scene BVH. The frame is split into row blocks which are
// traced concurrently by a pool of worker goroutines.
package tracer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"
	"time"

	"github.com/BardoBard/Bardrix-sub000/geometry"
	"github.com/BardoBard/Bardrix-sub000/log"
	"github.com/BardoBard/Bardrix-sub000/scene"
	"golang.org/x/sync/errgroup"
)

// A Renderer traces frames of a scene. Block assignments for each frame are
// computed from the worker statistics of the previous frame.
type Renderer struct {
	logger    log.Logger
	scene     *scene.Scene
	scheduler BlockScheduler
	opts      Options

	frame *image.RGBA
	stats FrameStats
}

// Render a single frame of a scene.
func Render(ctx context.Context, sc *scene.Scene, opts Options) (*image.RGBA, FrameStats, error) {
	r, err := NewRenderer(sc, NaiveScheduler(), opts)
	if err != nil {
		return nil, FrameStats{}, err
	}

	frame, err := r.Render(ctx)
	if err != nil {
		return nil, r.Stats(), err
	}
	return frame, r.Stats(), nil
}

// Create a new renderer. The scene camera projection is updated to match
// the frame aspect ratio.
func NewRenderer(sc *scene.Scene, scheduler BlockScheduler, opts Options) (*Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, scene.ErrNoCamera
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrInvalidFrameSize
	}

	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if uint32(opts.Workers) > opts.FrameH {
		opts.Workers = int(opts.FrameH)
	}
	if opts.Shading == ShadeDepth && opts.DepthRange <= 0 {
		opts.DepthRange = depthRange(sc)
	}

	r := &Renderer{
		logger:    log.New("tracer"),
		scene:     sc,
		scheduler: scheduler,
		opts:      opts,
		frame:     image.NewRGBA(image.Rect(0, 0, int(opts.FrameW), int(opts.FrameH))),
		stats: FrameStats{
			Workers: make([]WorkerStat, opts.Workers),
		},
	}
	for idx := range r.stats.Workers {
		r.stats.Workers[idx].Id = fmt.Sprintf("cpu-%d", idx)
	}

	sc.Camera.SetupProjection(float32(opts.FrameW) / float32(opts.FrameH))
	sc.BuildBVH()

	r.logger.Infof("created renderer for a %dx%d frame using %d workers", opts.FrameW, opts.FrameH, opts.Workers)
	return r, nil
}

// Get the statistics for the last rendered frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Render a frame. The returned image is reused by subsequent calls.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, error) {
	start := time.Now()

	blockAssignment := r.scheduler.Schedule(r.stats.Workers, r.opts.FrameH)

	// Shapes may have been added since the last frame. The BVH must be
	// rebuilt here as workers only read it.
	r.scene.BuildBVH()

	g, gctx := errgroup.WithContext(ctx)
	var blockY uint32 = 0
	for idx, blockH := range blockAssignment {
		stat := &r.stats.Workers[idx]
		stat.BlockY = blockY
		stat.BlockH = blockH
		stat.FramePercent = 100.0 * float32(blockH) / float32(r.opts.FrameH)

		tr := r.scene.NewTracer()
		g.Go(func() error {
			return r.renderBlock(gctx, tr, stat)
		})
		blockY += blockH
	}

	err := g.Wait()
	r.stats.RenderTime = time.Since(start)
	if err != nil {
		return nil, err
	}

	r.logger.Noticef("rendered frame in %d ms", r.stats.RenderTime.Nanoseconds()/1e6)
	return r.frame, nil
}

// Trace the rows of the block assigned to a worker.
func (r *Renderer) renderBlock(ctx context.Context, tr *scene.Tracer, stat *WorkerStat) error {
	start := time.Now()
	stat.Rays, stat.Hits = 0, 0

	cam := r.scene.Camera
	for y := stat.BlockY; y < stat.BlockY+stat.BlockH; y++ {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
		}

		for x := uint32(0); x < r.opts.FrameW; x++ {
			ray := cam.Ray(x, y, r.opts.FrameW, r.opts.FrameH)
			stat.Rays++

			pixel := r.opts.Background
			if hit, _, ok := tr.ClosestHit(ray); ok {
				stat.Hits++
				pixel = r.shade(ray, hit)
			}
			r.frame.SetRGBA(int(x), int(y), pixel)
		}
	}

	stat.RenderTime = time.Since(start)
	r.logger.Debugf("worker %s traced rows %d-%d in %s", stat.Id, stat.BlockY, stat.BlockY+stat.BlockH, stat.RenderTime)
	return nil
}

// Map a hit to a pixel color.
func (r *Renderer) shade(ray geometry.Ray, hit geometry.Hit) color.RGBA {
	switch r.opts.Shading {
	case ShadeNormals:
		return color.RGBA{
			toByte(hit.Normal[0]*0.5 + 0.5),
			toByte(hit.Normal[1]*0.5 + 0.5),
			toByte(hit.Normal[2]*0.5 + 0.5),
			255,
		}
	case ShadeDepth:
		v := toByte(1 - hit.T/r.opts.DepthRange)
		return color.RGBA{v, v, v, 255}
	default:
		facing := -hit.Normal.Dot(ray.Dir)
		v := toByte(0.1 + 0.9*facing)
		return color.RGBA{v, v, v, 255}
	}
}

// Estimate the distance from the camera to the farthest point of the scene.
func depthRange(sc *scene.Scene) float32 {
	bounds := sc.BVH().Bounds()
	if sc.BVH().Empty() {
		return 1
	}
	dist := bounds.Center().Sub(sc.Camera.Position).Len() + bounds.Size().Len()*0.5
	if dist <= 0 {
		return 1
	}
	return dist
}

func toByte(v float32) uint8 {
	return uint8(math.Round(float64(clamp(v, 0, 1)) * 255))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
