package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/BardoBard/Bardrix-sub000/tracer"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	shading, err := tracer.ParseShadingMode(ctx.String("shading"))
	if err != nil {
		return err
	}

	if ctx.Int("width") <= 0 || ctx.Int("height") <= 0 {
		return tracer.ErrInvalidFrameSize
	}

	opts := tracer.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))
	opts.Workers = ctx.Int("workers")
	opts.Shading = shading
	opts.DepthRange = float32(ctx.Float64("depth-range"))

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	// Abort rendering on ctrl+c
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, stats, err := tracer.Render(renderCtx, sc, opts)
	if err != nil {
		return err
	}
	logger.Noticef("frame statistics\n%s", stats.Table())

	imgFile := ctx.String("out")
	if err = tracer.WriteImage(frame, imgFile); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", imgFile)
	return nil
}
