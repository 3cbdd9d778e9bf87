package cmd

import "github.com/urfave/cli"

// Create the command line application.
func NewApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "bardrix"
	app.Usage = "trace rays through BVH-accelerated scenes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "info",
			Usage: "display scene and BVH statistics",
			Description: `
Parse a scene definition from a wavefront obj file, build a BVH tree over
its shapes and display shape counts and BVH construction statistics.`,
			ArgsUsage: "scene_file.obj",
			Action:    ShowSceneInfo,
		},
		{
			Name:        "trace",
			Usage:       "trace a single ray through the scene",
			Description: `List the shapes whose bbox is intersected by the ray and report the closest hit.`,
			ArgsUsage:   "scene_file.obj",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "origin",
					Value: "0,0,0",
					Usage: "ray origin as x,y,z",
				},
				cli.StringFlag{
					Name:  "dir",
					Value: "0,0,-1",
					Usage: "ray direction as x,y,z",
				},
			},
			Action: TraceRay,
		},
		{
			Name:        "render",
			Usage:       "render single frame",
			Description: `Render a single frame by tracing one primary ray per pixel.`,
			ArgsUsage:   "scene_file.obj",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of tracing goroutines (0 = one per CPU)",
				},
				cli.StringFlag{
					Name:  "shading",
					Value: "facing",
					Usage: "pixel shading mode: facing, normals or depth",
				},
				cli.Float64Flag{
					Name:  "depth-range",
					Value: 0,
					Usage: "distance where depth shading fades out (0 = derive from scene bounds)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame (.png or .bmp)",
				},
			},
			Action: RenderFrame,
		},
	}

	return app
}
