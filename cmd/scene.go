package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BardoBard/Bardrix-sub000/asset/reader"
	"github.com/BardoBard/Bardrix-sub000/scene"
	"github.com/BardoBard/Bardrix-sub000/types"
	"github.com/urfave/cli"
)

var errMissingSceneArg = errors.New("missing scene file argument")

// Load the scene passed as the single command argument.
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	if ctx.NArg() != 1 {
		return nil, errMissingSceneArg
	}
	return reader.ReadScene(ctx.Args().First())
}

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}

// Parse a vector from a comma-separated flag value.
func parseVec3(value string) (types.Vec3, error) {
	tokens := strings.Split(value, ",")
	if len(tokens) != 3 {
		return types.Vec3{}, fmt.Errorf("expected vector with 3 comma-separated components; got %q", value)
	}

	var v types.Vec3
	for idx, token := range tokens {
		coord, err := strconv.ParseFloat(strings.TrimSpace(token), 32)
		if err != nil {
			return types.Vec3{}, fmt.Errorf("invalid vector component %q: %s", token, err)
		}
		v[idx] = float32(coord)
	}
	return v, nil
}
