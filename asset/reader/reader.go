// Package reader loads scene descriptions into a scene.Scene.
package reader

import (
	"context"
	"errors"
	"fmt"

	"github.com/BardoBard/Bardrix-sub000/asset"
	"github.com/BardoBard/Bardrix-sub000/scene"
)

var ErrUnsupportedFormat = errors.New("reader: unsupported file format")

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from a local file or an http(s) URL.
func ReadScene(location string) (*scene.Scene, error) {
	return ReadSceneContext(context.Background(), location)
}

// Like ReadScene but the context controls remote fetches, including the
// fetches of any files included by the scene.
func ReadSceneContext(ctx context.Context, location string) (*scene.Scene, error) {
	res, err := asset.OpenContext(ctx, location, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	// Select reader based on file extension
	var reader Reader
	switch res.Ext() {
	case ".obj":
		reader = newWavefrontReader(ctx)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, res.Ext())
	}
	return reader.Read(res)
}
