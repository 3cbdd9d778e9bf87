// Package asset locates and opens the files that make up a scene. Scene
// files and the files they include may live on the local filesystem or be
// served over http(s).
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrUnsupportedScheme = errors.New("resource: unsupported scheme")
	ErrFetchFailed       = errors.New("resource: could not fetch")
)

// The client used for fetching remote resources.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// A Resource is an open stream to a local or remote scene file. Resources
// must be closed by the caller.
type Resource struct {
	io.ReadCloser
	location *url.URL
}

// Path returns the location of the resource.
func (r *Resource) Path() string {
	return r.location.String()
}

// Name returns the last element of the resource path.
func (r *Resource) Name() string {
	return path.Base(r.location.Path)
}

// Ext returns the lower-cased extension of the resource path, including the
// leading dot.
func (r *Resource) Ext() string {
	return strings.ToLower(path.Ext(r.location.Path))
}

// IsRemote returns true if the resource is streamed over http(s).
func (r *Resource) IsRemote() bool {
	return r.location.Scheme != ""
}

// Open a resource. See OpenContext.
func Open(location string, relTo *Resource) (*Resource, error) {
	return OpenContext(context.Background(), location, relTo)
}

// OpenContext opens the resource at location. If location has no scheme and
// relTo is not nil, location is resolved against the directory containing
// relTo; a file included by a remote scene is thus fetched from the same
// server.
func OpenContext(ctx context.Context, location string, relTo *Resource) (*Resource, error) {
	target, err := url.Parse(filepath.ToSlash(location))
	if err != nil {
		return nil, err
	}

	if target.Scheme == "" && relTo != nil && !filepath.IsAbs(target.Path) {
		target, err = resolve(target.Path, relTo)
		if err != nil {
			return nil, err
		}
	}

	var reader io.ReadCloser
	switch target.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(filepath.FromSlash(target.Path)))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		reader, err = fetch(ctx, target)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w '%s'", ErrUnsupportedScheme, target.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		location:   target,
	}, nil
}

// Wrap an in-memory stream as a resource. Relative includes are resolved
// against name.
func FromStream(name string, source io.Reader) *Resource {
	location, err := url.Parse(filepath.ToSlash(name))
	if err != nil {
		location = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: io.NopCloser(source),
		location:   location,
	}
}

func resolve(relPath string, relTo *Resource) (*url.URL, error) {
	if relTo.IsRemote() {
		base := *relTo.location
		base.Path = path.Join(path.Dir(base.Path), relPath)
		base.RawQuery = ""
		return &base, nil
	}

	parent, err := filepath.Abs(filepath.FromSlash(relTo.location.Path))
	if err != nil {
		return nil, fmt.Errorf("resource: could not detect abs path for %s: %w", relTo.Path(), err)
	}
	return &url.URL{Path: filepath.ToSlash(filepath.Join(filepath.Dir(parent), relPath))}, nil
}

func fetch(ctx context.Context, target *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %s", ErrFetchFailed, target.String(), err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w '%s': status %d", ErrFetchFailed, target.String(), resp.StatusCode)
	}
	return resp.Body, nil
}
