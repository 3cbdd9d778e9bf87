package tracer

import "errors"

var (
	ErrSceneNotDefined        = errors.New("tracer: no scene defined")
	ErrInvalidFrameSize       = errors.New("tracer: frame dimensions must be non-zero")
	ErrInterrupted            = errors.New("tracer: interrupted while rendering")
	ErrUnsupportedImageFormat = errors.New("tracer: unsupported image format")
)
