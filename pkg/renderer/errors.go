package renderer

import "errors"

var (
	ErrNoWorld        = errors.New("renderer: no world defined")
	ErrInvalidCamera  = errors.New("renderer: invalid camera configuration")
	ErrInvalidSamples = errors.New("renderer: samples per pixel must be at least 1")
	ErrInvalidDepth   = errors.New("renderer: max depth must not be negative")
	ErrInvalidWidth   = errors.New("renderer: invalid image width")
	ErrInvalidConfig  = errors.New("renderer: invalid render configuration")
)
