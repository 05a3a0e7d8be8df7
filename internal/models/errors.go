package models

import "errors"

// Load-time failures. All of them abort rendering.
var (
	ErrMissingInputFile    = errors.New("missing input file")
	ErrMalformedColumn     = errors.New("malformed column")
	ErrEmptyDataset        = errors.New("empty dataset")
	ErrInvalidClusterLabel = errors.New("invalid cluster label")
)
