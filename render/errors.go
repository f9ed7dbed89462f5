package render

import "errors"

// Sentinel errors distinguished by category per spec.md §7.
var (
	// ErrNotAnAssetsRoot is a resource error: the given path has no
	// ".mcassetsroot" marker file.
	ErrNotAnAssetsRoot = errors.New("render: not a valid assets root")
	// ErrUnknownAxis is a format error: a SolidTopSide rule's axis
	// property held a value other than "x", "y", "z", or absent.
	ErrUnknownAxis = errors.New("render: unsupported axis value")
	// ErrChunkNotFound is a logic error: the caller requested a chunk
	// that does not exist in the backing dimension.
	ErrChunkNotFound = errors.New("render: chunk not found")
	// ErrRegionNotFound is a logic error: the caller requested a region
	// that does not exist in the backing dimension.
	ErrRegionNotFound = errors.New("render: region not found")
)
