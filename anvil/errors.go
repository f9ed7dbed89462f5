package anvil

import "errors"

// Sentinel errors distinguishing the error kinds spec.md §7 names: format
// errors (bad headers, unknown compression, malformed NBT, out-of-range
// palette indices, bad property values), resource errors (I/O, missing
// files), and logic errors (caller asked for something that doesn't
// exist). Wrapped with fmt.Errorf("...: %w", ...) at the point of failure,
// matching the teacher's error style throughout server/world/mcdb/db.go.
var (
	ErrNotARegionFile   = errors.New("anvil: not a region file")
	ErrUnsupportedCodec = errors.New("anvil: unsupported compression method")
	ErrMalformedChunk    = errors.New("anvil: malformed chunk data")
	ErrNoDimensions      = errors.New("anvil: no dimensions found under world path")
	ErrChunkAbsent       = errors.New("anvil: chunk has no data")
)
