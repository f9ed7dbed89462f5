package anvil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
)

const (
	sectorSize          = 4096
	regionHeaderSectors = 2
	regionChunkCount    = RegionSize * RegionSize
	compressionZlib     = 2
)

// RegionInfo is the location of one region file on disk, built by
// RegionInfoFromPath. Grounded on
// original_source/mcrender/src/world/mod.rs's RegionInfo.
type RegionInfo struct {
	Coords RCoords
	Path   string
}

// parseRegionFilename parses a region's coordinates out of a filename of
// the form "r.<X>.<Z>.mca".
func parseRegionFilename(name string) (RCoords, bool) {
	if !strings.HasPrefix(name, "r.") || !strings.HasSuffix(name, ".mca") {
		return RCoords{}, false
	}
	mid := strings.TrimSuffix(strings.TrimPrefix(name, "r."), ".mca")
	parts := strings.SplitN(mid, ".", 2)
	if len(parts) != 2 {
		return RCoords{}, false
	}
	x, err1 := strconv.ParseInt(parts[0], 10, 32)
	z, err2 := strconv.ParseInt(parts[1], 10, 32)
	if err1 != nil || err2 != nil {
		return RCoords{}, false
	}
	return RCoords{X: int32(x), Z: int32(z)}, true
}

// RegionInfoFromPath validates that path names a region file and returns
// its parsed RegionInfo.
func RegionInfoFromPath(path string) (RegionInfo, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return RegionInfo{}, fmt.Errorf("%w: %s", ErrNotARegionFile, path)
	}
	coords, ok := parseRegionFilename(filepath.Base(path))
	if !ok {
		return RegionInfo{}, fmt.Errorf("%w: %s", ErrNotARegionFile, path)
	}
	return RegionInfo{Coords: coords, Path: path}, nil
}

// Open opens the region file at info.Path and reads its location table.
func (info RegionInfo) Open() (*Region, error) {
	f, err := os.Open(info.Path)
	if err != nil {
		return nil, fmt.Errorf("open region %s: %w", info.Path, err)
	}
	return newRegion(info, f)
}

// RawChunk is an undecoded, decompressed chunk payload plus its location.
type RawChunk struct {
	Index  CIndex
	Coords CCoords
	Data   []byte
}

// Parse decodes the raw NBT payload into a Chunk, applying filter to
// trim each block state's properties to the render-relevant subset.
func (c RawChunk) Parse(filter PropertyFilter) (*Chunk, error) {
	chunk, err := ParseChunk(c.Data, filter)
	if err != nil {
		return nil, err
	}
	chunk.Coords = c.Coords
	return chunk, nil
}

// Region is an open region file: its parsed location table plus the
// backing file handle. Region handles are not pooled by this package —
// opening and closing them is left to the caller, per spec.md §3's
// lifecycle note.
type Region struct {
	info   RegionInfo
	chunks [regionChunkCount]uint32
	file   *os.File
}

func newRegion(info RegionInfo, f *os.File) (*Region, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek region header: %w", err)
	}
	header := make([]byte, regionHeaderSectors*sectorSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("read region header: %w", err)
	}
	r := &Region{info: info, file: f}
	for i := 0; i < regionChunkCount; i++ {
		r.chunks[i] = binary.BigEndian.Uint32(header[i*4 : i*4+4])
	}
	return r, nil
}

// Close closes the underlying file handle.
func (r *Region) Close() error { return r.file.Close() }

// Info returns the region's coordinates and path.
func (r *Region) Info() RegionInfo { return r.info }

// GetRawChunk reads the raw (decompressed, undecoded) chunk at the given
// region-local index. ok is false if there is no chunk data at that
// index (the common case for a not-yet-generated chunk).
func (r *Region) GetRawChunk(idx CIndex) (RawChunk, bool, error) {
	raw, ok, err := r.getRawChunkByFlatIndex(idx.flatIndex())
	if err != nil || !ok {
		return RawChunk{}, ok, err
	}
	raw.Index = idx
	raw.Coords = idx.ToChunkCoords(r.info.Coords)
	return raw, true, nil
}

func (r *Region) getRawChunkByFlatIndex(i int) (RawChunk, bool, error) {
	offsetCount := r.chunks[i]
	if offsetCount == 0 {
		return RawChunk{}, false, nil
	}
	offset := int64(offsetCount>>8) * sectorSize

	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return RawChunk{}, true, fmt.Errorf("seek chunk %d: %w", i, err)
	}
	var sizeBuf [4]byte
	if _, err := io.ReadFull(r.file, sizeBuf[:]); err != nil {
		return RawChunk{}, true, fmt.Errorf("read chunk size %d: %w", i, err)
	}
	compressedSize := binary.BigEndian.Uint32(sizeBuf[:])
	if compressedSize == 0 {
		return RawChunk{}, true, fmt.Errorf("%w: chunk %d has zero compressed size", ErrMalformedChunk, i)
	}
	payload := make([]byte, compressedSize)
	if _, err := io.ReadFull(r.file, payload); err != nil {
		return RawChunk{}, true, fmt.Errorf("read chunk payload %d: %w", i, err)
	}
	method := payload[0]
	if method != compressionZlib {
		return RawChunk{}, true, fmt.Errorf("%w: method %d", ErrUnsupportedCodec, method)
	}
	zr, err := zlib.NewReader(bytes.NewReader(payload[1:]))
	if err != nil {
		return RawChunk{}, true, fmt.Errorf("open zlib stream for chunk %d: %w", i, err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return RawChunk{}, true, fmt.Errorf("decompress chunk %d: %w", i, err)
	}
	return RawChunk{Data: data}, true, nil
}

// Iter returns an iterator over every present chunk in the region, in
// on-disk (Z, X) order.
func (r *Region) Iter() *RegionChunkIter {
	return &RegionChunkIter{region: r}
}

// RegionChunkIter streams every present chunk in a region in storage
// order. RenderRegion and RuleSet.Warm do not use it; RenderRegion
// fetches each chunk through a ChunkCache instead.
type RegionChunkIter struct {
	region *Region
	next   int
}

// Next advances the iterator, returning false once every slot has been
// visited. Absent chunks are skipped transparently.
func (it *RegionChunkIter) Next() (RawChunk, bool, error) {
	for it.next < regionChunkCount {
		i := it.next
		it.next++
		raw, ok, err := it.region.getRawChunkByFlatIndex(i)
		if err != nil {
			return RawChunk{}, false, err
		}
		if !ok {
			continue
		}
		raw.Index = indexFromFlat(i)
		raw.Coords = raw.Index.ToChunkCoords(it.region.info.Coords)
		return raw, true, nil
	}
	return RawChunk{}, false, nil
}
