package anvil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DimensionID names one of the three dimensions a Java Edition save world
// may contain. Grounded on the teacher's Dimension registry in
// server/world/dimension.go, restructured around the three fixed
// sub-directory names Anvil uses instead of a numeric-ID registry (Anvil
// has no equivalent of Bedrock's per-dimension numeric encoding).
type DimensionID uint8

const (
	Overworld DimensionID = iota
	Nether
	TheEnd
)

func (d DimensionID) String() string {
	switch d {
	case Overworld:
		return "overworld"
	case Nether:
		return "nether"
	case TheEnd:
		return "the_end"
	default:
		return "unknown"
	}
}

// subdirectory returns the save-world subdirectory holding the
// dimension's region files, relative to the world root.
func (d DimensionID) subdirectory() string {
	switch d {
	case Nether:
		return "DIM-1"
	case TheEnd:
		return "DIM1"
	default:
		return "."
	}
}

// WorldInfo is a discovered save-world directory: the set of dimensions
// that were found to have at least one region file. Grounded on
// original_source/mcrender/src/world/mod.rs's WorldInfo.
type WorldInfo struct {
	Path       string
	Dimensions map[DimensionID]*DimensionInfo
}

// DiscoverWorld attempts to construct descriptors for all three
// dimensions under path. A dimension failing to resolve is not fatal;
// every dimension failing is (ErrNoDimensions).
func DiscoverWorld(path string) (*WorldInfo, error) {
	w := &WorldInfo{Path: path, Dimensions: map[DimensionID]*DimensionInfo{}}
	for _, d := range []DimensionID{Overworld, Nether, TheEnd} {
		if di, err := discoverDimension(filepath.Join(path, d.subdirectory())); err == nil {
			w.Dimensions[d] = di
		}
	}
	if len(w.Dimensions) == 0 {
		return nil, ErrNoDimensions
	}
	return w, nil
}

// Dimension returns the discovered DimensionInfo for id, if any.
func (w *WorldInfo) Dimension(id DimensionID) (*DimensionInfo, bool) {
	di, ok := w.Dimensions[id]
	return di, ok
}

// DimensionInfo is one dimension's set of discovered region files.
type DimensionInfo struct {
	Path    string
	regions map[RCoords]RegionInfo
	sorted  []RCoords // sorted by (Z, X), matching Anvil's on-disk order
}

func discoverDimension(path string) (*DimensionInfo, error) {
	regionsPath := filepath.Join(path, "region")
	entries, err := os.ReadDir(regionsPath)
	if err != nil {
		return nil, fmt.Errorf("not a dimension directory: %w", err)
	}
	di := &DimensionInfo{Path: path, regions: map[RCoords]RegionInfo{}}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := RegionInfoFromPath(filepath.Join(regionsPath, e.Name()))
		if err != nil {
			continue
		}
		di.regions[info.Coords] = info
		di.sorted = append(di.sorted, info.Coords)
	}
	if len(di.regions) == 0 {
		return nil, fmt.Errorf("no regions found under %s", regionsPath)
	}
	sort.Slice(di.sorted, func(i, j int) bool {
		a, b := di.sorted[i], di.sorted[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return di, nil
}

// Region returns the RegionInfo at coords, if discovered.
func (d *DimensionInfo) Region(coords RCoords) (RegionInfo, bool) {
	r, ok := d.regions[coords]
	return r, ok
}

// Regions returns every discovered region's info, in (Z, X) order.
func (d *DimensionInfo) Regions() []RegionInfo {
	out := make([]RegionInfo, len(d.sorted))
	for i, c := range d.sorted {
		out[i] = d.regions[c]
	}
	return out
}

// MinRegionCoords returns coordinates such that every discovered region
// has X >= min.X and Z >= min.Z.
func (d *DimensionInfo) MinRegionCoords() RCoords {
	min := d.sorted[0]
	for _, c := range d.sorted[1:] {
		if c.X < min.X {
			min.X = c.X
		}
		if c.Z < min.Z {
			min.Z = c.Z
		}
	}
	return min
}

// MaxRegionCoords returns coordinates such that every discovered region
// has X < max.X and Z < max.Z.
func (d *DimensionInfo) MaxRegionCoords() RCoords {
	max := d.sorted[0]
	for _, c := range d.sorted[1:] {
		if c.X > max.X {
			max.X = c.X
		}
		if c.Z > max.Z {
			max.Z = c.Z
		}
	}
	return RCoords{X: max.X + 1, Z: max.Z + 1}
}

// GetRawChunk opens the region holding chunkCoords (if any) and reads the
// raw chunk at that position. Regions are not cached here; the caller is
// expected to own region lifetime, per spec.md §3.
func (d *DimensionInfo) GetRawChunk(chunkCoords CCoords) (RawChunk, bool, error) {
	regionCoords, idx := chunkCoords.ToRegionCoords()
	info, ok := d.regions[regionCoords]
	if !ok {
		return RawChunk{}, false, nil
	}
	region, err := info.Open()
	if err != nil {
		return RawChunk{}, false, err
	}
	defer region.Close()
	raw, ok, err := region.GetRawChunk(idx)
	if err != nil || !ok {
		return RawChunk{}, ok, err
	}
	raw.Coords = idx.ToChunkCoords(regionCoords)
	return raw, true, nil
}
