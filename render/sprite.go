// Package render implements the sprite/asset cache and isometric tile
// renderer (components C, D, E, F): texture loading, face projection,
// render-rule resolution, and back-to-front tile composition. Grounded
// on _examples/original_source/mcrender/src/{asset,render,sprite}.rs.
package render

import (
	"github.com/df-mc/isorender/canvas"
	"github.com/go-gl/mathgl/mgl32"
)

type (
	Rgba8 = canvas.Rgba8
	Rgb8  = canvas.Rgb8
)

// SpriteSize is the edge length of a composed isometric sprite and of
// the output face projections, matching SPRITE_SIZE in spec.md §6.
const SpriteSize = 24

// TextureSize is the edge length of a source block texture's used
// sub-image.
const TextureSize = 16

// RenderMode tags the direction a sprite layer's lighting is meant to
// represent. Per DESIGN.md's Open Question resolution, every mode is
// currently blitted identically via canvas.OverlayFinal; the tags are
// carried for a future direction-dependent lighting pass.
type RenderMode int

const (
	ModeSolidTop RenderMode = iota
	ModeSolidEast
	ModeSolidSouth
	ModeTranslucentTop
	ModeTranslucentEast
	ModeTranslucentSouth
	ModeSolid
	ModeTranslucent
)

// SpriteLayer is one 24x24 RGBA8 tile plus its advisory render mode.
type SpriteLayer struct {
	Pixels []Rgba8
	Mode   RenderMode
}

// Sprite is an ordered list of layers, blitted in list order onto the
// destination raster (spec.md §3 "Sprite").
type Sprite struct {
	Layers []SpriteLayer
}

// Aspect names one of the nine fixed affine face projections plus the
// tenth flat PlantBottom projection (spec.md §4.3).
type Aspect int

const (
	AspectBlockTop Aspect = iota
	AspectBlockBottom
	AspectBlockNorth
	AspectBlockSouth
	AspectBlockEast
	AspectBlockWest
	AspectBlockTopRotated
	AspectBlockEastRotated
	AspectBlockSouthRotated
	AspectPlantBottom
)

// Interp names the resampling filter an aspect's warp uses.
type Interp int

const (
	InterpBilinear Interp = iota
	InterpNearest
)

func translate2D(tx, ty float32) mgl32.Mat3 {
	return mgl32.Mat3{
		1, 0, 0,
		0, 1, 0,
		tx, ty, 1,
	}
}

func scale2D(sx, sy float32) mgl32.Mat3 {
	return mgl32.Mat3{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}
}

func shearX2D(dy float32) mgl32.Mat3 {
	// Shears x as a function of y: x' = x + dy*y.
	return mgl32.Mat3{
		1, 0, 0,
		dy, 1, 0,
		0, 0, 1,
	}
}

// rotate2D builds a rotation matrix from a degree angle, wrapping
// mgl32.HomogRotate2D (which takes radians).
func rotate2D(degrees float32) mgl32.Mat3 {
	return mgl32.HomogRotate2D(mgl32.DegToRad(degrees))
}

// compose multiplies matrices left-to-right in the mathematical sense
// that the rightmost argument is applied to the source vector first,
// matching the "applied right-to-left to source pixels" convention
// spec.md §4.3 documents.
func compose(ms ...mgl32.Mat3) mgl32.Mat3 {
	out := mgl32.Ident3()
	for _, m := range ms {
		out = out.Mul3(m)
	}
	return out
}

// aspectProjection describes one aspect's forward source->dest affine
// transform and interpolation mode.
type aspectProjection struct {
	forward mgl32.Mat3
	interp  Interp
}

// projections holds the nine fixed block-face matrices plus PlantBottom's,
// built once at
// package init from the compositions tabulated in spec.md §4.3.
var projections = buildProjections()

func buildProjections() map[Aspect]aspectProjection {
	blockEastCore := compose(translate2D(12, 11.5), scale2D(12.0/16.0, 19.0/24.0), shearX2D(-0.5))
	blockWestCore := compose(translate2D(0, 5), scale2D(12.0/16.0, 19.0/24.0), shearX2D(-0.5))
	blockSouthCore := compose(translate2D(-0.5, 5.6), scale2D(13.0/16.0, 19.0/24.0), shearX2D(0.5))

	return map[Aspect]aspectProjection{
		AspectBlockTop: {
			forward: compose(translate2D(11.5, 5.5), scale2D(1.0, 0.5), scale2D(1.17, 1.17), rotate2D(45), translate2D(-8, -8)),
			interp:  InterpBilinear,
		},
		AspectBlockBottom: {
			forward: compose(translate2D(11.5, 17.5), scale2D(1.0, 0.5), scale2D(1.17, 1.17), rotate2D(45), translate2D(-8, -8)),
			interp:  InterpBilinear,
		},
		AspectBlockEast: {
			forward: blockEastCore,
			interp:  InterpBilinear,
		},
		AspectBlockWest: {
			forward: blockWestCore,
			interp:  InterpBilinear,
		},
		AspectBlockSouth: {
			forward: blockSouthCore,
			interp:  InterpBilinear,
		},
		AspectBlockNorth: {
			forward: compose(translate2D(11.5, -0.8), scale2D(13.0/16.0, 19.0/24.0), shearX2D(0.5)),
			interp:  InterpBilinear,
		},
		AspectBlockTopRotated: {
			forward: compose(translate2D(10.6, 5.3), scale2D(1.0, 0.5), scale2D(1.20, 1.14), rotate2D(135), translate2D(-8, -8)),
			interp:  InterpBilinear,
		},
		AspectBlockEastRotated: {
			forward: compose(translate2D(11, 12), scale2D(12.0/16.0, 19.0/24.0), shearX2D(-0.5), translate2D(8, 8), rotate2D(90), translate2D(-8, -8)),
			interp:  InterpBilinear,
		},
		AspectBlockSouthRotated: {
			forward: compose(translate2D(-1, 5.5), scale2D(13.0/16.0, 19.0/24.0), shearX2D(0.5), translate2D(8, 8), rotate2D(90), translate2D(-8, -8)),
			interp:  InterpBilinear,
		},
		AspectPlantBottom: {
			forward: compose(translate2D(4, 6), scale2D(1, 12.0/16.0)),
			interp:  InterpNearest,
		},
	}
}
