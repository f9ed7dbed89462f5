package render

import (
	"strings"

	"github.com/df-mc/isorender/anvil"
)

// TextureName is a small builder that concatenates literal strings,
// the block's short name, individual property values, and
// property-to-value maps into a final texture name, evaluated as a
// pure function of a block state. Grounded on
// original_source/mcrender/src/asset.rs's short_name/texture-path
// construction, generalised per spec.md §4.4's "builder" description
// into a reusable part list rather than one hard-coded format string
// per rule.
type TextureName struct {
	parts []textureNamePart
}

type textureNamePart interface {
	resolve(state anvil.BlockState) string
}

// NewTextureName returns an empty builder.
func NewTextureName() *TextureName { return &TextureName{} }

// Literal appends a fixed string.
func (b *TextureName) Literal(s string) *TextureName {
	b.parts = append(b.parts, literalPart(s))
	return b
}

// ShortName appends the block's short name (namespace stripped).
func (b *TextureName) ShortName() *TextureName {
	b.parts = append(b.parts, shortNamePart{})
	return b
}

// Property appends the value of a single state property, or "" if the
// property is absent.
func (b *TextureName) Property(key string) *TextureName {
	b.parts = append(b.parts, propertyPart{key: key})
	return b
}

// PropertyMap appends a value looked up by a property's current value
// through a caller-supplied table (e.g. mapping an "age" property's
// numeric value onto a differently-named texture per growth stage).
func (b *TextureName) PropertyMap(key string, table map[string]string) *TextureName {
	b.parts = append(b.parts, propertyMapPart{key: key, table: table})
	return b
}

// Resolve evaluates the builder against state, concatenating every
// part in order.
func (b *TextureName) Resolve(state anvil.BlockState) string {
	var sb strings.Builder
	for _, p := range b.parts {
		sb.WriteString(p.resolve(state))
	}
	return sb.String()
}

type literalPart string

func (p literalPart) resolve(anvil.BlockState) string { return string(p) }

type shortNamePart struct{}

func (shortNamePart) resolve(state anvil.BlockState) string { return state.ShortName() }

type propertyPart struct{ key string }

func (p propertyPart) resolve(state anvil.BlockState) string {
	v, _ := state.Properties.Get(p.key)
	return v
}

type propertyMapPart struct {
	key   string
	table map[string]string
}

func (p propertyMapPart) resolve(state anvil.BlockState) string {
	v, ok := state.Properties.Get(p.key)
	if !ok {
		return ""
	}
	return p.table[v]
}
