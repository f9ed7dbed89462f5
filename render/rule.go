package render

import (
	"fmt"
	"sync"

	"github.com/df-mc/isorender/anvil"
	"github.com/df-mc/isorender/canvas"
)

// RuleSet holds the configured render rules and biome colour tables,
// plus the sprite/texture caches that back resolution. It is the
// Block-to-sprite resolver (component D) and doubles as the
// anvil.PropertyFilter consulted while parsing chunks, so property
// filtering and rendering always agree on which properties matter.
type RuleSet struct {
	rules  map[string]AssetRule
	biomes BiomeColors

	textures *TextureCache
	partials *PartialSpriteCache

	mu        sync.Mutex
	composite map[compositeKey]*Sprite
}

// compositeKey is (block-state, biome-if-relevant); biome is the zero
// value when the rule is not biome-aware, so equal states reuse one
// composite sprite across biomes (spec.md §3 "Lifecycles").
type compositeKey struct {
	stateHash uint64
	biome     string
}

// NewRuleSet builds a resolver from settings, backed by the given
// caches.
func NewRuleSet(settings Settings, textures *TextureCache, partials *PartialSpriteCache) *RuleSet {
	return &RuleSet{
		rules:     settings.AssetRules,
		biomes:    settings.BiomeColors,
		textures:  textures,
		partials:  partials,
		composite: map[compositeKey]*Sprite{},
	}
}

// RelevantProperties implements anvil.PropertyFilter: a block keeps
// only the properties its configured rule declares relevant.
func (rs *RuleSet) RelevantProperties(blockName string) map[string]struct{} {
	rule, ok := rs.rules[shortNameOf(blockName)]
	if !ok || len(rule.RelevantProperties) == 0 {
		return nil
	}
	keep := make(map[string]struct{}, len(rule.RelevantProperties))
	for _, k := range rule.RelevantProperties {
		keep[k] = struct{}{}
	}
	return keep
}

func shortNameOf(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[i+1:]
		}
	}
	return name
}

// Resolve maps a BlockInfo to its layered Sprite per the configured
// rule, or nil when the rule is Nothing or the block has no configured
// rule at all. ctx is threaded through but never consulted (§9 open
// question).
func (rs *RuleSet) Resolve(block anvil.BlockInfo, ctx BlockContext) (*Sprite, error) {
	rule, ok := rs.rules[block.State.ShortName()]
	if !ok || rule.Kind == KindNothing {
		return nil, nil
	}

	biome := ""
	if rule.TintCategory != "" {
		biome = block.Biome
	}
	key := compositeKey{stateHash: block.State.Hash(), biome: biome}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if s, ok := rs.composite[key]; ok {
		return s, nil
	}

	sprite, err := rs.build(rule, *block.State, block.Biome)
	if err != nil {
		return nil, err
	}
	rs.composite[key] = sprite
	return sprite, nil
}

func (rs *RuleSet) build(rule AssetRule, state anvil.BlockState, biome string) (*Sprite, error) {
	tint := func() Rgb8 { return rs.biomes.Resolve(rule.TintCategory, biome) }
	hasTint := rule.TintCategory != ""

	switch rule.Kind {
	case KindSolidUniform:
		return rs.buildSolidUniform(rule.Texture)
	case KindSolidTopSide:
		return rs.buildSolidTopSide(rule, state)
	case KindLeaves:
		return rs.buildLeaves(rule.Texture, tint())
	case KindPlant:
		return rs.buildPlant(rule.Texture, tint(), hasTint)
	case KindCrop:
		return rs.buildCrop(cropTextureName(rule, state))
	case KindGrass:
		return rs.buildGrass(tint())
	case KindVine:
		return rs.buildVine(rule.Texture, state, tint(), hasTint)
	case KindWater:
		return rs.buildWater(rule.FlowTexture, rule.Texture, tint())
	default:
		return nil, nil
	}
}

func (rs *RuleSet) face(texture string, aspect Aspect, tint Rgb8, hasTint bool) (*canvas.Buf[Rgba8], error) {
	return rs.partials.Get(texture, aspect, tint, hasTint)
}

func (rs *RuleSet) buildSolidUniform(texture string) (*Sprite, error) {
	east, err := rs.face(texture, AspectBlockEast, Rgb8{}, false)
	if err != nil {
		return nil, err
	}
	south, err := rs.face(texture, AspectBlockSouth, Rgb8{}, false)
	if err != nil {
		return nil, err
	}
	top, err := rs.face(texture, AspectBlockTop, Rgb8{}, false)
	if err != nil {
		return nil, err
	}
	return &Sprite{Layers: []SpriteLayer{
		{Pixels: east.Pixels(), Mode: ModeSolidEast},
		{Pixels: south.Pixels(), Mode: ModeSolidSouth},
		{Pixels: top.Pixels(), Mode: ModeSolidTop},
	}}, nil
}

func (rs *RuleSet) buildSolidTopSide(rule AssetRule, state anvil.BlockState) (*Sprite, error) {
	axis, _ := state.Properties.Get("axis")

	type faceSpec struct {
		texture string
		aspect  Aspect
		mode    RenderMode
	}
	var specs []faceSpec
	switch axis {
	case "", "y":
		specs = []faceSpec{
			{rule.SideTexture, AspectBlockEast, ModeSolidEast},
			{rule.SideTexture, AspectBlockSouth, ModeSolidSouth},
			{rule.TopTexture, AspectBlockTop, ModeSolidTop},
		}
	case "x":
		specs = []faceSpec{
			{rule.TopTexture, AspectBlockEast, ModeSolidEast},
			{rule.SideTexture, AspectBlockSouthRotated, ModeSolidSouth},
			{rule.SideTexture, AspectBlockTopRotated, ModeSolidTop},
		}
	case "z":
		specs = []faceSpec{
			{rule.SideTexture, AspectBlockEastRotated, ModeSolidEast},
			{rule.TopTexture, AspectBlockSouth, ModeSolidSouth},
			{rule.SideTexture, AspectBlockTop, ModeSolidTop},
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, axis)
	}

	layers := make([]SpriteLayer, 0, len(specs))
	for _, s := range specs {
		face, err := rs.face(s.texture, s.aspect, Rgb8{}, false)
		if err != nil {
			return nil, err
		}
		layers = append(layers, SpriteLayer{Pixels: face.Pixels(), Mode: s.mode})
	}
	return &Sprite{Layers: layers}, nil
}

func (rs *RuleSet) buildLeaves(texture string, tint Rgb8) (*Sprite, error) {
	east, err := rs.face(texture, AspectBlockEast, tint, true)
	if err != nil {
		return nil, err
	}
	south, err := rs.face(texture, AspectBlockSouth, tint, true)
	if err != nil {
		return nil, err
	}
	top, err := rs.face(texture, AspectBlockTop, tint, true)
	if err != nil {
		return nil, err
	}
	composed := canvas.NewBuf[Rgba8](SpriteSize, SpriteSize)
	canvas.OverlayRgba(composed, east, 0, 0)
	canvas.OverlayRgba(composed, south, 0, 0)
	canvas.OverlayRgba(composed, top, 0, 0)
	return &Sprite{Layers: []SpriteLayer{{Pixels: composed.Pixels(), Mode: ModeTranslucent}}}, nil
}

func (rs *RuleSet) buildPlant(texture string, tint Rgb8, hasTint bool) (*Sprite, error) {
	face, err := rs.face(texture, AspectPlantBottom, tint, hasTint)
	if err != nil {
		return nil, err
	}
	return &Sprite{Layers: []SpriteLayer{{Pixels: face.Pixels(), Mode: ModeTranslucent}}}, nil
}

func (rs *RuleSet) buildGrass(tint Rgb8) (*Sprite, error) {
	dirtEast, err := rs.face("dirt", AspectBlockEast, Rgb8{}, false)
	if err != nil {
		return nil, err
	}
	overlayEast, err := rs.face("grass_block_side_overlay", AspectBlockEast, tint, true)
	if err != nil {
		return nil, err
	}
	dirtSouth, err := rs.face("dirt", AspectBlockSouth, Rgb8{}, false)
	if err != nil {
		return nil, err
	}
	overlaySouth, err := rs.face("grass_block_side_overlay", AspectBlockSouth, tint, true)
	if err != nil {
		return nil, err
	}
	top, err := rs.face("grass_block_top", AspectBlockTop, tint, true)
	if err != nil {
		return nil, err
	}

	east := canvas.NewBuf[Rgba8](SpriteSize, SpriteSize)
	canvas.OverlayRgba(east, dirtEast, 0, 0)
	canvas.OverlayRgba(east, overlayEast, 0, 0)

	south := canvas.NewBuf[Rgba8](SpriteSize, SpriteSize)
	canvas.OverlayRgba(south, dirtSouth, 0, 0)
	canvas.OverlayRgba(south, overlaySouth, 0, 0)

	return &Sprite{Layers: []SpriteLayer{
		{Pixels: east.Pixels(), Mode: ModeSolidEast},
		{Pixels: south.Pixels(), Mode: ModeSolidSouth},
		{Pixels: top.Pixels(), Mode: ModeSolidTop},
	}}, nil
}

// vineFaces enumerates the Vine rule's boolean face properties in a
// fixed order and the aspect + mode each projects onto.
var vineFaces = []struct {
	property string
	aspect   Aspect
	mode     RenderMode
}{
	{"up", AspectBlockTop, ModeTranslucent},
	{"down", AspectBlockBottom, ModeTranslucent},
	{"north", AspectBlockNorth, ModeTranslucent},
	{"south", AspectBlockSouth, ModeTranslucent},
	{"east", AspectBlockEast, ModeTranslucent},
	{"west", AspectBlockWest, ModeTranslucent},
}

func (rs *RuleSet) buildVine(texture string, state anvil.BlockState, tint Rgb8, hasTint bool) (*Sprite, error) {
	var layers []SpriteLayer
	for _, vf := range vineFaces {
		v, ok := state.Properties.Get(vf.property)
		if !ok || v != "true" {
			continue
		}
		face, err := rs.face(texture, vf.aspect, tint, hasTint)
		if err != nil {
			return nil, err
		}
		layers = append(layers, SpriteLayer{Pixels: face.Pixels(), Mode: vf.mode})
	}
	return &Sprite{Layers: layers}, nil
}

func (rs *RuleSet) buildWater(flowTexture, stillTexture string, tint Rgb8) (*Sprite, error) {
	if flowTexture == "" {
		flowTexture = "water_flow"
	}
	if stillTexture == "" {
		stillTexture = "water_still"
	}
	east, err := rs.face(flowTexture, AspectBlockEast, tint, true)
	if err != nil {
		return nil, err
	}
	south, err := rs.face(flowTexture, AspectBlockSouth, tint, true)
	if err != nil {
		return nil, err
	}
	top, err := rs.face(stillTexture, AspectBlockTop, tint, true)
	if err != nil {
		return nil, err
	}
	return &Sprite{Layers: []SpriteLayer{
		{Pixels: east.Pixels(), Mode: ModeTranslucentEast},
		{Pixels: south.Pixels(), Mode: ModeTranslucentSouth},
		{Pixels: top.Pixels(), Mode: ModeTranslucentTop},
	}}, nil
}

// cropTextureName resolves a Crop rule's texture: the rule's literal
// Texture when configured, otherwise the block's own short name
// suffixed with its "age" property (e.g. "wheat_stage3"), built with
// TextureName so growth-stage crops don't need one AssetRule per age.
func cropTextureName(rule AssetRule, state anvil.BlockState) string {
	if rule.Texture != "" {
		return rule.Texture
	}
	return NewTextureName().ShortName().Literal("_stage").Property("age").Resolve(state)
}

// buildCrop composes the twelve-piece "#" shape sliced from the South
// and East partial sprites, per spec.md §8.5.
func (rs *RuleSet) buildCrop(texture string) (*Sprite, error) {
	south, err := rs.face(texture, AspectBlockSouth, Rgb8{}, false)
	if err != nil {
		return nil, err
	}
	east, err := rs.face(texture, AspectBlockEast, Rgb8{}, false)
	if err != nil {
		return nil, err
	}

	type subRect struct{ left, top, w, h int }
	rects := map[string]subRect{
		"south_back":  {0, 6, 2, 13},
		"south_mid":   {2, 7, 8, 16},
		"south_front": {10, 11, 2, 13},
		"east_back":   {22, 6, 2, 13},
		"east_mid":    {14, 7, 8, 16},
		"east_front":  {12, 11, 2, 13},
	}
	type placement struct {
		src    string
		ox, oy int
	}
	placements := []placement{
		{"south_back", 10, 1},
		{"east_back", 12, 1},
		{"south_mid", 2, 5},
		{"south_front", 4, 2},
		{"east_front", 12, 2},
		{"east_mid", 20, 5},
		{"south_mid", 2, 6},
		{"south_front", 4, 6},
		{"east_front", 12, 6},
		{"east_mid", 20, 6},
		{"south_back", 10, 10},
		{"east_back", 12, 10},
	}

	composed := canvas.NewBuf[Rgba8](SpriteSize, SpriteSize)
	for _, p := range placements {
		r := rects[p.src]
		var root canvas.Image[Rgba8] = south
		if p.src[0] == 'e' {
			root = east
		}
		view := canvas.NewView[Rgba8](root, r.left, r.top, r.w, r.h)
		canvas.OverlayRgba(composed, view, p.ox, p.oy)
	}
	return &Sprite{Layers: []SpriteLayer{{Pixels: composed.Pixels(), Mode: ModeTranslucent}}}, nil
}
