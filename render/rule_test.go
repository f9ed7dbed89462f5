package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df-mc/isorender/anvil"
	"github.com/df-mc/isorender/proplist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTexture writes a flat-coloured 16x16 PNG at
// <assetsPath>/minecraft/textures/block/<name>.png, as a stand-in for a
// real resource pack texture.
func writeTexture(t *testing.T, assetsPath, name string, c color.RGBA) {
	t.Helper()
	dir := filepath.Join(assetsPath, "minecraft", "textures", "block")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	img := image.NewRGBA(image.Rect(0, 0, TextureSize, TextureSize))
	for y := 0; y < TextureSize; y++ {
		for x := 0; x < TextureSize; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, name+".png"))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestRuleSet(t *testing.T, settings Settings) *RuleSet {
	t.Helper()
	assetsPath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assetsPath, ".mcassetsroot"), nil, 0o644))

	for _, name := range []string{"stone", "dirt", "grass_block_top", "grass_block_side_overlay", "oak_leaves", "wheat_stage3"} {
		writeTexture(t, assetsPath, name, color.RGBA{R: 100, G: 150, B: 50, A: 255})
	}
	settings.AssetsPath = assetsPath

	textures := NewTextureCache(assetsPath)
	partials := NewPartialSpriteCache(textures)
	return NewRuleSet(settings, textures, partials)
}

func blockInfo(name string, props map[string]string, biome string) anvil.BlockInfo {
	state := anvil.BlockState{Name: name, Properties: proplist.FromMap(props)}
	return anvil.BlockInfo{State: &state, Biome: biome}
}

func TestResolveSolidUniform(t *testing.T) {
	rs := newTestRuleSet(t, Settings{AssetRules: map[string]AssetRule{
		"stone": {Kind: KindSolidUniform, Texture: "stone"},
	}})

	sprite, err := rs.Resolve(blockInfo("minecraft:stone", nil, ""), BlockContext{})
	require.NoError(t, err)
	require.NotNil(t, sprite)
	assert.Len(t, sprite.Layers, 3)
}

func TestResolveNothingReturnsNilSprite(t *testing.T) {
	rs := newTestRuleSet(t, Settings{AssetRules: map[string]AssetRule{
		"air": {Kind: KindNothing},
	}})
	sprite, err := rs.Resolve(blockInfo("minecraft:air", nil, ""), BlockContext{})
	require.NoError(t, err)
	assert.Nil(t, sprite)
}

func TestResolveUnconfiguredBlockReturnsNilSprite(t *testing.T) {
	rs := newTestRuleSet(t, Settings{AssetRules: map[string]AssetRule{}})
	sprite, err := rs.Resolve(blockInfo("minecraft:bedrock", nil, ""), BlockContext{})
	require.NoError(t, err)
	assert.Nil(t, sprite)
}

func TestResolveIsMemoizedByStateAndBiome(t *testing.T) {
	rs := newTestRuleSet(t, Settings{AssetRules: map[string]AssetRule{
		"grass_block": {Kind: KindGrass, TintCategory: "grass"},
	}, BiomeColors: BiomeColors{Grass: map[string]RGB{"_default": {R: 90, G: 180, B: 70}}}})

	a, err := rs.Resolve(blockInfo("minecraft:grass_block", nil, "minecraft:plains"), BlockContext{})
	require.NoError(t, err)
	b, err := rs.Resolve(blockInfo("minecraft:grass_block", nil, "minecraft:plains"), BlockContext{})
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := rs.Resolve(blockInfo("minecraft:grass_block", nil, "minecraft:desert"), BlockContext{})
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestResolveSolidTopSideUnknownAxis(t *testing.T) {
	rs := newTestRuleSet(t, Settings{AssetRules: map[string]AssetRule{
		"log": {Kind: KindSolidTopSide, TopTexture: "stone", SideTexture: "dirt"},
	}})
	_, err := rs.Resolve(blockInfo("minecraft:log", map[string]string{"axis": "q"}, ""), BlockContext{})
	assert.ErrorIs(t, err, ErrUnknownAxis)
}

func TestResolveCropUsesAgeFallbackTexture(t *testing.T) {
	rs := newTestRuleSet(t, Settings{AssetRules: map[string]AssetRule{
		"wheat": {Kind: KindCrop},
	}})
	sprite, err := rs.Resolve(blockInfo("minecraft:wheat", map[string]string{"age": "3"}, ""), BlockContext{})
	require.NoError(t, err)
	require.NotNil(t, sprite)
	assert.Len(t, sprite.Layers, 1)
}

func TestResolveVineOnlyEmitsTrueFaces(t *testing.T) {
	rs := newTestRuleSet(t, Settings{AssetRules: map[string]AssetRule{
		"vine": {Kind: KindVine, Texture: "oak_leaves"},
	}})
	sprite, err := rs.Resolve(blockInfo("minecraft:vine", map[string]string{
		"up": "true", "south": "true", "north": "false", "east": "false", "west": "false", "down": "false",
	}, ""), BlockContext{})
	require.NoError(t, err)
	assert.Len(t, sprite.Layers, 2)
}

func TestRelevantPropertiesMatchesConfiguredRule(t *testing.T) {
	rs := newTestRuleSet(t, Settings{AssetRules: map[string]AssetRule{
		"log": {Kind: KindSolidTopSide, RelevantProperties: []string{"axis"}},
	}})
	props := rs.RelevantProperties("minecraft:log")
	_, ok := props["axis"]
	assert.True(t, ok)
	assert.Nil(t, rs.RelevantProperties("minecraft:unconfigured"))
}
