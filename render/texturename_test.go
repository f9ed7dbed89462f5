package render

import (
	"testing"

	"github.com/df-mc/isorender/anvil"
	"github.com/df-mc/isorender/proplist"
	"github.com/stretchr/testify/assert"
)

func TestTextureNameBuilder(t *testing.T) {
	state := anvil.BlockState{
		Name:       "minecraft:wheat",
		Properties: proplist.FromMap(map[string]string{"age": "3"}),
	}

	name := NewTextureName().ShortName().Literal("_stage").Property("age").Resolve(state)
	assert.Equal(t, "wheat_stage3", name)
}

func TestTextureNamePropertyMap(t *testing.T) {
	state := anvil.BlockState{
		Name:       "minecraft:redstone_wire",
		Properties: proplist.FromMap(map[string]string{"power": "0"}),
	}
	table := map[string]string{"0": "redstone_dust_dot", "15": "redstone_dust_overlay"}

	name := NewTextureName().PropertyMap("power", table).Resolve(state)
	assert.Equal(t, "redstone_dust_dot", name)
}

func TestTextureNamePropertyMissingIsEmpty(t *testing.T) {
	state := anvil.BlockState{Name: "minecraft:stone"}
	name := NewTextureName().Literal("stone_").Property("missing").Resolve(state)
	assert.Equal(t, "stone_", name)
}

func TestCropTextureNameFallsBackToAge(t *testing.T) {
	state := anvil.BlockState{
		Name:       "minecraft:wheat",
		Properties: proplist.FromMap(map[string]string{"age": "7"}),
	}
	assert.Equal(t, "wheat_stage7", cropTextureName(AssetRule{}, state))
	assert.Equal(t, "carrots", cropTextureName(AssetRule{Texture: "carrots"}, state))
}
