package render

// Settings is the opaque configuration object the core reads (spec.md
// §1 non-goals: config loading from TOML is an external collaborator's
// job). It carries `toml:"..."` struct tags so an external loader can
// decode a TOML file directly into it with
// `github.com/pelletier/go-toml`'s Unmarshal, matching that library's
// tag convention, without this package performing the decoding itself.
type Settings struct {
	AssetsPath      string              `toml:"assets_path"`
	BackgroundColor RGB                 `toml:"background_color"`
	AssetRules      map[string]AssetRule `toml:"asset_rules"`
	BiomeColors     BiomeColors         `toml:"biome_colors"`
	ChunkCacheSize  int                 `toml:"chunk_cache_size"`
}

// RGB is a plain 0-255 triple, the TOML-decodable counterpart of
// canvas.Rgb8 (kept distinct so this package's config surface has no
// dependency on the pixel engine's internal array-based type).
type RGB struct {
	R uint8 `toml:"r"`
	G uint8 `toml:"g"`
	B uint8 `toml:"b"`
}

func (c RGB) toRgb8() Rgb8 { return Rgb8{c.R, c.G, c.B} }

// AssetRule is the TOML-decodable shape of one render rule (spec.md
// §4.4's tagged variant, flattened for config decoding). Kind selects
// which of the fields below are meaningful; unused fields for a given
// kind are simply left zero.
type AssetRule struct {
	Kind Kind `toml:"kind"`

	// SolidUniform, Leaves, Plant, Crop, Vine: the block's own texture.
	Texture string `toml:"texture,omitempty"`
	// SolidTopSide: the top and side textures.
	TopTexture  string `toml:"top_texture,omitempty"`
	SideTexture string `toml:"side_texture,omitempty"`
	// Water: the flowing texture used for the east and south faces
	// (default "water_flow"); Texture then names the still top texture
	// (default "water_still"). Grass uses fixed texture names and reads
	// neither field.
	FlowTexture string `toml:"flow_texture,omitempty"`

	// Biome-aware rules: which biome-colour table to draw the tint from
	// ("grass", "foliage", "water"). Empty means "not biome-aware".
	TintCategory string `toml:"tint_category,omitempty"`

	// RelevantProperties lists the NBT property keys this rule's
	// rendering depends on, used for property filtering during chunk
	// parsing (spec.md §4.1 "Property filtering").
	RelevantProperties []string `toml:"relevant_properties,omitempty"`
}

// Kind names one of the eight render-rule tag variants (spec.md §4.4),
// plus Nothing.
type Kind string

const (
	KindNothing      Kind = "nothing"
	KindSolidUniform Kind = "solid_uniform"
	KindSolidTopSide Kind = "solid_top_side"
	KindLeaves       Kind = "leaves"
	KindPlant        Kind = "plant"
	KindCrop         Kind = "crop"
	KindGrass        Kind = "grass"
	KindVine         Kind = "vine"
	KindWater        Kind = "water"
)

// BiomeColors holds the named tint tables (spec.md §6): each category
// maps a biome name to an RGB colour, with "_default" as the fallback
// for biomes absent from the table.
type BiomeColors struct {
	Grass   map[string]RGB `toml:"grass"`
	Foliage map[string]RGB `toml:"foliage"`
	Water   map[string]RGB `toml:"water"`
}

// Resolve looks up the tint colour for category and biome, falling back
// to "_default", and finally to opaque white if even that is absent.
func (b BiomeColors) Resolve(category, biome string) Rgb8 {
	table := b.table(category)
	if table == nil {
		return Rgb8{255, 255, 255}
	}
	if c, ok := table[biome]; ok {
		return c.toRgb8()
	}
	if c, ok := table["_default"]; ok {
		return c.toRgb8()
	}
	return Rgb8{255, 255, 255}
}

func (b BiomeColors) table(category string) map[string]RGB {
	switch category {
	case "grass":
		return b.Grass
	case "foliage":
		return b.Foliage
	case "water":
		return b.Water
	default:
		return nil
	}
}
