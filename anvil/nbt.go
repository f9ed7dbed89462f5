package anvil

// nbtChunk mirrors the fields of a decompressed Anvil chunk NBT document
// that this decoder needs. Decoded with github.com/sandertv/gophertunnel's
// nbt package, the same struct-tag decoding style the teacher uses
// throughout server/world/block_state.go and server/world/mcdb/db.go, but
// against the big-endian encoding Anvil chunks are written in (gophertunnel's
// default nbt.NewDecoder, unlike the LittleEndian/NetworkLittleEndian
// variants the teacher uses for Bedrock payloads).
type nbtChunk struct {
	XPos     int32         `nbt:"xPos"`
	ZPos     int32         `nbt:"zPos"`
	YPos     int32         `nbt:"yPos"`
	Status   string        `nbt:"Status"`
	Sections []nbtSection  `nbt:"sections"`
}

type nbtSection struct {
	Y           int8            `nbt:"Y"`
	BlockStates nbtBlockStates  `nbt:"block_states"`
	Biomes      nbtBiomes       `nbt:"biomes"`
	BlockLight  []byte          `nbt:"BlockLight,omitempty"`
	SkyLight    []byte          `nbt:"SkyLight,omitempty"`
}

type nbtBlockStates struct {
	Palette []nbtBlockStateEntry `nbt:"palette"`
	Data    []int64              `nbt:"data,omitempty"`
}

type nbtBlockStateEntry struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties,omitempty"`
}

type nbtBiomes struct {
	Palette []string `nbt:"palette"`
	Data    []int64  `nbt:"data,omitempty"`
}
