package anvil

import (
	"bytes"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// unmarshalChunkNBT decodes a decompressed chunk payload into dst using
// gophertunnel's nbt package with its default big-endian encoding, the
// format Anvil chunk NBT is written in (as opposed to the
// LittleEndian/NetworkLittleEndian variants the teacher uses for Bedrock's
// network and disk formats in server/world/block_state.go and
// server/world/mcdb/db.go).
func unmarshalChunkNBT(data []byte, dst *nbtChunk) error {
	return nbt.NewDecoder(bytes.NewReader(data)).Decode(dst)
}
