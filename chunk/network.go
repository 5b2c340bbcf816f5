package chunk

import (
	"fmt"
	"io"

	"github.com/go-mclib/protocol/nbt"
	"github.com/go-mclib/protocol/varint"
)

// BlockEntityRecord is one block entity attached to a chunk data packet:
// packed section-local (x, z), absolute y, a numeric type id, and its NBT
// payload.
type BlockEntityRecord struct {
	X, Z int
	Y    int16
	Type int32
	Data nbt.Tag
}

// DecodeChunkDataPacket parses the body of a Chunk Data and Update Light
// packet's Data field: heightmaps NBT (anonymous/network form), the section
// data length prefix, numSections worth of (ChunkSection, BiomeSection)
// pairs, and the trailing block-entity array.
func DecodeChunkDataPacket(r io.Reader, x, z, minY int32, numSections int) (*ChunkColumn, []BlockEntityRecord, error) {
	nbtReader := nbt.NewReaderFrom(r)
	heightmapsTag, _, err := nbtReader.ReadTag(true)
	if err != nil {
		return nil, nil, fmt.Errorf("chunk: read heightmaps nbt: %w", err)
	}
	col := NewChunkColumn(x, z, minY, numSections)
	if compound, ok := heightmapsTag.(nbt.Compound); ok {
		col.Heightmaps = compound
	}

	br := byteReaderFrom(r)
	dataSize, _, err := varint.ReadVarInt(br)
	if err != nil {
		return nil, nil, fmt.Errorf("chunk: read section data size: %w", err)
	}
	limited := &io.LimitedReader{R: r, N: int64(dataSize)}

	for i := 0; i < numSections && limited.N > 0; i++ {
		section, err := DecodeChunkSection(limited)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk: decode section %d: %w", i, err)
		}
		biomes, err := DecodeBiomeSection(limited)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk: decode biome section %d: %w", i, err)
		}
		col.Sections[i] = section
		col.Biomes[i] = biomes
	}

	beCount, _, err := varint.ReadVarInt(br)
	if err != nil {
		return nil, nil, fmt.Errorf("chunk: read block entity count: %w", err)
	}
	records := make([]BlockEntityRecord, 0, beCount)
	for i := int32(0); i < beCount; i++ {
		var packedXZ [1]byte
		if _, err := io.ReadFull(r, packedXZ[:]); err != nil {
			return nil, nil, fmt.Errorf("chunk: read block entity %d packed xz: %w", i, err)
		}
		var yBuf [2]byte
		if _, err := io.ReadFull(r, yBuf[:]); err != nil {
			return nil, nil, fmt.Errorf("chunk: read block entity %d y: %w", i, err)
		}
		beType, _, err := varint.ReadVarInt(br)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk: read block entity %d type: %w", i, err)
		}
		data, _, err := nbtReader.ReadTag(true)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk: read block entity %d nbt: %w", i, err)
		}
		rec := BlockEntityRecord{
			X:    int(packedXZ[0] >> 4),
			Z:    int(packedXZ[0] & 0x0f),
			Y:    int16(uint16(yBuf[0])<<8 | uint16(yBuf[1])),
			Type: beType,
			Data: data,
		}
		records = append(records, rec)
		if compound, ok := data.(nbt.Compound); ok {
			col.BlockEntities[BlockEntityKey(rec.X, int32(rec.Y), rec.Z)] = compound
		}
	}

	return col, records, nil
}
