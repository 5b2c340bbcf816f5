package region

import (
	"fmt"

	"github.com/go-mclib/protocol/chunk"
	"github.com/go-mclib/protocol/nbt"
)

// BlockRegistry maps between global block state ids and their (name,
// properties) definitions, the way the on-disk NBT schema stores palette
// entries. The registry of actual block/item/entity metadata is an external
// per-version data table outside this package's scope; callers supply
// their own implementation (or NopRegistry for round-tripping opaque ids).
type BlockRegistry interface {
	NameForState(state int32) (name string, properties map[string]string, ok bool)
	StateForName(name string, properties map[string]string) (state int32, ok bool)
}

// NopRegistry treats state ids as their own "minecraft:<id>" name with no
// properties, sufficient for round-tripping a region file without access to
// a real per-version block table.
type NopRegistry struct{}

func (NopRegistry) NameForState(state int32) (string, map[string]string, bool) {
	return fmt.Sprintf("minecraft:%d", state), nil, true
}

func (NopRegistry) StateForName(name string, _ map[string]string) (int32, bool) {
	var id int32
	if _, err := fmt.Sscanf(name, "minecraft:%d", &id); err != nil {
		return 0, false
	}
	return id, true
}

// ChunkToNBT serializes col's sections/biomes/heightmaps/block entities into
// the on-disk per-column NBT schema. DataVersion and Status come from the
// dataVersion and status arguments; every key of preserved that the column
// encoding does not itself set is copied over verbatim.
func ChunkToNBT(col *chunk.ChunkColumn, reg BlockRegistry, dataVersion int32, status string, preserved nbt.Compound) nbt.Compound {
	root := nbt.NewCompound()
	root.Set("DataVersion", nbt.Int(dataVersion))
	root.Set("xPos", nbt.Int(col.X))
	root.Set("zPos", nbt.Int(col.Z))
	root.Set("yPos", nbt.Int(col.MinY>>4))
	root.Set("Status", nbt.String(status))

	sections := make([]nbt.Tag, 0, col.NumSections)
	for i := 0; i < col.NumSections; i++ {
		sectionY := int8(col.MinY>>4) + int8(i)
		sections = append(sections, encodeSectionNBT(sectionY, col.Sections[i], col.Biomes[i], reg))
	}
	root.Set("sections", nbt.List{ElemType: nbt.TagCompound, Items: sections})

	if col.Heightmaps.Len() > 0 {
		root.Set("Heightmaps", col.Heightmaps)
	}

	entities := make([]nbt.Tag, 0, len(col.BlockEntities))
	for key, be := range col.BlockEntities {
		lx, y, lz, err := parseBlockEntityKey(key)
		if err != nil {
			continue
		}
		entry := nbt.NewCompound()
		entry.Set("x", nbt.Int(col.X*16+int32(lx)))
		entry.Set("y", nbt.Int(y))
		entry.Set("z", nbt.Int(col.Z*16+int32(lz)))
		for _, k := range be.Keys() {
			v, _ := be.Get(k)
			entry.Set(k, v)
		}
		entities = append(entities, entry)
	}
	root.Set("block_entities", nbt.List{ElemType: nbt.TagCompound, Items: entities})

	if preserved.Len() > 0 {
		for _, k := range preserved.Keys() {
			if _, exists := root.Get(k); exists {
				continue
			}
			v, _ := preserved.Get(k)
			root.Set(k, v)
		}
	}
	return root
}

func encodeSectionNBT(sectionY int8, section *chunk.ChunkSection, biomes *chunk.BiomeSection, reg BlockRegistry) nbt.Compound {
	c := nbt.NewCompound()
	c.Set("Y", nbt.Byte(sectionY))
	c.Set("block_states", encodePaletteNBT(section.BlockStates, reg))
	c.Set("biomes", encodeBiomePaletteNBT(biomes.Biomes, reg))
	return c
}

func encodePaletteNBT(p *chunk.PaletteContainer, reg BlockRegistry) nbt.Compound {
	c := nbt.NewCompound()
	seen := map[int32]int{}
	var palette []nbt.Tag
	indices := make([]int32, p.Len())
	for i := 0; i < p.Len(); i++ {
		state := p.Get(i)
		idx, ok := seen[state]
		if !ok {
			idx = len(palette)
			seen[state] = idx
			name, props, ok := reg.NameForState(state)
			if !ok {
				name = fmt.Sprintf("minecraft:%d", state)
			}
			entry := nbt.NewCompound()
			entry.Set("Name", nbt.String(name))
			if len(props) > 0 {
				propsTag := nbt.NewCompound()
				for k, v := range props {
					propsTag.Set(k, nbt.String(v))
				}
				entry.Set("Properties", propsTag)
			}
			palette = append(palette, entry)
		}
		indices[i] = int32(idx)
	}
	c.Set("palette", nbt.List{ElemType: nbt.TagCompound, Items: palette})
	if len(palette) > 1 {
		// Vanilla floors block-state storage at 4 bits per index even for
		// tiny palettes.
		bits := chunk.NeededBits(int32(len(palette) - 1))
		if bits < 4 {
			bits = 4
		}
		ba := chunk.NewBitArray(bits, len(indices))
		for i, v := range indices {
			ba.Set(i, uint64(v))
		}
		longs := ba.Longs()
		data := make(nbt.LongArray, len(longs))
		for i, w := range longs {
			data[i] = int64(w)
		}
		c.Set("data", data)
	}
	return c
}

func encodeBiomePaletteNBT(p *chunk.PaletteContainer, reg BlockRegistry) nbt.Compound {
	c := nbt.NewCompound()
	seen := map[int32]int{}
	var palette []nbt.Tag
	indices := make([]int32, p.Len())
	for i := 0; i < p.Len(); i++ {
		biome := p.Get(i)
		idx, ok := seen[biome]
		if !ok {
			idx = len(palette)
			seen[biome] = idx
			name, _, ok := reg.NameForState(biome)
			if !ok {
				name = fmt.Sprintf("minecraft:%d", biome)
			}
			palette = append(palette, nbt.String(name))
		}
		indices[i] = int32(idx)
	}
	c.Set("palette", nbt.List{ElemType: nbt.TagString, Items: palette})
	if len(palette) > 1 {
		bits := chunk.NeededBits(int32(len(palette) - 1))
		if bits < 1 {
			bits = 1
		}
		ba := chunk.NewBitArray(bits, len(indices))
		for i, v := range indices {
			ba.Set(i, uint64(v))
		}
		longs := ba.Longs()
		data := make(nbt.LongArray, len(longs))
		for i, w := range longs {
			data[i] = int64(w)
		}
		c.Set("data", data)
	}
	return c
}

// NBTToChunk parses the per-column NBT schema back into a ChunkColumn.
func NBTToChunk(root nbt.Compound, reg BlockRegistry) (*chunk.ChunkColumn, error) {
	xPos, _ := root.Get("xPos")
	zPos, _ := root.Get("zPos")
	yPos, _ := root.Get("yPos")
	x, _ := xPos.(nbt.Int)
	z, _ := zPos.(nbt.Int)
	minSectionY, _ := yPos.(nbt.Int)

	sectionsTag, ok := root.Get("sections")
	if !ok {
		return nil, fmt.Errorf("region: chunk nbt missing sections")
	}
	sectionsList, ok := sectionsTag.(nbt.List)
	if !ok {
		return nil, fmt.Errorf("region: sections is not a list")
	}

	col := chunk.NewChunkColumn(int32(x), int32(z), int32(minSectionY)*16, len(sectionsList.Items))
	for i, item := range sectionsList.Items {
		sc, ok := item.(nbt.Compound)
		if !ok {
			return nil, fmt.Errorf("region: section %d is not a compound", i)
		}
		if err := decodeSectionNBT(col, i, sc, reg); err != nil {
			return nil, fmt.Errorf("region: section %d: %w", i, err)
		}
	}

	if hm, ok := root.Get("Heightmaps"); ok {
		if compound, ok := hm.(nbt.Compound); ok {
			col.Heightmaps = compound
		}
	}
	if be, ok := root.Get("block_entities"); ok {
		if list, ok := be.(nbt.List); ok {
			for _, item := range list.Items {
				compound, ok := item.(nbt.Compound)
				if !ok {
					continue
				}
				xTag, _ := compound.Get("x")
				yTag, _ := compound.Get("y")
				zTag, _ := compound.Get("z")
				bx, _ := xTag.(nbt.Int)
				by, _ := yTag.(nbt.Int)
				bz, _ := zTag.(nbt.Int)
				rest := nbt.NewCompound()
				for _, k := range compound.Keys() {
					if k == "x" || k == "y" || k == "z" {
						continue
					}
					v, _ := compound.Get(k)
					rest.Set(k, v)
				}
				col.BlockEntities[chunk.BlockEntityKey(int(bx), int32(by), int(bz))] = rest
			}
		}
	}
	return col, nil
}

// parseBlockEntityKey reverses chunk.BlockEntityKey's "x,y,z" encoding.
func parseBlockEntityKey(key string) (x int, y int32, z int, err error) {
	var xi, yi, zi int64
	n, err := fmt.Sscanf(key, "%d,%d,%d", &xi, &yi, &zi)
	if err != nil || n != 3 {
		return 0, 0, 0, fmt.Errorf("region: malformed block entity key %q", key)
	}
	return int(xi), int32(yi), int(zi), nil
}

func decodeSectionNBT(col *chunk.ChunkColumn, index int, sc nbt.Compound, reg BlockRegistry) error {
	blockStatesTag, ok := sc.Get("block_states")
	if !ok {
		return fmt.Errorf("missing block_states")
	}
	blockStates, ok := blockStatesTag.(nbt.Compound)
	if !ok {
		return fmt.Errorf("block_states is not a compound")
	}
	states, err := decodePaletteNBT(blockStates, reg, sectionCellsForNBT, 4, 8, 15)
	if err != nil {
		return fmt.Errorf("block_states: %w", err)
	}
	col.Sections[index] = chunk.NewChunkSectionFromPalette(states)

	biomesTag, ok := sc.Get("biomes")
	if !ok {
		return fmt.Errorf("missing biomes")
	}
	biomesCompound, ok := biomesTag.(nbt.Compound)
	if !ok {
		return fmt.Errorf("biomes is not a compound")
	}
	biomes, err := decodePaletteNBT(biomesCompound, reg, biomeCellsForNBT, 1, 3, 6)
	if err != nil {
		return fmt.Errorf("biomes: %w", err)
	}
	col.Biomes[index] = &chunk.BiomeSection{Biomes: biomes}
	return nil
}

const (
	sectionCellsForNBT = 4096
	biomeCellsForNBT   = 64
)

func decodePaletteNBT(c nbt.Compound, reg BlockRegistry, cells, minBits, maxBits, globalBits int) (*chunk.PaletteContainer, error) {
	paletteTag, ok := c.Get("palette")
	if !ok {
		return nil, fmt.Errorf("missing palette")
	}
	paletteList, ok := paletteTag.(nbt.List)
	if !ok {
		return nil, fmt.Errorf("palette is not a list")
	}

	globalIDs := make([]int32, len(paletteList.Items))
	for i, item := range paletteList.Items {
		var name string
		var props map[string]string
		switch v := item.(type) {
		case nbt.Compound:
			nameTag, _ := v.Get("Name")
			if s, ok := nameTag.(nbt.String); ok {
				name = string(s)
			}
			if propsTag, ok := v.Get("Properties"); ok {
				if propsCompound, ok := propsTag.(nbt.Compound); ok {
					props = make(map[string]string)
					for _, k := range propsCompound.Keys() {
						val, _ := propsCompound.Get(k)
						if s, ok := val.(nbt.String); ok {
							props[k] = string(s)
						}
					}
				}
			}
		case nbt.String:
			name = string(v)
		}
		state, ok := reg.StateForName(name, props)
		if !ok {
			state = 0
		}
		globalIDs[i] = state
	}

	if len(globalIDs) == 0 {
		return chunk.NewPaletteContainer(cells, minBits, maxBits, globalBits, 0), nil
	}
	p := chunk.NewPaletteContainer(cells, minBits, maxBits, globalBits, globalIDs[0])
	if len(globalIDs) == 1 {
		return p, nil
	}

	dataTag, hasData := c.Get("data")
	if !hasData {
		return p, nil
	}
	longArray, ok := dataTag.(nbt.LongArray)
	if !ok {
		return nil, fmt.Errorf("data is not a long array")
	}
	bits := chunk.NeededBits(int32(len(globalIDs) - 1))
	if bits < minBits {
		bits = minBits
	}
	longs := make([]uint64, len(longArray))
	for i, v := range longArray {
		longs[i] = uint64(v)
	}
	ba := chunk.NewBitArrayFromLongs(bits, cells, longs)
	for i := 0; i < cells; i++ {
		idx := int(ba.Get(i))
		var state int32
		if idx >= 0 && idx < len(globalIDs) {
			state = globalIDs[idx]
		}
		p.Set(i, state)
	}
	return p, nil
}
