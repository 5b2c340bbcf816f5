package region

import (
	"testing"

	"github.com/go-mclib/protocol/chunk"
	"github.com/go-mclib/protocol/nbt"
)

func TestChunkToNBTRoundTripWithBiomesAndBlockEntities(t *testing.T) {
	col := chunk.NewChunkColumn(-2, 1, -64, 24)
	for i := int32(0); i < 20; i++ {
		col.SetBlockState(int(i%16), 64+i, int(i%16), i+1)
	}
	col.SetBiome(0, 64, 0, 3)
	col.SetBiome(1, 68, 1, 7)

	sign := nbt.NewCompound()
	sign.Set("id", nbt.String("minecraft:sign"))
	sign.Set("Text1", nbt.String("hello"))
	col.BlockEntities[chunk.BlockEntityKey(4, 70, 9)] = sign

	root := ChunkToNBT(col, NopRegistry{}, 4189, "full", nbt.Compound{})
	if v, _ := root.Get("xPos"); v != nbt.Int(-2) {
		t.Fatalf("xPos = %v, want -2", v)
	}
	if v, _ := root.Get("Status"); v != nbt.String("full") {
		t.Fatalf("Status = %v, want full", v)
	}

	got, err := NBTToChunk(root, NopRegistry{})
	if err != nil {
		t.Fatalf("NBTToChunk: %v", err)
	}
	if got.X != -2 || got.Z != 1 {
		t.Fatalf("got column (%d,%d), want (-2,1)", got.X, got.Z)
	}
	for i := int32(0); i < 20; i++ {
		want := i + 1
		if got := got.GetBlockState(int(i%16), 64+i, int(i%16)); got != want {
			t.Fatalf("block at y=%d: got %d, want %d", 64+i, got, want)
		}
	}
	if b := got.GetBiome(0, 64, 0); b != 3 {
		t.Fatalf("biome at (0,64,0) = %d, want 3", b)
	}
	if b := got.GetBiome(1, 68, 1); b != 7 {
		t.Fatalf("biome at (1,68,1) = %d, want 7", b)
	}

	be, ok := got.BlockEntities[chunk.BlockEntityKey(4, 70, 9)]
	if !ok {
		t.Fatalf("expected block entity at (4,70,9)")
	}
	if v, _ := be.Get("id"); v != nbt.String("minecraft:sign") {
		t.Fatalf("block entity id = %v, want minecraft:sign", v)
	}
	if v, _ := be.Get("Text1"); v != nbt.String("hello") {
		t.Fatalf("block entity Text1 = %v, want hello", v)
	}
}

func TestChunkToNBTAllAirSection(t *testing.T) {
	col := chunk.NewChunkColumn(0, 0, -64, 24)
	root := ChunkToNBT(col, NopRegistry{}, 4189, "full", nbt.Compound{})
	got, err := NBTToChunk(root, NopRegistry{})
	if err != nil {
		t.Fatalf("NBTToChunk: %v", err)
	}
	if state := got.GetBlockState(5, 0, 5); state != 0 {
		t.Fatalf("got block state %d, want 0", state)
	}
	if !got.Sections[0].IsEmpty() {
		t.Fatalf("expected all-air section to report empty")
	}
}
