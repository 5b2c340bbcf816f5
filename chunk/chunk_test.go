package chunk

import (
	"bytes"
	"testing"
)

func TestBitArrayGetSetRoundTrip(t *testing.T) {
	ba := NewBitArray(5, 100)
	for i := 0; i < 100; i++ {
		ba.Set(i, uint64(i%31))
	}
	for i := 0; i < 100; i++ {
		if got := ba.Get(i); got != uint64(i%31) {
			t.Fatalf("index %d: got %d, want %d", i, got, i%31)
		}
	}
}

func TestBitArrayResizePreservesValues(t *testing.T) {
	ba := NewBitArray(4, 16)
	for i := 0; i < 16; i++ {
		ba.Set(i, uint64(i))
	}
	resized := ba.Resize(8)
	for i := 0; i < 16; i++ {
		if got := resized.Get(i); got != uint64(i) {
			t.Fatalf("index %d: got %d, want %d", i, got, i)
		}
	}
}

func TestPaletteContainerPromotionPath(t *testing.T) {
	p := NewPaletteContainer(4096, 4, 8, 15, 0)

	p.Set(0, 7)
	if p.kind != kindIndirect {
		t.Fatalf("expected promotion to indirect after first distinct set, got kind %d", p.kind)
	}
	if got := p.Get(0); got != 7 {
		t.Fatalf("Get(0) = %d, want 7", got)
	}
	if got := p.Get(1); got != 0 {
		t.Fatalf("Get(1) = %d, want 0 (untouched cell)", got)
	}

	for i := int32(0); i < 300; i++ {
		p.Set(int(i), i+1)
	}
	if p.kind != kindDirect {
		t.Fatalf("expected promotion to direct after exceeding maxBits palette capacity, got kind %d", p.kind)
	}
	if got := p.Get(299); got != 300 {
		t.Fatalf("Get(299) after direct promotion = %d, want 300", got)
	}
}

func TestPaletteContainerSingleNoop(t *testing.T) {
	p := NewPaletteContainer(4096, 4, 8, 15, 5)
	p.Set(0, 5)
	if p.kind != kindSingle {
		t.Fatalf("setting the existing single value should not promote")
	}
}

func TestPaletteContainerEncodeDecodeSingle(t *testing.T) {
	p := NewPaletteContainer(64, 4, 8, 15, 9)
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := DecodePaletteContainer(&buf, 64, 4, 8, 15)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Get(10) != 9 {
		t.Fatalf("decoded.Get(10) = %d, want 9", decoded.Get(10))
	}
}

func TestPaletteContainerEncodeDecodeIndirect(t *testing.T) {
	p := NewPaletteContainer(64, 4, 8, 15, 0)
	p.Set(0, 1)
	p.Set(1, 2)
	p.Set(2, 3)

	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := DecodePaletteContainer(&buf, 64, 4, 8, 15)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, want := range []int32{1, 2, 3} {
		if got := decoded.Get(i); got != want {
			t.Fatalf("decoded.Get(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestChunkSectionBlockCountTracking(t *testing.T) {
	s := NewChunkSection()
	if !s.IsEmpty() {
		t.Fatalf("fresh section should be empty")
	}
	s.SetBlockState(0, 0, 0, 42)
	if s.IsEmpty() || s.SolidBlockCount() != 1 {
		t.Fatalf("expected solid count 1, got %d", s.SolidBlockCount())
	}
	s.SetBlockState(0, 0, 0, 0)
	if !s.IsEmpty() {
		t.Fatalf("expected section empty again after clearing the only block")
	}
}

func TestChunkColumnBlockAndBiomeAccess(t *testing.T) {
	col := NewChunkColumn(0, 0, -64, 24)
	col.SetBlockState(1, -60, 2, 55)
	if got := col.GetBlockState(1, -60, 2); got != 55 {
		t.Fatalf("GetBlockState = %d, want 55", got)
	}
	if got := col.GetBlockState(1, 100, 2); got != 0 {
		t.Fatalf("GetBlockState outside section should be 0, got %d", got)
	}
	col.SetBiome(1, -15, 2, 7)
	if got := col.GetBiome(1, -15, 2); got != 7 {
		t.Fatalf("GetBiome = %d, want 7", got)
	}
}

func TestChunkColumnLightPresenceMask(t *testing.T) {
	col := NewChunkColumn(0, 0, -64, 24)
	if got := col.GetBlockLight(0, -64, 0); got != 0 {
		t.Fatalf("expected unset light slot to read 0, got %d", got)
	}
	col.SetBlockLight(0, -64, 0, 12)
	if got := col.GetBlockLight(0, -64, 0); got != 12 {
		t.Fatalf("GetBlockLight = %d, want 12", got)
	}
	if !col.blockLightSet[col.lightSlot(-64)] {
		t.Fatalf("expected presence mask set after a non-zero light write")
	}
}

func TestChunkColumnEncodeDecodeRoundTrip(t *testing.T) {
	col := NewChunkColumn(3, -2, -64, 24)
	col.SetBlockState(1, -64, 1, 10)
	col.SetBlockState(5, 50, 5, 20)

	var buf bytes.Buffer
	if err := col.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := DecodeChunkColumn(&buf, 3, -2, -64, 24)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := decoded.GetBlockState(1, -64, 1); got != 10 {
		t.Fatalf("decoded.GetBlockState(1,-64,1) = %d, want 10", got)
	}
	if got := decoded.GetBlockState(5, 50, 5); got != 20 {
		t.Fatalf("decoded.GetBlockState(5,50,5) = %d, want 20", got)
	}
}
