package chunk

import (
	"fmt"
	"io"

	"github.com/go-mclib/protocol/varint"
)

// containerKind discriminates a PaletteContainer's current encoding.
type containerKind int

const (
	kindSingle containerKind = iota
	kindIndirect
	kindDirect
)

// PaletteContainer stores a fixed-length array of 32-bit entries (block
// state IDs or biome IDs) using the palette promotion scheme vanilla uses to
// keep memory proportional to the number of distinct values rather than the
// number of cells: single (one value, no data), indirect (a small local
// palette plus a narrow BitArray of palette indices), or direct (a BitArray
// of global IDs, no palette). Promotion from single to indirect to direct is
// one-way.
type PaletteContainer struct {
	kind    containerKind
	minBits int // lower bound for indirect bits-per-value
	maxBits int // above this, direct is used instead
	globalBits int // bits-per-value when direct

	single  int32
	palette []int32 // indirect only
	data    *BitArray
	size    int
}

// NewPaletteContainer returns a single-valued container over size cells. The
// first store of a different value promotes it to indirect (palette indices
// at least minBits wide); once palette indices need more than maxBits it
// promotes to direct (globalBits wide). The block-state config is
// (4, 8, 15); the biome config is (1, 3, 6).
func NewPaletteContainer(size, minBits, maxBits, globalBits int, initial int32) *PaletteContainer {
	return &PaletteContainer{
		kind:       kindSingle,
		minBits:    minBits,
		maxBits:    maxBits,
		globalBits: globalBits,
		single:     initial,
		size:       size,
	}
}

func (p *PaletteContainer) Len() int { return p.size }

// Get returns the value stored at index.
func (p *PaletteContainer) Get(index int) int32 {
	switch p.kind {
	case kindSingle:
		return p.single
	case kindIndirect:
		pi := int(p.data.Get(index))
		if pi < 0 || pi >= len(p.palette) {
			return 0
		}
		return p.palette[pi]
	default: // direct
		return int32(p.data.Get(index))
	}
}

// Set stores value at index, promoting the container's encoding if needed.
func (p *PaletteContainer) Set(index int, value int32) {
	switch p.kind {
	case kindSingle:
		if value == p.single {
			return
		}
		p.promoteToIndirect([]int32{p.single, value})
		p.data.Set(index, 1)
	case kindIndirect:
		pi, ok := p.paletteIndexOf(value)
		if !ok {
			if NeededBits(int32(len(p.palette))) > p.data.BitsPerValue() {
				if p.data.BitsPerValue()+1 > p.maxBits {
					p.promoteToDirect()
					p.data.Set(index, uint64(value))
					return
				}
				p.data = p.data.Resize(p.data.BitsPerValue() + 1)
			}
			pi = len(p.palette)
			p.palette = append(p.palette, value)
		}
		p.data.Set(index, uint64(pi))
	default: // direct
		p.data.Set(index, uint64(value))
	}
}

func (p *PaletteContainer) paletteIndexOf(value int32) (int, bool) {
	for i, v := range p.palette {
		if v == value {
			return i, true
		}
	}
	return 0, false
}

func (p *PaletteContainer) promoteToIndirect(palette []int32) {
	bitsPerValue := p.minBits
	if needed := NeededBits(int32(len(palette) - 1)); needed > bitsPerValue {
		bitsPerValue = needed
	}
	p.kind = kindIndirect
	p.palette = palette
	p.data = NewBitArray(bitsPerValue, p.size)
}

func (p *PaletteContainer) promoteToDirect() {
	old := p.data
	oldPalette := p.palette
	p.data = NewBitArray(p.globalBits, p.size)
	if oldPalette != nil {
		for i := 0; i < p.size; i++ {
			pi := int(old.Get(i))
			var v int32
			if pi >= 0 && pi < len(oldPalette) {
				v = oldPalette[pi]
			}
			p.data.Set(i, uint64(v))
		}
	}
	p.kind = kindDirect
	p.palette = nil
}

// Encode writes the wire form: bitsPerValue:u8, optional palette, and the
// packed data longs.
func (p *PaletteContainer) Encode(w io.Writer) error {
	var bitsPerValue byte
	switch p.kind {
	case kindSingle:
		bitsPerValue = 0
	case kindIndirect:
		bitsPerValue = byte(p.data.BitsPerValue())
	default:
		bitsPerValue = byte(p.globalBits)
	}
	if _, err := w.Write([]byte{bitsPerValue}); err != nil {
		return err
	}

	switch p.kind {
	case kindSingle:
		if err := varint.WriteVarInt(byteWriter{w}, p.single); err != nil {
			return err
		}
		return varint.WriteVarInt(byteWriter{w}, 0)
	case kindIndirect:
		if err := varint.WriteVarInt(byteWriter{w}, int32(len(p.palette))); err != nil {
			return err
		}
		for _, v := range p.palette {
			if err := varint.WriteVarInt(byteWriter{w}, v); err != nil {
				return err
			}
		}
		return p.writeLongs(w)
	default:
		return p.writeLongs(w)
	}
}

func (p *PaletteContainer) writeLongs(w io.Writer) error {
	longs := p.data.Longs()
	if err := varint.WriteVarInt(byteWriter{w}, int32(len(longs))); err != nil {
		return err
	}
	var buf [8]byte
	for _, v := range longs {
		buf[0] = byte(v >> 56)
		buf[1] = byte(v >> 48)
		buf[2] = byte(v >> 40)
		buf[3] = byte(v >> 32)
		buf[4] = byte(v >> 24)
		buf[5] = byte(v >> 16)
		buf[6] = byte(v >> 8)
		buf[7] = byte(v)
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// DecodePaletteContainer reads a wire-form paletted container of size cells
// using the given minBits/maxBits/globalBits config (block state or biome).
func DecodePaletteContainer(r io.Reader, size, minBits, maxBits, globalBits int) (*PaletteContainer, error) {
	br := byteReaderFrom(r)
	bitsPerValue, err := br.ReadByte()
	if err != nil {
		return nil, err
	}

	p := &PaletteContainer{minBits: minBits, maxBits: maxBits, globalBits: globalBits, size: size}

	switch {
	case bitsPerValue == 0:
		value, _, err := varint.ReadVarInt(br)
		if err != nil {
			return nil, fmt.Errorf("chunk: read single palette value: %w", err)
		}
		dataLen, _, err := varint.ReadVarInt(br)
		if err != nil {
			return nil, fmt.Errorf("chunk: read single data length: %w", err)
		}
		for i := int32(0); i < dataLen; i++ {
			if _, err := readLong(r); err != nil {
				return nil, err
			}
		}
		p.kind = kindSingle
		p.single = value
		return p, nil

	case int(bitsPerValue) <= maxBits:
		// The wire value dictates the packed layout even when it is below
		// minBits; minBits only floors what Set chooses when encoding.
		effective := int(bitsPerValue)
		paletteLen, _, err := varint.ReadVarInt(br)
		if err != nil {
			return nil, fmt.Errorf("chunk: read palette length: %w", err)
		}
		palette := make([]int32, paletteLen)
		for i := range palette {
			v, _, err := varint.ReadVarInt(br)
			if err != nil {
				return nil, fmt.Errorf("chunk: read palette entry %d: %w", i, err)
			}
			palette[i] = v
		}
		longs, err := readLongArray(r, br)
		if err != nil {
			return nil, err
		}
		p.kind = kindIndirect
		p.palette = palette
		p.data = NewBitArrayFromLongs(effective, size, longs)
		return p, nil

	default:
		longs, err := readLongArray(r, br)
		if err != nil {
			return nil, err
		}
		p.kind = kindDirect
		p.data = NewBitArrayFromLongs(globalBits, size, longs)
		return p, nil
	}
}

func readLongArray(r io.Reader, br io.ByteReader) ([]uint64, error) {
	n, _, err := varint.ReadVarInt(br)
	if err != nil {
		return nil, fmt.Errorf("chunk: read data length: %w", err)
	}
	out := make([]uint64, n)
	for i := range out {
		v, err := readLong(r)
		if err != nil {
			return nil, fmt.Errorf("chunk: read data long %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func readLong(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return uint64(buf[0])<<56 | uint64(buf[1])<<48 | uint64(buf[2])<<40 | uint64(buf[3])<<32 |
		uint64(buf[4])<<24 | uint64(buf[5])<<16 | uint64(buf[6])<<8 | uint64(buf[7]), nil
}

type byteWriter struct{ io.Writer }

func (b byteWriter) WriteByte(c byte) error {
	_, err := b.Write([]byte{c})
	return err
}

type wrappedByteReader struct{ io.Reader }

func (b wrappedByteReader) ReadByte() (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(b.Reader, buf[:])
	return buf[0], err
}

func byteReaderFrom(r io.Reader) wrappedByteReader { return wrappedByteReader{r} }
