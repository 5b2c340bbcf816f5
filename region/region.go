// Package region implements the Anvil region file format: the 8 KiB header
// of sector offsets and timestamps that precedes up to 1024 chunks' worth of
// compressed NBT, one .mca file per 32x32 chunk area.
package region

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-mclib/protocol/chunk"
	"github.com/go-mclib/protocol/nbt"
	"github.com/klauspost/compress/zlib"
)

const (
	sectorSize   = 4096
	headerSectors = 2
	chunksPerSide = 32
)

// compressionTag values from the chunk payload's 1-byte scheme tag.
const (
	compressionGZip = 1
	compressionZlib = 2
)

var (
	// ErrCorruptSector is returned when a chunk's declared length runs past
	// the end of the file or its compression tag is unrecognized; the
	// region file otherwise remains usable.
	ErrCorruptSector = errors.New("region: corrupt chunk sector")
	// ErrChunkNotPresent is returned by ReadChunk for an unallocated entry.
	ErrChunkNotPresent = errors.New("region: chunk not present")
)

// entry is one chunk's header record: a 3-byte big-endian sector offset and
// 1-byte sector count, packed as a single big-endian u32 on disk.
type entry struct {
	offsetSectors uint32
	sectorCount   uint8
}

func (e entry) isPresent() bool { return e.sectorCount != 0 }

// File is one open Anvil region file, covering chunk-local coordinates
// [0,32)x[0,32). A File owns its handle exclusively; concurrent writers to
// the same file are the caller's responsibility to avoid.
type File struct {
	f          *os.File
	offsets    [chunksPerSide * chunksPerSide]entry
	timestamps [chunksPerSide * chunksPerSide]uint32
}

// Open reads path's header sectors (creating the file with a zeroed header
// if it doesn't exist) and returns a ready File.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	rf := &File{f: f}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		if err := rf.writeEmptyHeader(); err != nil {
			f.Close()
			return nil, err
		}
		return rf, nil
	}
	if info.Size() < headerSectors*sectorSize {
		f.Close()
		return nil, fmt.Errorf("region: %s: %w: header truncated", path, ErrCorruptSector)
	}
	if err := rf.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return rf, nil
}

func (rf *File) writeEmptyHeader() error {
	buf := make([]byte, headerSectors*sectorSize)
	_, err := rf.f.WriteAt(buf, 0)
	return err
}

func (rf *File) readHeader() error {
	buf := make([]byte, headerSectors*sectorSize)
	if _, err := rf.f.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("region: read header: %w", err)
	}
	for i := 0; i < chunksPerSide*chunksPerSide; i++ {
		off := i * 4
		word := uint32(buf[off])<<16 | uint32(buf[off+1])<<8 | uint32(buf[off+2])
		count := buf[off+3]
		rf.offsets[i] = entry{offsetSectors: word, sectorCount: count}

		tsOff := sectorSize + i*4
		rf.timestamps[i] = uint32(buf[tsOff])<<24 | uint32(buf[tsOff+1])<<16 | uint32(buf[tsOff+2])<<8 | uint32(buf[tsOff+3])
	}
	return nil
}

func localIndex(lx, lz int) int { return lz*chunksPerSide + lx }

// HasChunk reports whether local coordinates (lx, lz), each in [0, 32), have
// an allocated entry.
func (rf *File) HasChunk(lx, lz int) bool {
	return rf.offsets[localIndex(lx, lz)].isPresent()
}

// ReadChunk reads and decompresses the chunk at local coordinates (lx, lz),
// returning its parsed NBT root.
func (rf *File) ReadChunk(lx, lz int) (nbt.Tag, error) {
	e := rf.offsets[localIndex(lx, lz)]
	if !e.isPresent() {
		return nil, ErrChunkNotPresent
	}

	info, err := rf.f.Stat()
	if err != nil {
		return nil, err
	}
	base := int64(e.offsetSectors) * sectorSize
	if base+5 > info.Size() {
		return nil, fmt.Errorf("region: chunk (%d,%d): %w: header past eof", lx, lz, ErrCorruptSector)
	}

	var lenTag [5]byte
	if _, err := rf.f.ReadAt(lenTag[:], base); err != nil {
		return nil, err
	}
	length := uint32(lenTag[0])<<24 | uint32(lenTag[1])<<16 | uint32(lenTag[2])<<8 | uint32(lenTag[3])
	tag := lenTag[4]
	if length == 0 {
		return nil, fmt.Errorf("region: chunk (%d,%d): %w: zero length", lx, lz, ErrCorruptSector)
	}
	if base+5+int64(length)-1 > info.Size() {
		return nil, fmt.Errorf("region: chunk (%d,%d): %w: length exceeds file", lx, lz, ErrCorruptSector)
	}

	payload := make([]byte, length-1)
	if _, err := rf.f.ReadAt(payload, base+5); err != nil {
		return nil, err
	}

	var raw io.Reader
	switch tag {
	case compressionGZip:
		gr, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("region: chunk (%d,%d): gzip: %w", lx, lz, err)
		}
		defer gr.Close()
		raw = gr
	case compressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("region: chunk (%d,%d): zlib: %w", lx, lz, err)
		}
		defer zr.Close()
		raw = zr
	default:
		return nil, fmt.Errorf("region: chunk (%d,%d): %w: unknown compression tag %d", lx, lz, ErrCorruptSector, tag)
	}

	_, root, _, err := nbt.NewReaderFrom(raw).ReadNamedTag()
	if err != nil {
		return nil, fmt.Errorf("region: chunk (%d,%d): parse nbt: %w", lx, lz, err)
	}
	return root, nil
}

// WriteChunk serializes root as NBT, zlib-deflates it, and stores it at
// local coordinates (lx, lz), reusing the existing sector run in place when
// it still fits and otherwise allocating a fresh run at the file's tail
// (grow-only; no compaction or first-fit reuse).
func (rf *File) WriteChunk(lx, lz int, rootName string, root nbt.Tag, timestamp uint32) error {
	var nbtBuf bytes.Buffer
	if err := nbt.NewWriterTo(&nbtBuf).WriteTag(rootName, root); err != nil {
		return fmt.Errorf("region: encode chunk nbt: %w", err)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(nbtBuf.Bytes()); err != nil {
		zw.Close()
		return fmt.Errorf("region: compress chunk: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("region: compress chunk: %w", err)
	}

	payloadLen := compressed.Len() + 1 // + compression tag byte
	totalLen := 5 + payloadLen
	sectorsNeeded := uint8((totalLen + sectorSize - 1) / sectorSize)

	idx := localIndex(lx, lz)
	existing := rf.offsets[idx]

	var baseSector uint32
	if existing.isPresent() && uint8(sectorsNeeded) <= existing.sectorCount {
		baseSector = existing.offsetSectors
	} else {
		var err error
		baseSector, err = rf.allocateTail(sectorsNeeded)
		if err != nil {
			return err
		}
	}

	var header [5]byte
	header[0] = byte(payloadLen >> 24)
	header[1] = byte(payloadLen >> 16)
	header[2] = byte(payloadLen >> 8)
	header[3] = byte(payloadLen)
	header[4] = compressionZlib

	base := int64(baseSector) * sectorSize
	if _, err := rf.f.WriteAt(header[:], base); err != nil {
		return err
	}
	if _, err := rf.f.WriteAt(compressed.Bytes(), base+5); err != nil {
		return err
	}
	if pad := int64(sectorsNeeded)*sectorSize - int64(totalLen); pad > 0 {
		if _, err := rf.f.WriteAt(make([]byte, pad), base+int64(totalLen)); err != nil {
			return err
		}
	}

	rf.offsets[idx] = entry{offsetSectors: baseSector, sectorCount: sectorsNeeded}
	rf.timestamps[idx] = timestamp
	return rf.flushHeader()
}

// allocateTail appends a fresh run of sectorsNeeded sectors at the file's
// current end, rounded up from the file's current sector count.
func (rf *File) allocateTail(sectorsNeeded uint8) (uint32, error) {
	info, err := rf.f.Stat()
	if err != nil {
		return 0, err
	}
	sectorCount := (info.Size() + sectorSize - 1) / sectorSize
	if sectorCount < headerSectors {
		sectorCount = headerSectors
	}
	return uint32(sectorCount), nil
}

func (rf *File) flushHeader() error {
	buf := make([]byte, headerSectors*sectorSize)
	for i, e := range rf.offsets {
		off := i * 4
		buf[off] = byte(e.offsetSectors >> 16)
		buf[off+1] = byte(e.offsetSectors >> 8)
		buf[off+2] = byte(e.offsetSectors)
		buf[off+3] = e.sectorCount

		ts := rf.timestamps[i]
		tsOff := sectorSize + off
		buf[tsOff] = byte(ts >> 24)
		buf[tsOff+1] = byte(ts >> 16)
		buf[tsOff+2] = byte(ts >> 8)
		buf[tsOff+3] = byte(ts)
	}
	_, err := rf.f.WriteAt(buf, 0)
	return err
}

// ReadColumn reads and decodes the chunk at local coordinates (lx, lz) into a
// ChunkColumn via NBTToChunk.
func (rf *File) ReadColumn(lx, lz int, reg BlockRegistry) (*chunk.ChunkColumn, error) {
	root, err := rf.ReadChunk(lx, lz)
	if err != nil {
		return nil, err
	}
	compound, ok := root.(nbt.Compound)
	if !ok {
		return nil, fmt.Errorf("region: chunk (%d,%d): root tag is not a compound", lx, lz)
	}
	return NBTToChunk(compound, reg)
}

// WriteColumn encodes col via ChunkToNBT and stores it at local coordinates
// (lx, lz).
func (rf *File) WriteColumn(lx, lz int, col *chunk.ChunkColumn, reg BlockRegistry, dataVersion int32, status string, timestamp uint32) error {
	root := ChunkToNBT(col, reg, dataVersion, status, nbt.Compound{})
	return rf.WriteChunk(lx, lz, "", root, timestamp)
}

// Close closes the underlying file handle.
func (rf *File) Close() error { return rf.f.Close() }
