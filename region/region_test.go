package region

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-mclib/protocol/chunk"
)

func TestFileWriteReadChunkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")

	rf, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rf.Close()

	if rf.HasChunk(3, 5) {
		t.Fatalf("expected no chunk present initially")
	}

	col := chunk.NewChunkColumn(3, 5, -64, 24)
	col.SetBlockState(1, 70, 1, 42)

	if err := rf.WriteColumn(3, 5, col, NopRegistry{}, 4189, "full", 1000); err != nil {
		t.Fatalf("WriteColumn: %v", err)
	}
	if !rf.HasChunk(3, 5) {
		t.Fatalf("expected chunk present after write")
	}

	got, err := rf.ReadColumn(3, 5, NopRegistry{})
	if err != nil {
		t.Fatalf("ReadColumn: %v", err)
	}
	if got.X != 3 || got.Z != 5 {
		t.Fatalf("got column (%d,%d), want (3,5)", got.X, got.Z)
	}
	if state := got.GetBlockState(1, 70, 1); state != 42 {
		t.Fatalf("got block state %d, want 42", state)
	}
	if state := got.GetBlockState(0, 70, 0); state != 0 {
		t.Fatalf("got block state %d, want 0 (air)", state)
	}
}

func TestFileReopenPreservesHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")

	rf, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	col := chunk.NewChunkColumn(0, 0, -64, 24)
	if err := rf.WriteColumn(0, 0, col, NopRegistry{}, 4189, "full", 42); err != nil {
		t.Fatalf("WriteColumn: %v", err)
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if !reopened.HasChunk(0, 0) {
		t.Fatalf("expected chunk present after reopen")
	}
	if _, err := reopened.ReadColumn(0, 0, NopRegistry{}); err != nil {
		t.Fatalf("ReadColumn after reopen: %v", err)
	}
}

func TestReadChunkNotPresent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")
	rf, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rf.Close()

	if _, err := rf.ReadChunk(10, 10); err != ErrChunkNotPresent {
		t.Fatalf("got err %v, want ErrChunkNotPresent", err)
	}
}

func TestOpenRejectsTruncatedHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.mca")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatalf("expected error opening truncated region file")
	}
}
