package v765

import (
	"bytes"
	"testing"

	"github.com/go-mclib/protocol/varint"
)

func TestDecodeEntityMetadataReadsEntriesUntilSentinel(t *testing.T) {
	var buf bytes.Buffer

	// index 0, type 0 (byte), value 7
	buf.Write([]byte{0, 0, 7})
	// index 1, type 3 (float), value 1.5
	buf.Write([]byte{1})
	buf.Write(varint.AppendVarInt(nil, 3))
	buf.Write([]byte{0x3f, 0xc0, 0x00, 0x00})
	// index 8, type 8 (boolean), value true
	buf.Write([]byte{8})
	buf.Write(varint.AppendVarInt(nil, 8))
	buf.Write([]byte{1})
	// sentinel
	buf.Write([]byte{0xff})

	entries, err := DecodeEntityMetadata(&buf)
	if err != nil {
		t.Fatalf("DecodeEntityMetadata: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	first, ok := entries[0].(map[string]any)
	if !ok {
		t.Fatalf("entry 0 is not a map: %T", entries[0])
	}
	if first["type"] != "byte" {
		t.Fatalf("entry 0 type = %v, want byte", first["type"])
	}
	if first["value"] != int8(7) {
		t.Fatalf("entry 0 value = %v, want 7", first["value"])
	}

	third, _ := entries[2].(map[string]any)
	if third["type"] != "boolean" || third["value"] != true {
		t.Fatalf("entry 2 = %+v, want {boolean true}", third)
	}
}

func TestDecodeEntityMetadataEmptyLoop(t *testing.T) {
	buf := bytes.NewReader([]byte{0xff})
	entries, err := DecodeEntityMetadata(buf)
	if err != nil {
		t.Fatalf("DecodeEntityMetadata: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}

func TestDecodeEntityMetadataRotations(t *testing.T) {
	var buf bytes.Buffer
	// index 2, type 9 (rotations), value (90.0, 0.0, 45.0)
	buf.Write([]byte{2})
	buf.Write(varint.AppendVarInt(nil, 9))
	buf.Write([]byte{0x42, 0xb4, 0x00, 0x00}) // 90.0
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00}) // 0.0
	buf.Write([]byte{0x42, 0x34, 0x00, 0x00}) // 45.0
	// index 3, type 1 (varint), value 5 — proves the stream stays aligned
	// past the fixed-width compound.
	buf.Write([]byte{3})
	buf.Write(varint.AppendVarInt(nil, 1))
	buf.Write(varint.AppendVarInt(nil, 5))
	buf.Write([]byte{0xff})

	entries, err := DecodeEntityMetadata(&buf)
	if err != nil {
		t.Fatalf("DecodeEntityMetadata: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	rot := entries[0].(map[string]any)["value"].(map[string]any)
	if rot["x"].(float32) != 90.0 || rot["z"].(float32) != 45.0 {
		t.Fatalf("rotations = %+v", rot)
	}
	second := entries[1].(map[string]any)
	if second["value"].(int32) != 5 {
		t.Fatalf("entry after rotations = %+v, want varint 5", second)
	}
}

func TestDecodeEntityMetadataRejectsRegistryDependentTypes(t *testing.T) {
	var buf bytes.Buffer
	// index 0, type 7 (slot): variable-length, no value schema wired.
	buf.Write([]byte{0})
	buf.Write(varint.AppendVarInt(nil, 7))
	buf.Write([]byte{0x00, 0x01, 0x02})

	if _, err := DecodeEntityMetadata(&buf); err == nil {
		t.Fatalf("expected an error for a slot-typed entry, got nil")
	}
}
