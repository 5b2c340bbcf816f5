package javaprotocol

import (
	"bytes"
	"testing"

	"github.com/go-mclib/protocol/netstruct"
)

type testHelloData struct {
	Name       netstruct.String
	PlayerUUID netstruct.UUID
}

var testHelloPacket = NewPacket[testHelloData](StateLogin, C2S, 0x00)

func TestPacketRegistrationEncodeDecode(t *testing.T) {
	if testHelloPacket.ID != 0x00 || testHelloPacket.State != StateLogin {
		t.Fatalf("unexpected descriptor: %+v", testHelloPacket)
	}

	uuid, err := netstruct.UUIDFromString("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	src := &testHelloData{Name: "Notch", PlayerUUID: uuid}

	id, body, err := encodePacket(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if id != 0x00 {
		t.Fatalf("id = %d, want 0", id)
	}

	wp := &WirePacket{PacketID: id, Body: body}
	var got testHelloData
	if err := wp.ReadInto(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Notch" || got.PlayerUUID != uuid {
		t.Fatalf("got %+v", got)
	}
}

func TestEncodePacketRejectsUnregisteredType(t *testing.T) {
	type notRegistered struct{ X netstruct.VarInt }
	if _, _, err := encodePacket(&notRegistered{X: 1}); err == nil {
		t.Fatalf("expected ErrUnregisteredPacket")
	}
}

func TestFramerPipeEndToEnd(t *testing.T) {
	var wire bytes.Buffer
	a := NewTCPClient()
	a.rawWriter = &wire
	if err := a.WritePacket(&testHelloData{Name: "abc"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	b := NewTCPClient()
	b.rawReader = &wire
	pkt, err := b.ReadWirePacket()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got testHelloData
	if err := pkt.ReadInto(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "abc" {
		t.Fatalf("got %+v", got)
	}
}
