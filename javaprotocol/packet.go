package javaprotocol

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-mclib/protocol/netstruct"
)

// ErrUnregisteredPacket is returned by WritePacket for a Go type that was
// never passed to NewPacket.
var ErrUnregisteredPacket = errors.New("javaprotocol: packet type not registered")

// ErrUnknownPacketID names the failure of a packet ID that has no
// registration for its state and direction. ReadInto does not check packet
// IDs, and no function in this package returns this error.
var ErrUnknownPacketID = errors.New("javaprotocol: unknown packet id")

// PacketDef identifies the wire coordinates (state, direction, numeric ID)
// of a packet whose payload is shaped like T. Declared once per packet,
// mirroring the "PacketPacket = jp.NewPacket(state, dir, id)" + "PacketData
// struct" pairing every packet schema in this ecosystem uses.
type PacketDef[T any] struct {
	State     State
	Direction Direction
	ID        int32
}

type registryKey struct {
	state State
	dir   Direction
	id    int32
}

var (
	byGoType     = map[reflect.Type]registryKey{}
	byWireCoords = map[registryKey]reflect.Type{}
)

// NewPacket registers T's wire coordinates and returns a descriptor value,
// so packet schema files can declare, at package scope:
//
//	var C2SHelloPacket = jp.NewPacket[C2SHelloData](jp.StateLogin, jp.C2S, 0x00)
func NewPacket[T any](state State, dir Direction, id int32) *PacketDef[T] {
	key := registryKey{state, dir, id}
	t := reflect.TypeOf((*T)(nil)).Elem()
	if prev, exists := byGoType[t]; exists && prev != key {
		panic(fmt.Sprintf("javaprotocol: %s already registered as %+v, cannot also register as %+v; give it its own data type per packet", t, prev, key))
	}
	byGoType[t] = key
	byWireCoords[key] = t
	return &PacketDef[T]{State: state, Direction: dir, ID: id}
}

// WirePacket is one undecoded packet pulled off the wire: a numeric ID plus
// its raw, already-decompressed/decrypted body.
type WirePacket struct {
	PacketID int32
	Body     []byte
}

// ReadInto reflectively decodes the packet body into dst (a pointer to a
// struct whose exported fields all implement netstruct.Decoder), in field
// declaration order — the same order the sender's struct fields encode in.
func (p *WirePacket) ReadInto(dst any) error {
	return netstruct.DecodeStruct(bytes.NewReader(p.Body), dst)
}

// encodePacket reflectively encodes pkt (a pointer to a registered packet
// data struct) into its wire body, returning the registered numeric ID.
func encodePacket(pkt any) (id int32, body []byte, err error) {
	rv := reflect.ValueOf(pkt)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return 0, nil, fmt.Errorf("javaprotocol: WritePacket needs a pointer to struct, got %T", pkt)
	}
	key, ok := byGoType[rv.Elem().Type()]
	if !ok {
		return 0, nil, fmt.Errorf("%w: %T", ErrUnregisteredPacket, pkt)
	}
	var buf bytes.Buffer
	if err := netstruct.EncodeStruct(&buf, pkt); err != nil {
		return 0, nil, err
	}
	return key.id, buf.Bytes(), nil
}

// lookupPacketType returns the registered Go type for (state, dir, id), if
// any — used by higher layers that want typed dispatch instead of raw
// ReadInto calls.
func lookupPacketType(state State, dir Direction, id int32) (reflect.Type, bool) {
	t, ok := byWireCoords[registryKey{state, dir, id}]
	return t, ok
}
