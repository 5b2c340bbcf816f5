package v765

import (
	"bytes"
	"testing"

	jp "github.com/go-mclib/protocol/javaprotocol"
	ns "github.com/go-mclib/protocol/netstruct"
)

func TestHandshakeFieldsRoundTrip(t *testing.T) {
	if C2SHandshake.ID != 0x00 || C2SHandshake.State != jp.StateHandshaking {
		t.Fatalf("unexpected handshake descriptor: %+v", C2SHandshake)
	}

	src := C2SHandshakeData{
		ProtocolVersion: 765,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		NextState:       NextStateLogin,
	}
	var buf bytes.Buffer
	if err := ns.EncodeStruct(&buf, &src); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var got C2SHandshakeData
	if err := ns.DecodeStruct(bytes.NewReader(buf.Bytes()), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != src {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, src)
	}
}
