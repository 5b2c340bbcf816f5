package netstruct

import (
	"bytes"
	"testing"
)

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := String("hello, world").Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got String
	if err := got.Decode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "hello, world" {
		t.Errorf("got %q", got)
	}
}

func TestUUIDRoundTrip(t *testing.T) {
	u, err := UUIDFromString("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.String() != "069a79f4-44e9-4726-a5be-fca90e38aaf5" {
		t.Errorf("String() = %q", u.String())
	}
	var buf bytes.Buffer
	if err := u.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got UUID
	if err := got.Decode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != u {
		t.Errorf("got %v, want %v", got, u)
	}
}

func TestPrefixedOptional(t *testing.T) {
	present := PrefixedOptional[String]{Present: true, Value: "hi"}
	var buf bytes.Buffer
	if err := present.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got PrefixedOptional[String]
	if err := got.Decode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Present || got.Value != "hi" {
		t.Errorf("got %+v", got)
	}

	absent := PrefixedOptional[String]{Present: false}
	buf.Reset()
	if err := absent.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.Len() != 1 {
		t.Fatalf("expected 1 byte for absent optional, got %d", buf.Len())
	}
}
