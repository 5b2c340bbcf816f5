package nbt

import (
	"bytes"
	"testing"
)

func buildSample() Compound {
	c := NewCompound()
	c.Set("name", String("bananrama"))
	c.Set("value", Short(1))
	c.Set("big", Long(1234567890123))
	c.Set("pi", Float(3.14159))
	c.Set("list", List{ElemType: TagInt, Items: []Tag{Int(1), Int(2), Int(3)}})
	nested := NewCompound()
	nested.Set("egg", Int(42))
	c.Set("nested", nested)
	c.Set("longs", LongArray{1, 2, -3})
	return c
}

func TestCompoundRoundTripBig(t *testing.T) {
	c := buildSample()
	var buf bytes.Buffer
	if err := NewWriterTo(&buf).WriteTag("root", c); err != nil {
		t.Fatalf("write: %v", err)
	}
	name, tag, n, err := NewReaderFrom(&buf).ReadNamedTag()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if name != "root" {
		t.Errorf("name = %q, want root", name)
	}
	if n == 0 {
		t.Errorf("expected nonzero bytes consumed")
	}
	got, ok := tag.(Compound)
	if !ok {
		t.Fatalf("root is %T, want Compound", tag)
	}
	if v, _ := got.Get("name"); v != String("bananrama") {
		t.Errorf("name = %v", v)
	}
	if v, _ := got.Get("big"); v != Long(1234567890123) {
		t.Errorf("big = %v", v)
	}
	nested, ok := func() (Compound, bool) { v, ok := got.Get("nested"); c, o := v.(Compound); return c, ok && o }()
	if !ok {
		t.Fatalf("nested missing or wrong type")
	}
	if v, _ := nested.Get("egg"); v != Int(42) {
		t.Errorf("nested.egg = %v", v)
	}
}

func TestAnonymousRootNetworkForm(t *testing.T) {
	c := buildSample()
	var buf bytes.Buffer
	if err := NewWriterTo(&buf).WriteAnonymousTag(c); err != nil {
		t.Fatalf("write: %v", err)
	}
	tag, _, err := NewReaderFrom(&buf).ReadTag(true)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got, ok := tag.(Compound)
	if !ok {
		t.Fatalf("root is %T, want Compound", tag)
	}
	if v, _ := got.Get("pi"); v != Float(3.14159) {
		t.Errorf("pi = %v", v)
	}
}

func TestEmptyAnonymousRootIsZeroTag(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriterTo(&buf).WriteAnonymousTag(nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != 1 || buf.Bytes()[0] != byte(TagEnd) {
		t.Fatalf("empty NBT should be a single zero tag-id byte, got % x", buf.Bytes())
	}
	tag, n, err := NewReaderFrom(&buf).ReadTag(true)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tag != nil || n != 1 {
		t.Errorf("got (%v, %d), want (nil, 1)", tag, n)
	}
}

func TestLittleVarintDialectRoundTrip(t *testing.T) {
	c := NewCompound()
	c.Set("a", Int(-70000))
	c.Set("b", Long(-1))
	c.Set("s", String("hello world, a string long enough to need more than one varint-length byte if it were absurdly long"))

	var buf bytes.Buffer
	if err := NewWriter(&buf, LittleVarint).WriteTag("root", c); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, tag, _, err := NewReader(&buf, LittleVarint).ReadNamedTag()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := tag.(Compound)
	if v, _ := got.Get("a"); v != Int(-70000) {
		t.Errorf("a = %v", v)
	}
	if v, _ := got.Get("b"); v != Long(-1) {
		t.Errorf("b = %v", v)
	}
}

func TestCompoundPreservesInsertionOrder(t *testing.T) {
	c := NewCompound()
	c.Set("z", Byte(1))
	c.Set("a", Byte(2))
	c.Set("m", Byte(3))
	want := []string{"z", "a", "m"}
	got := c.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
