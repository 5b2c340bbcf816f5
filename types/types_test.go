package types

import (
	"bytes"
	"testing"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	reg := NewRegistry(Schema{})
	i32 := reg.Resolve("i32")
	var buf bytes.Buffer
	if err := i32.Write(&buf, int32(-42), nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := i32.Read(&buf, nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.(int32) != -42 {
		t.Errorf("got %v, want -42", got)
	}
}

// A schema with a self-recursive named type ("node" contains an optional
// "node"), exercising the registry's cycle-breaking placeholder.
func TestCyclicNamedReference(t *testing.T) {
	schema := Schema{
		"node": &ContainerDef{Fields: []Field{
			{Name: "value", Type: Ref("i32")},
			{Name: "next", Type: &OptionDef{Inner: Ref("node")}},
		}},
	}
	reg := NewRegistry(schema)
	node := reg.Resolve("node")

	value := map[string]any{
		"value": int32(1),
		"next": map[string]any{
			"value": int32(2),
			"next":  nil,
		},
	}

	var buf bytes.Buffer
	if err := node.Write(&buf, value, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := node.Read(&buf, nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	top := got.(map[string]any)
	if top["value"].(int32) != 1 {
		t.Errorf("value = %v", top["value"])
	}
	inner := top["next"].(map[string]any)
	if inner["value"].(int32) != 2 {
		t.Errorf("next.value = %v", inner["value"])
	}
	if inner["next"] != nil {
		t.Errorf("next.next = %v, want nil", inner["next"])
	}
}

// A packet-shaped schema: an outer container carries a discriminant field
// and a switch keyed on it; a switch nested one container deeper selects on
// the enclosing container's sibling via "../" (exercising context climbing).
func TestSwitchWithParentClimb(t *testing.T) {
	schema := Schema{
		"packet": &ContainerDef{Fields: []Field{
			{Name: "kind", Type: Ref("varint")},
			{Name: "body", Type: &SwitchDef{
				CompareTo: "kind",
				Fields: map[string]Def{
					"0": &ContainerDef{Fields: []Field{
						{Name: "flag", Type: Ref("bool")},
						{Name: "wrap", Type: &ContainerDef{Fields: []Field{
							{Name: "payload", Type: &SwitchDef{
								CompareTo: "../flag",
								Fields: map[string]Def{
									"true":  Ref("i32"),
									"false": Ref("i8"),
								},
							}},
						}}},
					}},
				},
			}},
		}},
	}
	reg := NewRegistry(schema)
	packet := reg.Resolve("packet")

	value := map[string]any{
		"kind": int32(0),
		"body": map[string]any{
			"flag": true,
			"wrap": map[string]any{
				"payload": int32(99),
			},
		},
	}

	var buf bytes.Buffer
	if err := packet.Write(&buf, value, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := packet.Read(&buf, nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	body := got.(map[string]any)["body"].(map[string]any)
	wrap := body["wrap"].(map[string]any)
	if wrap["payload"].(int32) != 99 {
		t.Errorf("payload = %v, want 99", wrap["payload"])
	}
}

func TestSwitchMissWithoutDefault(t *testing.T) {
	reg := NewRegistry(Schema{})
	sw := (&SwitchDef{
		CompareTo: "kind",
		Fields:    map[string]Def{"0": Ref("i8")},
	}).Build(reg)

	ctx := NewContext(nil)
	ctx.Set("kind", int32(7))
	var buf bytes.Buffer
	if err := sw.Write(&buf, int8(1), ctx); err == nil {
		t.Fatalf("expected ErrSwitchMiss, got nil")
	}
}

func TestBitfieldPacksAndSignExtends(t *testing.T) {
	bf := (&BitfieldDef{Fields: []BitField{
		{Name: "x", Bits: 4, Signed: true},
		{Name: "y", Bits: 4, Signed: false},
	}}).Build(NewRegistry(Schema{}))

	value := map[string]any{"x": int64(-1), "y": uint64(5)}
	var buf bytes.Buffer
	if err := bf.Write(&buf, value, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != 1 {
		t.Fatalf("expected 1 byte, got %d", buf.Len())
	}
	got, err := bf.Read(&buf, nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	m := got.(map[string]any)
	if m["x"].(int64) != -1 {
		t.Errorf("x = %v, want -1", m["x"])
	}
	if m["y"].(uint64) != 5 {
		t.Errorf("y = %v, want 5", m["y"])
	}
}

func TestTopBitSetTerminatedArray(t *testing.T) {
	arr := (&TopBitSetTerminatedArrayDef{Entry: Ref("i8")}).Build(NewRegistry(Schema{}))
	items := []any{int8(1), int8(2), int8(3)}
	var buf bytes.Buffer
	if err := arr.Write(&buf, items, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []byte{0x81, 0x82, 0x03}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("encoded = % x, want % x", buf.Bytes(), want)
	}
	got, err := arr.Read(&buf, nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	gotItems := got.([]any)
	if len(gotItems) != 3 || gotItems[2].(int8) != 3 {
		t.Fatalf("got %v", gotItems)
	}
}

// A whole packet codec expressed as one schema entry: a mapper turning the
// leading varint id into a packet name, and a switch keyed on that name
// picking the payload shape — the composition a protocol schema file's
// top-level "packet" type uses.
func TestPacketShapedMapperSwitchCodec(t *testing.T) {
	schema := Schema{
		"packet": &ContainerDef{Fields: []Field{
			{Name: "name", Type: &MapperDef{
				Inner:    Ref("varint"),
				Mappings: map[int64]string{0: "set_protocol", 1: "ping_start"},
			}},
			{Name: "params", Type: &SwitchDef{
				CompareTo: "name",
				Fields: map[string]Def{
					"set_protocol": &ContainerDef{Fields: []Field{
						{Name: "protocolVersion", Type: Ref("varint")},
						{Name: "serverHost", Type: &PStringDef{}},
						{Name: "serverPort", Type: Ref("u16")},
						{Name: "nextState", Type: Ref("varint")},
					}},
					"ping_start": Ref("void"),
				},
			}},
		}},
	}
	reg := NewRegistry(schema)
	packet := reg.Resolve("packet")

	value := map[string]any{
		"name": "set_protocol",
		"params": map[string]any{
			"protocolVersion": int32(765),
			"serverHost":      "localhost",
			"serverPort":      uint16(25565),
			"nextState":       int32(2),
		},
	}

	var buf bytes.Buffer
	if err := packet.Write(&buf, value, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Bytes()[0] != 0x00 {
		t.Fatalf("first byte = %#x, want the set_protocol id", buf.Bytes()[0])
	}
	got, err := packet.Read(&buf, nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	m := got.(map[string]any)
	if m["name"] != "set_protocol" {
		t.Errorf("name = %v", m["name"])
	}
	params := m["params"].(map[string]any)
	if params["serverHost"] != "localhost" || params["serverPort"].(uint16) != 25565 {
		t.Errorf("params = %+v", params)
	}
	if params["protocolVersion"].(int32) != 765 || params["nextState"].(int32) != 2 {
		t.Errorf("params = %+v", params)
	}
}
