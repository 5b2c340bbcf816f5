package v765

import (
	"bytes"
	"fmt"
	"io"

	jp "github.com/go-mclib/protocol/javaprotocol"
	ns "github.com/go-mclib/protocol/netstruct"
	"github.com/go-mclib/protocol/types"
)

// S2CSetEntityMetadata carries a variable, self-describing set of tracked
// entity fields (health, pose, custom name, ...). Unlike every other packet
// in this package, its field count and per-field shape aren't fixed by a Go
// struct — they're driven entirely by a runtime type tag per entry — so it's
// decoded through the schema-driven types.Registry engine instead of a
// netstruct field list, the one payload in the whole protocol that engine
// earns its keep on.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Set_Entity_Metadata
var S2CSetEntityMetadata = jp.NewPacket[S2CSetEntityMetadataData](jp.StatePlay, jp.S2C, 0x58)

type S2CSetEntityMetadataData struct {
	EntityID ns.VarInt
	Rest     ns.RawRest
}

// metadataTypeMappings is the "Entity Metadata Type" table (a mapper over a
// varint discriminator). Every fixed-shape type has a concrete value schema
// wired below; the registry-dependent variable-length ones (slot, nbt,
// particle data) have none, and the switch's default surfaces a decode
// error for them rather than guessing at a width — a wrong guess would
// desync every later entry in the same loop. Unmapped type ids take the
// same path: the mapper passes the raw integer through, the switch finds no
// branch, and the default rejects it.
var metadataTypeMappings = map[int64]string{
	0:  "byte",
	1:  "varint",
	2:  "varlong",
	3:  "float",
	4:  "string",
	5:  "chat",
	6:  "optional_chat",
	7:  "slot",
	8:  "boolean",
	9:  "rotations",
	10: "position",
	11: "optional_position",
	12: "direction",
	13: "optional_uuid",
	14: "block_state",
	15: "optional_block_state",
	16: "nbt",
	17: "particle",
	18: "particles",
	19: "villager_data",
	20: "optional_varint",
	21: "pose",
	22: "cat_variant",
	23: "wolf_variant",
	24: "frog_variant",
	25: "global_pos",
	26: "painting_variant",
	27: "sniffer_state",
	28: "vector3",
	29: "quaternion",
}

var metadataValueFields = map[string]types.Def{
	"byte":          types.Ref("i8"),
	"varint":        types.Ref("varint"),
	"varlong":       types.Ref("varlong"),
	"float":         types.Ref("f32"),
	"string":        &types.PStringDef{},
	"chat":          &types.PStringDef{}, // NBT text component, approximated as length-prefixed text
	"optional_chat": &types.OptionDef{Inner: &types.PStringDef{}},
	"boolean":       types.Ref("bool"),
	"rotations": &types.ContainerDef{Fields: []types.Field{
		{Name: "x", Type: types.Ref("f32")},
		{Name: "y", Type: types.Ref("f32")},
		{Name: "z", Type: types.Ref("f32")},
	}},
	"position":          types.Ref("i64"), // packed x/y/z long
	"optional_position": &types.OptionDef{Inner: types.Ref("i64")},
	"direction":         types.Ref("varint"),
	"optional_uuid":     &types.OptionDef{Inner: &types.BufferDef{Count: 16}},
	"block_state":       types.Ref("varint"),
	// 0 means absent, n-1 the actual state; carried as the raw varint.
	"optional_block_state": types.Ref("varint"),
	"optional_varint":      types.Ref("varint"), // same 0-means-absent encoding
	"pose":                 types.Ref("varint"),
	"cat_variant":          types.Ref("varint"),
	"wolf_variant":         types.Ref("varint"),
	"frog_variant":         types.Ref("varint"),
	"painting_variant":     types.Ref("varint"),
	"sniffer_state":        types.Ref("varint"),
	"villager_data": &types.ContainerDef{Fields: []types.Field{
		{Name: "type", Type: types.Ref("varint")},
		{Name: "profession", Type: types.Ref("varint")},
		{Name: "level", Type: types.Ref("varint")},
	}},
	"global_pos": &types.ContainerDef{Fields: []types.Field{
		{Name: "dimension", Type: &types.PStringDef{}},
		{Name: "position", Type: types.Ref("i64")},
	}},
	"vector3": &types.ContainerDef{Fields: []types.Field{
		{Name: "x", Type: types.Ref("f32")},
		{Name: "y", Type: types.Ref("f32")},
		{Name: "z", Type: types.Ref("f32")},
	}},
	"quaternion": &types.ContainerDef{Fields: []types.Field{
		{Name: "x", Type: types.Ref("f32")},
		{Name: "y", Type: types.Ref("f32")},
		{Name: "z", Type: types.Ref("f32")},
		{Name: "w", Type: types.Ref("f32")},
	}},
}

// undecodableMetadataValue is the switch default: the remaining types
// (slot, nbt, particle, particles) are variable-length and need the item/
// particle registries to size, so guessing a width would desync every
// entry after this one. Surfacing an error drops the packet instead.
type undecodableMetadataValue struct{}

func (undecodableMetadataValue) Build(*types.Registry) *types.Type {
	fail := func(ctx *types.Context) error {
		name := "unknown"
		if v, ok := ctx.Get("type"); ok {
			name = fmt.Sprintf("%v", v)
		}
		return fmt.Errorf("v765: entity metadata type %s has no value schema", name)
	}
	return &types.Type{
		Read:   func(r io.Reader, ctx *types.Context) (any, error) { return nil, fail(ctx) },
		Write:  func(w io.Writer, v any, ctx *types.Context) error { return fail(ctx) },
		SizeOf: func(v any, ctx *types.Context) (int, error) { return 0, fail(ctx) },
	}
}

var entityMetadataEntry = &types.ContainerDef{
	Fields: []types.Field{
		{Name: "index", Type: types.Ref("u8")},
		{Name: "type", Type: &types.MapperDef{Inner: types.Ref("varint"), Mappings: metadataTypeMappings}},
		{Name: "value", Type: &types.SwitchDef{CompareTo: "type", Fields: metadataValueFields, Default: undecodableMetadataValue{}}},
	},
}

var entityMetadataLoop = &types.EntityMetadataLoopDef{Entry: entityMetadataEntry, Sentinel: 0xff}

var entityMetadataRegistry = types.NewRegistry(types.Schema{})

// DecodeEntityMetadata parses the trailing metadata-entry loop of a Set
// Entity Metadata packet body into a slice of {index, type, value} maps.
func DecodeEntityMetadata(r io.Reader) ([]any, error) {
	t := entityMetadataLoop.Build(entityMetadataRegistry)
	v, err := t.Read(r, types.NewContext(nil))
	if err != nil {
		return nil, fmt.Errorf("v765: decode entity metadata: %w", err)
	}
	items, _ := v.([]any)
	return items, nil
}

// Metadata decodes d.Rest via DecodeEntityMetadata.
func (d *S2CSetEntityMetadataData) Metadata() ([]any, error) {
	return DecodeEntityMetadata(bytes.NewReader([]byte(d.Rest)))
}
