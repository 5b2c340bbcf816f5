package types

import "io"

// RegistryEntryHolderDef decodes the common "registry ID or inline value"
// shape: a varint of 0 means an inline OtherwiseType value follows (keyed
// OtherwiseName in the returned map); a varint n>0 means a direct registry
// ID of n-1 (keyed BaseName).
type RegistryEntryHolderDef struct {
	BaseName      string
	OtherwiseName string
	OtherwiseType Def
}

func (d *RegistryEntryHolderDef) Build(reg *Registry) *Type {
	varint := Ref("varint").Build(reg)
	otherwise := d.OtherwiseType.Build(reg)
	baseName, otherName := d.BaseName, d.OtherwiseName

	read := func(r io.Reader, ctx *Context) (any, error) {
		disc, err := varint.Read(r, ctx)
		if err != nil {
			return nil, err
		}
		n := toInt64(disc)
		if n == 0 {
			val, err := otherwise.Read(r, ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{otherName: val}, nil
		}
		return map[string]any{baseName: int32(n - 1)}, nil
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		value, _ := v.(map[string]any)
		if val, ok := value[otherName]; ok {
			if err := varint.Write(w, int32(0), ctx); err != nil {
				return err
			}
			return otherwise.Write(w, val, ctx)
		}
		id := toInt64(value[baseName])
		return varint.Write(w, int32(id+1), ctx)
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		value, _ := v.(map[string]any)
		if val, ok := value[otherName]; ok {
			a, err := varint.SizeOf(int32(0), ctx)
			if err != nil {
				return 0, err
			}
			b, err := otherwise.SizeOf(val, ctx)
			if err != nil {
				return 0, err
			}
			return a + b, nil
		}
		id := toInt64(value[baseName])
		return varint.SizeOf(int32(id+1), ctx)
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}

// RegistryEntryHolderSetDef decodes a holder set: varint 0 means a tag name
// (string) follows selecting every member of that tag; n>0 means n-1 direct
// registry IDs follow as varints.
type RegistryEntryHolderSetDef struct{}

func (d *RegistryEntryHolderSetDef) Build(reg *Registry) *Type {
	varint := Ref("varint").Build(reg)
	pstring := (&PStringDef{}).Build(reg)

	read := func(r io.Reader, ctx *Context) (any, error) {
		disc, err := varint.Read(r, ctx)
		if err != nil {
			return nil, err
		}
		n := toInt64(disc)
		if n == 0 {
			tag, err := pstring.Read(r, ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"tagName": tag}, nil
		}
		ids := make([]int32, n-1)
		for i := range ids {
			v, err := varint.Read(r, ctx)
			if err != nil {
				return nil, err
			}
			ids[i] = toInt32(v)
		}
		return map[string]any{"ids": ids}, nil
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		value, _ := v.(map[string]any)
		if tag, ok := value["tagName"]; ok {
			if err := varint.Write(w, int32(0), ctx); err != nil {
				return err
			}
			return pstring.Write(w, tag, ctx)
		}
		ids, _ := value["ids"].([]int32)
		if err := varint.Write(w, int32(len(ids)+1), ctx); err != nil {
			return err
		}
		for _, id := range ids {
			if err := varint.Write(w, id, ctx); err != nil {
				return err
			}
		}
		return nil
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		value, _ := v.(map[string]any)
		if tag, ok := value["tagName"]; ok {
			a, err := varint.SizeOf(int32(0), ctx)
			if err != nil {
				return 0, err
			}
			b, err := pstring.SizeOf(tag, ctx)
			if err != nil {
				return 0, err
			}
			return a + b, nil
		}
		ids, _ := value["ids"].([]int32)
		total, err := varint.SizeOf(int32(len(ids)+1), ctx)
		if err != nil {
			return 0, err
		}
		for _, id := range ids {
			n, err := varint.SizeOf(id, ctx)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}
