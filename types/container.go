package types

import "io"

// Field is one entry of a ContainerDef: either named (Name, merged under
// that key) or anonymous (Anon, whose value — itself expected to decode to
// map[string]any — is merged directly into the parent object).
type Field struct {
	Name string
	Anon bool
	Type Def
}

// ContainerDef is an ordered list of fields read/written in declaration
// order, the bread-and-butter compound every packet payload is built from.
type ContainerDef struct {
	Fields []Field
}

func (d *ContainerDef) Build(reg *Registry) *Type {
	fieldTypes := make([]*Type, len(d.Fields))
	for i, f := range d.Fields {
		fieldTypes[i] = f.Type.Build(reg)
	}

	read := func(r io.Reader, ctx *Context) (any, error) {
		child := NewContext(ctx)
		result := make(map[string]any, len(d.Fields))
		for i, f := range d.Fields {
			val, err := fieldTypes[i].Read(r, child)
			if err != nil {
				return nil, err
			}
			if f.Anon {
				mergeAnon(result, child, val)
				continue
			}
			result[f.Name] = val
			child.Set(f.Name, val)
		}
		return result, nil
	}

	write := func(w io.Writer, v any, ctx *Context) error {
		value, _ := v.(map[string]any)
		child := NewContext(ctx)
		for k, val := range value {
			child.Set(k, val)
		}
		for i, f := range d.Fields {
			var fv any
			if f.Anon {
				fv = value
			} else {
				fv = value[f.Name]
			}
			if err := fieldTypes[i].Write(w, fv, child); err != nil {
				return err
			}
		}
		return nil
	}

	sizeOf := func(v any, ctx *Context) (int, error) {
		value, _ := v.(map[string]any)
		child := NewContext(ctx)
		for k, val := range value {
			child.Set(k, val)
		}
		total := 0
		for i, f := range d.Fields {
			var fv any
			if f.Anon {
				fv = value
			} else {
				fv = value[f.Name]
			}
			n, err := fieldTypes[i].SizeOf(fv, child)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}

func mergeAnon(result map[string]any, child *Context, val any) {
	m, ok := val.(map[string]any)
	if !ok {
		return
	}
	for k, v := range m {
		result[k] = v
		child.Set(k, v)
	}
}
