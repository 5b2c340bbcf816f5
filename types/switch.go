package types

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SwitchDef dispatches to one of Fields keyed by the string form of the
// value found at CompareTo, a slash-separated context path that may climb
// parents with "../" segments. Default, if non-nil, handles any key absent
// from Fields.
type SwitchDef struct {
	CompareTo string
	Fields    map[string]Def
	Default   Def
}

func (d *SwitchDef) Build(reg *Registry) *Type {
	built := make(map[string]*Type, len(d.Fields))
	for k, def := range d.Fields {
		built[k] = def.Build(reg)
	}
	var def *Type
	if d.Default != nil {
		def = d.Default.Build(reg)
	}
	path := d.CompareTo

	pick := func(ctx *Context) (*Type, error) {
		val, ok := resolvePath(ctx, path)
		if !ok {
			if def != nil {
				return def, nil
			}
			return nil, fmt.Errorf("%w: path %q unresolved", ErrSwitchMiss, path)
		}
		key := stringify(val)
		if t, ok := built[key]; ok {
			return t, nil
		}
		if def != nil {
			return def, nil
		}
		return nil, fmt.Errorf("%w: key %q", ErrSwitchMiss, key)
	}

	read := func(r io.Reader, ctx *Context) (any, error) {
		t, err := pick(ctx)
		if err != nil {
			return nil, err
		}
		return t.Read(r, ctx)
	}
	write := func(w io.Writer, v any, ctx *Context) error {
		t, err := pick(ctx)
		if err != nil {
			return err
		}
		return t.Write(w, v, ctx)
	}
	sizeOf := func(v any, ctx *Context) (int, error) {
		t, err := pick(ctx)
		if err != nil {
			return 0, err
		}
		return t.SizeOf(v, ctx)
	}

	return &Type{Read: read, Write: write, SizeOf: sizeOf}
}

// resolvePath walks a "../../a/b" style path from ctx, climbing one parent
// per leading "../" segment, then descending through nested map values for
// any remaining slash-separated segments.
func resolvePath(ctx *Context, path string) (any, bool) {
	cur := ctx
	rest := path
	for strings.HasPrefix(rest, "../") {
		cur = cur.Parent()
		rest = strings.TrimPrefix(rest, "../")
	}
	segments := strings.Split(rest, "/")
	val, ok := cur.Get(segments[0])
	if !ok {
		return nil, false
	}
	for _, seg := range segments[1:] {
		m, isMap := val.(map[string]any)
		if !isMap {
			return nil, false
		}
		if val, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return val, true
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	default:
		return fmt.Sprintf("%v", x)
	}
}
