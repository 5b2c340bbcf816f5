package netstruct

import (
	"fmt"
	"io"
	"reflect"
)

// PrefixedArray is a VarInt-length-prefixed sequence of T. T may either
// implement Encoder/Decoder directly (for simple element types) or be a
// plain struct whose exported fields are themselves netstruct types, in
// which case EncodeStruct/DecodeStruct drive it field-by-field — the same
// shape a registry_entry list or a login-success property list take on the
// wire.
type PrefixedArray[T any] struct {
	Items []T
}

func (a PrefixedArray[T]) Encode(w io.Writer) error {
	if err := (VarInt(len(a.Items))).Encode(w); err != nil {
		return err
	}
	for i := range a.Items {
		if err := encodeElem(w, &a.Items[i]); err != nil {
			return fmt.Errorf("netstruct: array element %d: %w", i, err)
		}
	}
	return nil
}

func (a *PrefixedArray[T]) Decode(r io.Reader) error {
	var n VarInt
	if err := n.Decode(r); err != nil {
		return err
	}
	items := make([]T, n)
	for i := range items {
		if err := decodeElem(r, &items[i]); err != nil {
			return fmt.Errorf("netstruct: array element %d: %w", i, err)
		}
	}
	a.Items = items
	return nil
}

func encodeElem[T any](w io.Writer, v *T) error {
	if enc, ok := any(*v).(Encoder); ok {
		return enc.Encode(w)
	}
	return EncodeStruct(w, v)
}

func decodeElem[T any](r io.Reader, v *T) error {
	if dec, ok := any(v).(Decoder); ok {
		return dec.Decode(r)
	}
	return DecodeStruct(r, v)
}

// EncodeStruct reflectively encodes the exported fields of the struct
// pointed to by structPtr, in declaration order, each field required to
// implement Encoder.
func EncodeStruct(w io.Writer, structPtr any) error {
	rv := reflect.ValueOf(structPtr)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("netstruct: EncodeStruct needs a pointer to struct, got %T", structPtr)
	}
	sv := rv.Elem()
	for i := 0; i < sv.NumField(); i++ {
		field := sv.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		enc, ok := sv.Field(i).Interface().(Encoder)
		if !ok {
			return fmt.Errorf("netstruct: field %s.%s (%s) is not an Encoder", sv.Type().Name(), field.Name, field.Type)
		}
		if err := enc.Encode(w); err != nil {
			return fmt.Errorf("netstruct: encode %s.%s: %w", sv.Type().Name(), field.Name, err)
		}
	}
	return nil
}

// DecodeStruct reflectively decodes into the exported fields of the struct
// pointed to by structPtr, in declaration order, each field required to be
// addressable as a Decoder.
func DecodeStruct(r io.Reader, structPtr any) error {
	rv := reflect.ValueOf(structPtr)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("netstruct: DecodeStruct needs a pointer to struct, got %T", structPtr)
	}
	sv := rv.Elem()
	for i := 0; i < sv.NumField(); i++ {
		field := sv.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		dec, ok := sv.Field(i).Addr().Interface().(Decoder)
		if !ok {
			return fmt.Errorf("netstruct: field %s.%s (%s) is not addressable as a Decoder", sv.Type().Name(), field.Name, field.Type)
		}
		if err := dec.Decode(r); err != nil {
			return fmt.Errorf("netstruct: decode %s.%s: %w", sv.Type().Name(), field.Name, err)
		}
	}
	return nil
}
