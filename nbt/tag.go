// Package nbt implements the Named Binary Tag format used by Minecraft Java
// Edition, in its three wire dialects: big-endian fixed-width (on-disk and
// classic packet NBT), little-endian fixed-width, and little-endian with
// zigzag-varint integers (used by other editions of the game).
package nbt

import "fmt"

// TagType discriminates the twelve NBT value kinds.
type TagType byte

const (
	TagEnd TagType = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

func (t TagType) String() string {
	switch t {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	default:
		return fmt.Sprintf("Unknown(%d)", byte(t))
	}
}

// Tag is any NBT value. Concrete types below all implement it.
type Tag interface {
	Type() TagType
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	String    string
	ByteArray []int8
	IntArray  []int32
	LongArray []int64
)

func (Byte) Type() TagType      { return TagByte }
func (Short) Type() TagType     { return TagShort }
func (Int) Type() TagType       { return TagInt }
func (Long) Type() TagType      { return TagLong }
func (Float) Type() TagType     { return TagFloat }
func (Double) Type() TagType    { return TagDouble }
func (String) Type() TagType    { return TagString }
func (ByteArray) Type() TagType { return TagByteArray }
func (IntArray) Type() TagType  { return TagIntArray }
func (LongArray) Type() TagType { return TagLongArray }

// List is a homogeneously typed sequence of tags. ElemType is TagEnd for an
// empty list (matching vanilla's encoding of an empty list).
type List struct {
	ElemType TagType
	Items    []Tag
}

func (List) Type() TagType { return TagList }

// Compound is an ordered-insertion string-keyed mapping from name to tag.
// Iteration order follows insertion order, matching the wire representation
// (a sequence of (tag-id, name, payload) triples terminated by TagEnd).
type Compound struct {
	keys   []string
	values map[string]Tag
}

func (Compound) Type() TagType { return TagCompound }

// NewCompound returns an empty, ready-to-use Compound.
func NewCompound() Compound {
	return Compound{values: make(map[string]Tag)}
}

// Set inserts or overwrites the tag stored at name, preserving the original
// insertion position on overwrite.
func (c *Compound) Set(name string, tag Tag) {
	if c.values == nil {
		c.values = make(map[string]Tag)
	}
	if _, exists := c.values[name]; !exists {
		c.keys = append(c.keys, name)
	}
	c.values[name] = tag
}

// Get returns the tag stored at name and whether it was present.
func (c Compound) Get(name string) (Tag, bool) {
	t, ok := c.values[name]
	return t, ok
}

// Delete removes name from the compound, if present.
func (c *Compound) Delete(name string) {
	if _, ok := c.values[name]; !ok {
		return
	}
	delete(c.values, name)
	for i, k := range c.keys {
		if k == name {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the compound's keys in insertion order.
func (c Compound) Keys() []string { return c.keys }

// Len returns the number of entries in the compound.
func (c Compound) Len() int { return len(c.keys) }
