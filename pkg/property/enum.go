package property

import (
	"fmt"
	"sync"

	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
)

// EnumHeader precedes every stand-alone enum value.
const EnumHeader = 201

// EnumDef is one declared enumeration.
type EnumDef struct {
	Name    string
	members map[uint32]string
	values  map[string]uint32
}

// Member returns the member name for v.
func (e *EnumDef) Member(v uint32) (string, bool) {
	m, ok := e.members[v]
	return m, ok
}

// Value returns the discriminant of a member.
func (e *EnumDef) Value(member string) (uint32, bool) {
	v, ok := e.values[member]
	return v, ok
}

func (e *EnumDef) Len() int { return len(e.members) }

var (
	enumMu sync.RWMutex
	enums  = map[string]*EnumDef{}
)

// RegisterEnum declares an enumeration whose members take the values
// 0, 1, 2, ... in order.
func RegisterEnum(name string, members ...string) *EnumDef {
	vals := make(map[string]uint32, len(members))
	for i, m := range members {
		vals[m] = uint32(i)
	}
	return RegisterEnumValues(name, vals)
}

// RegisterEnumValues declares an enumeration with explicit discriminants.
func RegisterEnumValues(name string, values map[string]uint32) *EnumDef {
	e := &EnumDef{Name: name, members: make(map[uint32]string, len(values)), values: make(map[string]uint32, len(values))}
	for m, v := range values {
		e.members[v] = m
		e.values[m] = v
	}
	enumMu.Lock()
	enums[name] = e
	enumMu.Unlock()
	return e
}

// LookupEnum returns the enumeration registered under name.
func LookupEnum(name string) (*EnumDef, bool) {
	enumMu.RLock()
	defer enumMu.RUnlock()
	e, ok := enums[name]
	return e, ok
}

// EnumValue is a discriminant of a named enumeration. A value outside the
// declared members is kept as is and reports itself unknown.
type EnumValue struct {
	Enum string
	Raw  uint32
}

// EnumOf builds a value from a member name.
func EnumOf(enum, member string) (EnumValue, error) {
	e, ok := LookupEnum(enum)
	if !ok {
		return EnumValue{}, eris.Errorf("enum %q is not registered", enum)
	}
	v, ok := e.Value(member)
	if !ok {
		return EnumValue{}, eris.Wrapf(errs.ErrEnumUnparseable, "%s has no member %q", enum, member)
	}
	return EnumValue{Enum: enum, Raw: v}, nil
}

// Member returns the member name, or false for unknown discriminants.
func (v EnumValue) Member() (string, bool) {
	e, ok := LookupEnum(v.Enum)
	if !ok {
		return "", false
	}
	return e.Member(v.Raw)
}

func (v EnumValue) Unknown() bool {
	_, ok := v.Member()
	return !ok
}

func (v EnumValue) String() string {
	if m, ok := v.Member(); ok {
		return m
	}
	return fmt.Sprintf("%s(%d)", v.Enum, v.Raw)
}

// Enum is an enum value stored under the plain enumeration name.
type Enum struct{ EnumValue }

func (e Enum) TypeName() string { return e.Enum }

// ContainerEnum is an enum value stored under bTPropertyContainer<enum X>.
type ContainerEnum struct{ EnumValue }

func (e ContainerEnum) TypeName() string { return containerPrefix + e.Enum + ">" }

// EnumArray is a bTValArray of enum values. Array elements carry no header.
type EnumArray struct {
	Enum   string
	Values []uint32
}

func (e EnumArray) TypeName() string { return arrayPrefix + e.Enum + ">" }

// Unknown returns the positions of values outside the declared members.
func (e EnumArray) Unknown() []int {
	def, ok := LookupEnum(e.Enum)
	var out []int
	for i, v := range e.Values {
		if !ok {
			out = append(out, i)
			continue
		}
		if _, known := def.Member(v); !known {
			out = append(out, i)
		}
	}
	return out
}

func decodeEnumValue(r *binio.Buffer, enum string) (EnumValue, error) {
	hdr, err := r.ReadU16()
	if err != nil {
		return EnumValue{}, err
	}
	if hdr != EnumHeader {
		return EnumValue{}, eris.Wrapf(errs.ErrInvalidStructure, "enum %s: header %d, want %d", enum, hdr, EnumHeader)
	}
	raw, err := r.ReadU32()
	if err != nil {
		return EnumValue{}, err
	}
	v := EnumValue{Enum: enum, Raw: raw}
	if v.Unknown() {
		r.Logger().Debug().Err(eris.Wrapf(errs.ErrEnumUnparseable, "%s(%d)", enum, raw)).Msg("keeping unknown enum value")
	}
	return v, nil
}

func encodeEnumValue(w *binio.Buffer, v EnumValue) {
	w.WriteU16(EnumHeader)
	w.WriteU32(v.Raw)
}

var enumCodec = codec{
	size: 6,
	decode: func(r *binio.Buffer, typeName string) (Data, error) {
		v, err := decodeEnumValue(r, typeName)
		return Enum{v}, err
	},
	encode: typed(func(w *binio.Buffer, d Enum) error {
		encodeEnumValue(w, d.EnumValue)
		return nil
	}),
}

var containerEnumCodec = codec{
	size: 6,
	decode: func(r *binio.Buffer, typeName string) (Data, error) {
		name, _ := enumInner(typeName, containerPrefix)
		v, err := decodeEnumValue(r, name)
		return ContainerEnum{v}, err
	},
	encode: typed(func(w *binio.Buffer, d ContainerEnum) error {
		encodeEnumValue(w, d.EnumValue)
		return nil
	}),
}

var enumArrayCodec = codec{
	size: -1,
	decode: func(r *binio.Buffer, typeName string) (Data, error) {
		name, _ := enumInner(typeName, arrayPrefix)
		n, err := readCount(r, 4)
		if err != nil {
			return nil, err
		}
		vals, err := r.ReadU32s(n)
		if err != nil {
			return nil, err
		}
		a := EnumArray{Enum: name, Values: vals}
		if unk := a.Unknown(); len(unk) > 0 {
			r.Logger().Debug().Str("enum", name).Ints("positions", unk).Msg("keeping unknown enum values")
		}
		return a, nil
	},
	encode: typed(func(w *binio.Buffer, a EnumArray) error {
		w.WriteU32(uint32(len(a.Values)))
		w.WriteU32s(a.Values)
		return nil
	}),
}
