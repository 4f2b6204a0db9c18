// Package property implements the self-describing typed values stored in
// property blocks and object property lists.
//
// A property is written as
//
//	name       string
//	type name  string
//	version    u16 (always 30)
//	size       u32
//	payload    size bytes
//
// The type name selects a codec from a registry. Every registered codec
// checks the declared size against what it expects or consumes; type names
// missing from the registry are kept verbatim as a Buffer so that unknown
// data survives a load/save cycle.
package property

import (
	"errors"
	"io"

	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
)

// Version is the only property version the format uses.
const Version = 30

// Data is one typed property value.
type Data interface {
	// TypeName returns the on-disk type name for the value.
	TypeName() string
}

type Property struct {
	Name    string
	Version uint16
	Data    Data
}

// New returns a property carrying the format version.
func New(name string, d Data) Property {
	return Property{Name: name, Version: Version, Data: d}
}

func Decode(r *binio.Buffer) (Property, error) {
	var p Property
	name, err := r.ReadString()
	if err != nil {
		return p, eris.Wrap(err, "property name")
	}
	typeName, err := r.ReadString()
	if err != nil {
		return p, eris.Wrapf(err, "property %q type", name)
	}
	version, err := r.ReadU16()
	if err != nil {
		return p, eris.Wrapf(err, "property %q version", name)
	}
	if version != Version {
		return p, eris.Wrapf(errs.ErrInvalidStructure, "property %q: version %d, want %d", name, version, Version)
	}
	size, err := r.ReadU32()
	if err != nil {
		return p, eris.Wrapf(err, "property %q size", name)
	}
	data, err := decodeData(r, typeName, int64(size))
	if err != nil {
		return p, eris.Wrapf(err, "property %q (%s)", name, typeName)
	}
	return Property{Name: name, Version: version, Data: data}, nil
}

func Encode(w *binio.Buffer, p Property) error {
	if p.Data == nil {
		return eris.Wrapf(errs.ErrInvalidStructure, "property %q has no data", p.Name)
	}
	typeName := p.Data.TypeName()
	payload, err := w.Encode(func(s *binio.Buffer) error {
		return encodeData(s, p.Data)
	})
	if err != nil {
		return eris.Wrapf(err, "property %q (%s)", p.Name, typeName)
	}
	version := p.Version
	if version == 0 {
		version = Version
	}
	if err := w.WriteString(p.Name); err != nil {
		return err
	}
	if err := w.WriteString(typeName); err != nil {
		return err
	}
	w.WriteU16(version)
	w.WriteU32(uint32(len(payload)))
	w.WriteBytes(payload)
	return nil
}

func decodeData(r *binio.Buffer, typeName string, size int64) (Data, error) {
	if size > int64(r.Remaining()) {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "declared %d bytes, %d remaining", size, r.Remaining())
	}
	c, ok := lookup(typeName)
	if !ok {
		r.Logger().Debug().Str("type", typeName).Int64("size", size).Msg("unregistered property type, keeping raw bytes")
		raw, err := r.ReadBytes(int(size))
		return Buffer{Type: typeName, Raw: raw}, err
	}
	if c.size >= 0 && int64(c.size) != size {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "declared %d bytes, type needs %d", size, c.size)
	}
	sub, err := r.Limit(int(size))
	if err != nil {
		return nil, err
	}
	d, err := c.decode(sub, typeName)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "payload overruns declared %d bytes", size)
	}
	if err != nil {
		return nil, err
	}
	if sub.Remaining() != 0 {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "declared %d bytes, decoded %d", size, sub.Pos())
	}
	return d, r.Skip(int(size))
}

func encodeData(w *binio.Buffer, d Data) error {
	if b, ok := d.(Buffer); ok {
		w.WriteBytes(b.Raw)
		return nil
	}
	c, ok := lookup(d.TypeName())
	if !ok {
		return eris.Wrapf(errs.ErrInvalidStructure, "no codec for type %q", d.TypeName())
	}
	return c.encode(w, d)
}

// List is an ordered property list.
type List []Property

// Get returns the first property with the given name.
func (l List) Get(name string) (Property, bool) {
	for _, p := range l {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Set replaces the first property named p.Name or appends p.
func (l *List) Set(p Property) {
	for i := range *l {
		if (*l)[i].Name == p.Name {
			(*l)[i] = p
			return
		}
	}
	*l = append(*l, p)
}

// DecodeList reads count properties.
func DecodeList(r *binio.Buffer, count int) (List, error) {
	if count > r.Remaining() {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "%d properties cannot fit in %d bytes", count, r.Remaining())
	}
	l := make(List, 0, count)
	for i := 0; i < count; i++ {
		p, err := Decode(r)
		if err != nil {
			return nil, eris.Wrapf(err, "property %d of %d", i, count)
		}
		l = append(l, p)
	}
	return l, nil
}

// EncodeList writes every property in order. The count is written by the
// caller since its width differs between containers.
func EncodeList(w *binio.Buffer, l List) error {
	for _, p := range l {
		if err := Encode(w, p); err != nil {
			return err
		}
	}
	return nil
}
