// Package object implements nested polymorphic objects: a property list plus
// a class payload selected by class name.
//
// Accessor layout:
//
//	version      u16 (1)
//	valid        u8
//	meta         3 x u16 reserved, u16 class version   (valid only)
//	class name   string                                (valid only)
//	object                                             (valid only)
//
// Object layout:
//
//	version           u16
//	size              u32, bytes following this field
//	property version  u16
//	property count    u32
//	properties
//	class payload     rest of size
package object

import (
	"errors"
	"io"

	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rawbytedev/genom/pkg/property"
	"github.com/rotisserie/eris"
)

const (
	AccessorVersion = 1
	// ObjectVersion is written for objects created without one.
	ObjectVersion = 1
	// PropertyVersion is written for property lists created without one.
	PropertyVersion = 201
)

// Meta precedes the class name of a valid accessor.
type Meta struct {
	Reserved     [3]uint16
	ClassVersion uint16
}

// DefaultMeta is the metadata authoring tools write.
var DefaultMeta = Meta{Reserved: [3]uint16{1, 0, 1}, ClassVersion: 1}

// Accessor wraps an optional Object. An invalid accessor has no class name
// and no payload.
type Accessor struct {
	Version uint16
	Valid   binio.Bool
	Meta    Meta
	Object  *Object
}

// NewAccessor returns a valid accessor for obj.
func NewAccessor(obj *Object) Accessor {
	return Accessor{Version: AccessorVersion, Valid: binio.True, Meta: DefaultMeta, Object: obj}
}

// ClassName returns the class of the wrapped object, or "" when invalid.
func (a Accessor) ClassName() string {
	if !a.Valid.IsTrue() || a.Object == nil || a.Object.Class == nil {
		return ""
	}
	return a.Object.Class.ClassName()
}

func DecodeAccessor(r *binio.Buffer) (Accessor, error) {
	var a Accessor
	var err error
	if a.Version, err = r.ReadU16(); err != nil {
		return a, eris.Wrap(err, "accessor version")
	}
	if a.Version != AccessorVersion {
		return a, eris.Wrapf(errs.ErrInvalidStructure, "accessor version %d, want %d", a.Version, AccessorVersion)
	}
	if a.Valid, err = r.ReadBool(); err != nil || !a.Valid.IsTrue() {
		return a, err
	}
	for i := range a.Meta.Reserved {
		if a.Meta.Reserved[i], err = r.ReadU16(); err != nil {
			return a, err
		}
	}
	if a.Meta.ClassVersion, err = r.ReadU16(); err != nil {
		return a, err
	}
	className, err := r.ReadString()
	if err != nil {
		return a, eris.Wrap(err, "class name")
	}
	obj, err := DecodeObject(r, className)
	if err != nil {
		return a, eris.Wrapf(err, "object %q", className)
	}
	a.Object = obj
	return a, nil
}

func EncodeAccessor(w *binio.Buffer, a Accessor) error {
	version := a.Version
	if version == 0 {
		version = AccessorVersion
	}
	w.WriteU16(version)
	if !a.Valid.IsTrue() || a.Object == nil {
		w.WriteBool(binio.False)
		return nil
	}
	w.WriteBool(a.Valid)
	for _, v := range a.Meta.Reserved {
		w.WriteU16(v)
	}
	w.WriteU16(a.Meta.ClassVersion)
	className := a.ClassName()
	if err := w.WriteString(className); err != nil {
		return err
	}
	if err := EncodeObject(w, a.Object); err != nil {
		return eris.Wrapf(err, "object %q", className)
	}
	return nil
}

// Object is a property list plus a class payload.
type Object struct {
	Version         uint16
	PropertyVersion uint16
	Properties      property.List
	Class           ClassData
	// Trailing holds payload bytes the class decoder left unread.
	Trailing []byte
}

// New returns an object with the default versions.
func New(class ClassData, props ...property.Property) *Object {
	return &Object{Version: ObjectVersion, PropertyVersion: PropertyVersion, Properties: props, Class: class}
}

// DecodeObject reads an object whose payload is dispatched on className.
// Whatever the class decoder consumes, the cursor of r ends on the declared
// object boundary.
func DecodeObject(r *binio.Buffer, className string) (*Object, error) {
	obj := &Object{}
	var err error
	if obj.Version, err = r.ReadU16(); err != nil {
		return nil, err
	}
	size, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	sub, err := r.Limit(int(size))
	if err != nil {
		return nil, err
	}
	if obj.PropertyVersion, err = sub.ReadU16(); err != nil {
		return nil, eris.Wrap(err, "property version")
	}
	count, err := sub.ReadU32()
	if err != nil {
		return nil, eris.Wrap(err, "property count")
	}
	if obj.Properties, err = property.DecodeList(sub, int(count)); err != nil {
		return nil, err
	}

	start := sub.Pos()
	obj.Class, err = decodeClass(sub, className)
	if err != nil {
		return nil, err
	}
	if sub.Remaining() > 0 {
		r.Logger().Warn().
			Str("class", className).
			Int("unread", sub.Remaining()).
			Int("offset", r.Pos()+start).
			Msg("class payload not fully consumed, skipping to object boundary")
		obj.Trailing, _ = sub.ReadBytes(sub.Remaining())
	}
	return obj, r.Skip(int(size))
}

func decodeClass(sub *binio.Buffer, className string) (ClassData, error) {
	start := sub.Pos()
	opaque := func() (ClassData, error) {
		if err := sub.SeekTo(start); err != nil {
			return nil, err
		}
		raw, err := sub.ReadBytes(sub.Remaining())
		return Opaque{Name: className, Raw: raw}, err
	}

	c, ok := lookup(className)
	if !ok {
		sub.Logger().Debug().Str("class", className).Int("size", sub.Remaining()).Msg("unregistered class, keeping raw payload")
		return opaque()
	}
	d, err := c.Decode(sub)
	switch {
	case err == nil:
		return d, nil
	case errors.Is(err, errs.ErrUnknownVersion):
		sub.Logger().Debug().Err(err).Str("class", className).Msg("keeping raw payload")
		return opaque()
	case errors.Is(err, io.ErrUnexpectedEOF):
		sub.Logger().Warn().Err(err).Str("class", className).Msg("class payload overruns object, keeping raw payload")
		return opaque()
	default:
		return nil, eris.Wrapf(err, "class %q", className)
	}
}

func EncodeObject(w *binio.Buffer, obj *Object) error {
	if obj == nil {
		return eris.Wrap(errs.ErrInvalidStructure, "nil object")
	}
	class := obj.Class
	if class == nil {
		class = Invalid{}
	}
	w.WriteU16(obj.Version)
	return w.WriteSized32(func(s *binio.Buffer) error {
		s.WriteU16(obj.PropertyVersion)
		s.WriteU32(uint32(len(obj.Properties)))
		if err := property.EncodeList(s, obj.Properties); err != nil {
			return err
		}
		if err := encodeClass(s, class); err != nil {
			return err
		}
		s.WriteBytes(obj.Trailing)
		return nil
	})
}

func encodeClass(w *binio.Buffer, d ClassData) error {
	if o, ok := d.(Opaque); ok {
		w.WriteBytes(o.Raw)
		return nil
	}
	c, ok := lookup(d.ClassName())
	if !ok {
		return eris.Wrapf(errs.ErrInvalidStructure, "no codec for class %q", d.ClassName())
	}
	return c.Encode(w, d)
}
