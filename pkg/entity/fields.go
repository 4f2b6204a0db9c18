package entity

import (
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rawbytedev/genom/pkg/layout"
	"github.com/rawbytedev/genom/pkg/object"
	"github.com/rotisserie/eris"
)

// minAccessorSize is the encoding of an invalid accessor.
const minAccessorSize = 3

// accessors is a u32 count followed by that many nested objects.
func accessors[T any](name string, when layout.Predicate, get func(*T) *[]object.Accessor) layout.Field[T] {
	return layout.Custom(name, when,
		func(r *binio.Buffer, rec *T, _ uint32) error {
			n, err := r.ReadU32()
			if err != nil {
				return err
			}
			if int64(n)*minAccessorSize > int64(r.Remaining()) {
				return eris.Wrapf(errs.ErrInvalidStructure, "%d objects cannot fit in %d bytes", n, r.Remaining())
			}
			list := make([]object.Accessor, n)
			for i := range list {
				if list[i], err = object.DecodeAccessor(r); err != nil {
					return eris.Wrapf(err, "%d", i)
				}
			}
			*get(rec) = list
			return nil
		},
		func(w *binio.Buffer, rec *T, _ uint32) error {
			list := *get(rec)
			w.WriteU32(uint32(len(list)))
			for i, a := range list {
				if err := object.EncodeAccessor(w, a); err != nil {
					return eris.Wrapf(err, "%d", i)
				}
			}
			return nil
		})
}

// guids is a u32 count followed by that many GUIDs.
func guids[T any](name string, when layout.Predicate, get func(*T) *[]binio.GUID) layout.Field[T] {
	return layout.Custom(name, when,
		func(r *binio.Buffer, rec *T, _ uint32) error {
			n, err := r.ReadU32()
			if err != nil {
				return err
			}
			if int64(n)*binio.GUIDSize > int64(r.Remaining()) {
				return eris.Wrapf(errs.ErrInvalidStructure, "%d ids cannot fit in %d bytes", n, r.Remaining())
			}
			list := make([]binio.GUID, n)
			for i := range list {
				if list[i], err = r.ReadGUID(); err != nil {
					return err
				}
			}
			*get(rec) = list
			return nil
		},
		func(w *binio.Buffer, rec *T, _ uint32) error {
			list := *get(rec)
			w.WriteU32(uint32(len(list)))
			for _, g := range list {
				w.WriteGUID(g)
			}
			return nil
		})
}

// strs is a u32 count followed by that many strings.
func strs[T any](name string, when layout.Predicate, get func(*T) *[]string) layout.Field[T] {
	return layout.Custom(name, when,
		func(r *binio.Buffer, rec *T, _ uint32) error {
			n, err := r.ReadU32()
			if err != nil {
				return err
			}
			if int64(n) > int64(r.Remaining()) {
				return eris.Wrapf(errs.ErrInvalidStructure, "%d strings cannot fit in %d bytes", n, r.Remaining())
			}
			list := make([]string, n)
			for i := range list {
				if list[i], err = r.ReadString(); err != nil {
					return err
				}
			}
			*get(rec) = list
			return nil
		},
		func(w *binio.Buffer, rec *T, _ uint32) error {
			list := *get(rec)
			w.WriteU32(uint32(len(list)))
			for _, s := range list {
				if err := w.WriteString(s); err != nil {
					return err
				}
			}
			return nil
		})
}

// versioned reads the u16 version that starts every class payload, then the
// fields of l at that version.
func versioned[T any](r *binio.Buffer, l *layout.Layout[T], rec *T, version *uint16) error {
	v, err := r.ReadU16()
	if err != nil {
		return err
	}
	*version = v
	return l.Decode(r, rec, uint32(v))
}

func writeVersioned[T any](w *binio.Buffer, l *layout.Layout[T], rec *T, version uint16) error {
	if err := l.CheckEncode(uint32(version)); err != nil {
		return err
	}
	w.WriteU16(version)
	return l.Encode(w, rec, uint32(version))
}

// register binds a class whose payload is one versioned record.
func register[T any, P interface {
	*T
	object.ClassData
}](className string, decode func(r *binio.Buffer, rec *T) error, encode func(w *binio.Buffer, rec *T) error) {
	object.Register(className, object.Codec{
		Decode: func(r *binio.Buffer) (object.ClassData, error) {
			rec := new(T)
			if err := decode(r, rec); err != nil {
				return nil, err
			}
			return P(rec), nil
		},
		Encode: func(w *binio.Buffer, d object.ClassData) error {
			rec, ok := d.(P)
			if !ok {
				return eris.Wrapf(errs.ErrInvalidStructure, "class %q holds %T", className, d)
			}
			return encode(w, rec)
		},
	})
}
