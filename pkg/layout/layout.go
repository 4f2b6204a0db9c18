// Package layout describes version-gated binary records as ordered field
// lists. A field is read or written only when its predicate accepts the
// record version, so one description covers every revision of a record.
package layout

import (
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
)

// Predicate decides whether a field is present in a given version.
type Predicate func(version uint32) bool

func Always(uint32) bool { return true }

// Since accepts v and every later version.
func Since(v uint32) Predicate { return func(x uint32) bool { return x >= v } }

// Before accepts versions older than v.
func Before(v uint32) Predicate { return func(x uint32) bool { return x < v } }

// Until accepts v and every earlier version.
func Until(v uint32) Predicate { return func(x uint32) bool { return x <= v } }

// Between accepts lo through hi inclusive.
func Between(lo, hi uint32) Predicate { return func(x uint32) bool { return x >= lo && x <= hi } }

// Field is one entry of a record layout.
type Field[T any] struct {
	Name  string
	When  Predicate
	Read  func(r *binio.Buffer, rec *T, version uint32) error
	Write func(w *binio.Buffer, rec *T, version uint32) error
}

func (f Field[T]) present(version uint32) bool {
	return f.When == nil || f.When(version)
}

// Layout is the complete description of a record type.
//
// Decoding accepts MinDecode through Max. Encoding accepts MinEncode through
// Max; versions below MinEncode can be read but are never produced.
type Layout[T any] struct {
	Name      string
	MinDecode uint32
	MinEncode uint32
	Max       uint32
	Fields    []Field[T]
}

// CheckDecode fails with errs.ErrUnknownVersion when version cannot be read.
func (l *Layout[T]) CheckDecode(version uint32) error {
	if version < l.MinDecode || version > l.Max {
		return eris.Wrapf(errs.ErrUnknownVersion, "%s version %d, readable %d..%d", l.Name, version, l.MinDecode, l.Max)
	}
	return nil
}

// CheckEncode fails with errs.ErrUnknownVersion when version cannot be
// written.
func (l *Layout[T]) CheckEncode(version uint32) error {
	if version > l.Max {
		return eris.Wrapf(errs.ErrUnknownVersion, "%s version %d, writable up to %d", l.Name, version, l.Max)
	}
	if version < l.MinEncode {
		return eris.Wrapf(errs.ErrUnknownVersion, "%s version %d: encode not implemented below %d", l.Name, version, l.MinEncode)
	}
	return nil
}

// Decode reads every field present in version into rec.
func (l *Layout[T]) Decode(r *binio.Buffer, rec *T, version uint32) error {
	if err := l.CheckDecode(version); err != nil {
		return err
	}
	for _, f := range l.Fields {
		if !f.present(version) {
			continue
		}
		if err := f.Read(r, rec, version); err != nil {
			return eris.Wrapf(err, "%s.%s", l.Name, f.Name)
		}
	}
	return nil
}

// Encode writes every field present in version from rec.
func (l *Layout[T]) Encode(w *binio.Buffer, rec *T, version uint32) error {
	if err := l.CheckEncode(version); err != nil {
		return err
	}
	for _, f := range l.Fields {
		if !f.present(version) {
			continue
		}
		if err := f.Write(w, rec, version); err != nil {
			return eris.Wrapf(err, "%s.%s", l.Name, f.Name)
		}
	}
	return nil
}
