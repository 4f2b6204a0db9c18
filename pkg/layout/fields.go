package layout

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rawbytedev/genom/pkg/binio"
)

// scalar builds a field from a reader, a writer and a pointer accessor.
func scalar[T, V any](name string, when Predicate, get func(*T) *V, read func(*binio.Buffer) (V, error), write func(*binio.Buffer, V)) Field[T] {
	return Field[T]{
		Name: name,
		When: when,
		Read: func(r *binio.Buffer, rec *T, _ uint32) error {
			v, err := read(r)
			if err != nil {
				return err
			}
			*get(rec) = v
			return nil
		},
		Write: func(w *binio.Buffer, rec *T, _ uint32) error {
			write(w, *get(rec))
			return nil
		},
	}
}

func U8[T any](name string, when Predicate, get func(*T) *uint8) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadU8, (*binio.Buffer).WriteU8)
}

func U16[T any](name string, when Predicate, get func(*T) *uint16) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadU16, (*binio.Buffer).WriteU16)
}

func U32[T any](name string, when Predicate, get func(*T) *uint32) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadU32, (*binio.Buffer).WriteU32)
}

func I32[T any](name string, when Predicate, get func(*T) *int32) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadI32, (*binio.Buffer).WriteI32)
}

func F32[T any](name string, when Predicate, get func(*T) *float32) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadF32, (*binio.Buffer).WriteF32)
}

// Bool keeps the stored byte, so non-canonical true values round trip.
func Bool[T any](name string, when Predicate, get func(*T) *binio.Bool) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadBool, (*binio.Buffer).WriteBool)
}

func Vec3[T any](name string, when Predicate, get func(*T) *mgl32.Vec3) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadVec3, (*binio.Buffer).WriteVec3)
}

func Vec4[T any](name string, when Predicate, get func(*T) *mgl32.Vec4) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadVec4, (*binio.Buffer).WriteVec4)
}

func Quat[T any](name string, when Predicate, get func(*T) *mgl32.Quat) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadQuat, (*binio.Buffer).WriteQuat)
}

func Mat4[T any](name string, when Predicate, get func(*T) *mgl32.Mat4) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadMat4, (*binio.Buffer).WriteMat4)
}

func GUID[T any](name string, when Predicate, get func(*T) *binio.GUID) Field[T] {
	return scalar(name, when, get, (*binio.Buffer).ReadGUID, (*binio.Buffer).WriteGUID)
}

// FileTime stores a time.Time as a Windows FILETIME.
func FileTime[T any](name string, when Predicate, get func(*T) *time.Time) Field[T] {
	return scalar(name, when, get, func(r *binio.Buffer) (time.Time, error) {
		ft, err := r.ReadFileTime()
		return ft.Time(), err
	}, func(w *binio.Buffer, t time.Time) {
		w.WriteFileTime(binio.FileTimeOf(t))
	})
}

// String reads and writes through the buffer's string codec.
func String[T any](name string, when Predicate, get func(*T) *string) Field[T] {
	return Field[T]{
		Name: name,
		When: when,
		Read: func(r *binio.Buffer, rec *T, _ uint32) error {
			s, err := r.ReadString()
			if err != nil {
				return err
			}
			*get(rec) = s
			return nil
		},
		Write: func(w *binio.Buffer, rec *T, _ uint32) error {
			return w.WriteString(*get(rec))
		},
	}
}

// U16As32 is a u16 on disk held in a uint32 field, for values that widened
// in later versions.
func U16As32[T any](name string, when Predicate, get func(*T) *uint32) Field[T] {
	return scalar(name, when, get, func(r *binio.Buffer) (uint32, error) {
		v, err := r.ReadU16()
		return uint32(v), err
	}, func(w *binio.Buffer, v uint32) {
		w.WriteU16(uint16(v))
	})
}

// Raw is n bytes kept as read. A short or missing slice is written as zero
// padding.
func Raw[T any](name string, when Predicate, n int, get func(*T) *[]byte) Field[T] {
	return Field[T]{
		Name: name,
		When: when,
		Read: func(r *binio.Buffer, rec *T, _ uint32) error {
			p, err := r.ReadBytes(n)
			if err != nil {
				return err
			}
			*get(rec) = p
			return nil
		},
		Write: func(w *binio.Buffer, rec *T, _ uint32) error {
			out := make([]byte, n)
			copy(out, *get(rec))
			w.WriteBytes(out)
			return nil
		},
	}
}

// Embed nests another layout at the same version.
func Embed[T, U any](name string, when Predicate, l *Layout[U], get func(*T) *U) Field[T] {
	return Field[T]{
		Name: name,
		When: when,
		Read: func(r *binio.Buffer, rec *T, version uint32) error {
			return l.Decode(r, get(rec), version)
		},
		Write: func(w *binio.Buffer, rec *T, version uint32) error {
			return l.Encode(w, get(rec), version)
		},
	}
}

// Custom wraps hand written read and write functions.
func Custom[T any](name string, when Predicate, read, write func(b *binio.Buffer, rec *T, version uint32) error) Field[T] {
	return Field[T]{Name: name, When: when, Read: read, Write: write}
}
