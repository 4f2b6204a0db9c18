package property

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
)

type (
	Bool   binio.Bool
	Char   int8
	Short  int16
	UShort uint16
	Int    int32
	UInt   uint32
	Long   int32
	ULong  uint32
	Float  float32
	Double float64
	String string

	Vector2    mgl32.Vec2
	Vector     mgl32.Vec3
	Vector4    mgl32.Vec4
	Quaternion mgl32.Quat
	Matrix     mgl32.Mat4
	Matrix3    mgl32.Mat3
	Color      mgl32.Vec3
	GUID       binio.GUID
)

func (Bool) TypeName() string       { return "bool" }
func (Char) TypeName() string       { return "char" }
func (Short) TypeName() string      { return "short" }
func (UShort) TypeName() string     { return "unsigned short" }
func (Int) TypeName() string        { return "int" }
func (UInt) TypeName() string       { return "unsigned int" }
func (Long) TypeName() string       { return "long" }
func (ULong) TypeName() string      { return "unsigned long" }
func (Float) TypeName() string      { return "float" }
func (Double) TypeName() string     { return "double" }
func (String) TypeName() string     { return "bCString" }
func (Vector2) TypeName() string    { return "bCVector2" }
func (Vector) TypeName() string     { return "bCVector" }
func (Vector4) TypeName() string    { return "bCVector4" }
func (Quaternion) TypeName() string { return "bCQuaternion" }
func (Matrix) TypeName() string     { return "bCMatrix" }
func (Matrix3) TypeName() string    { return "bCMatrix3" }
func (Color) TypeName() string      { return "bCFloatColor" }
func (GUID) TypeName() string       { return "bCGuid" }

// ResourceString names an external resource. Several type names share this
// layout; Type keeps the one the value was read with.
type ResourceString struct {
	Type  string
	Value string
}

func (r ResourceString) TypeName() string { return r.Type }

var resourceStringTypes = []string{
	"bCImageResourceString",
	"bCImageOrMaterialResourceString",
	"bCMeshResourceString",
	"bCSpeedTreeResourceString",
	"eCLocString",
}

type EulerAngles struct{ Yaw, Pitch, Roll float32 }

func (EulerAngles) TypeName() string { return "bCEulerAngles" }

// ByteColor is a packed 8-bit RGBA color.
type ByteColor struct{ R, G, B, A uint8 }

func (ByteColor) TypeName() string { return "bCByteAlphaColor" }

type Range struct{ Min, Max float32 }

func (Range) TypeName() string { return "bCRange1" }

type Box struct{ Min, Max mgl32.Vec3 }

func (Box) TypeName() string { return "bCBox" }

type Sphere struct {
	Radius float32
	Center mgl32.Vec3
}

func (Sphere) TypeName() string { return "bCSphere" }

// EntityProxy references an entity or template by GUID.
type EntityProxy struct {
	Type    string
	Version uint16
	ID      binio.GUID
}

func (e EntityProxy) TypeName() string { return e.Type }

var entityProxyTypes = []string{"eCEntityProxy", "eCTemplateEntityProxy"}

type FloatArray []float32

func (FloatArray) TypeName() string { return "bTValArray<float>" }

type IntArray []int32

func (IntArray) TypeName() string { return "bTValArray<long>" }

type StringArray []string

func (StringArray) TypeName() string { return "bTObjArray<class bCString>" }

// Buffer holds the payload of a type name no codec is registered for.
type Buffer struct {
	Type string
	Raw  []byte
}

func (b Buffer) TypeName() string { return b.Type }

// readCount reads a u32 element count and checks that count elements of
// width bytes fit in what is left of r.
func readCount(r *binio.Buffer, width int) (int, error) {
	n, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if int64(n)*int64(width) > int64(r.Remaining()) {
		return 0, eris.Wrapf(errs.ErrInvalidStructure, "%d elements of %d bytes exceed %d remaining", n, width, r.Remaining())
	}
	return int(n), nil
}

func init() {
	Register("bool", 1, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadBool()
		return Bool(v), err
	}, typed(func(w *binio.Buffer, d Bool) error {
		w.WriteBool(binio.Bool(d))
		return nil
	}))
	Register("char", 1, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadI8()
		return Char(v), err
	}, typed(func(w *binio.Buffer, d Char) error {
		w.WriteI8(int8(d))
		return nil
	}))
	Register("short", 2, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadI16()
		return Short(v), err
	}, typed(func(w *binio.Buffer, d Short) error {
		w.WriteI16(int16(d))
		return nil
	}))
	Register("unsigned short", 2, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadU16()
		return UShort(v), err
	}, typed(func(w *binio.Buffer, d UShort) error {
		w.WriteU16(uint16(d))
		return nil
	}))
	Register("int", 4, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadI32()
		return Int(v), err
	}, typed(func(w *binio.Buffer, d Int) error {
		w.WriteI32(int32(d))
		return nil
	}))
	Register("unsigned int", 4, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadU32()
		return UInt(v), err
	}, typed(func(w *binio.Buffer, d UInt) error {
		w.WriteU32(uint32(d))
		return nil
	}))
	Register("long", 4, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadI32()
		return Long(v), err
	}, typed(func(w *binio.Buffer, d Long) error {
		w.WriteI32(int32(d))
		return nil
	}))
	Register("unsigned long", 4, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadU32()
		return ULong(v), err
	}, typed(func(w *binio.Buffer, d ULong) error {
		w.WriteU32(uint32(d))
		return nil
	}))
	Register("float", 4, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadF32()
		return Float(v), err
	}, typed(func(w *binio.Buffer, d Float) error {
		w.WriteF32(float32(d))
		return nil
	}))
	Register("double", 8, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadF64()
		return Double(v), err
	}, typed(func(w *binio.Buffer, d Double) error {
		w.WriteF64(float64(d))
		return nil
	}))
	Register("bCString", -1, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadString()
		return String(v), err
	}, typed(func(w *binio.Buffer, d String) error {
		return w.WriteString(string(d))
	}))
	for _, name := range resourceStringTypes {
		Register(name, -1, func(r *binio.Buffer, typeName string) (Data, error) {
			v, err := r.ReadString()
			return ResourceString{Type: typeName, Value: v}, err
		}, typed(func(w *binio.Buffer, d ResourceString) error {
			return w.WriteString(d.Value)
		}))
	}

	// --- geometry ---
	Register("bCVector2", 8, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadVec2()
		return Vector2(v), err
	}, typed(func(w *binio.Buffer, d Vector2) error {
		w.WriteVec2(mgl32.Vec2(d))
		return nil
	}))
	Register("bCVector", 12, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadVec3()
		return Vector(v), err
	}, typed(func(w *binio.Buffer, d Vector) error {
		w.WriteVec3(mgl32.Vec3(d))
		return nil
	}))
	Register("bCVector4", 16, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadVec4()
		return Vector4(v), err
	}, typed(func(w *binio.Buffer, d Vector4) error {
		w.WriteVec4(mgl32.Vec4(d))
		return nil
	}))
	Register("bCQuaternion", 16, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadQuat()
		return Quaternion(v), err
	}, typed(func(w *binio.Buffer, d Quaternion) error {
		w.WriteQuat(mgl32.Quat(d))
		return nil
	}))
	Register("bCMatrix", 64, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadMat4()
		return Matrix(v), err
	}, typed(func(w *binio.Buffer, d Matrix) error {
		w.WriteMat4(mgl32.Mat4(d))
		return nil
	}))
	Register("bCMatrix3", 36, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadMat3()
		return Matrix3(v), err
	}, typed(func(w *binio.Buffer, d Matrix3) error {
		w.WriteMat3(mgl32.Mat3(d))
		return nil
	}))
	Register("bCFloatColor", 12, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadVec3()
		return Color(v), err
	}, typed(func(w *binio.Buffer, d Color) error {
		w.WriteVec3(mgl32.Vec3(d))
		return nil
	}))
	Register("bCEulerAngles", 12, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadVec3()
		return EulerAngles{Yaw: v[0], Pitch: v[1], Roll: v[2]}, err
	}, typed(func(w *binio.Buffer, e EulerAngles) error {
		w.WriteVec3(mgl32.Vec3{e.Yaw, e.Pitch, e.Roll})
		return nil
	}))
	Register("bCByteAlphaColor", 4, func(r *binio.Buffer, _ string) (Data, error) {
		p, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		return ByteColor{R: p[0], G: p[1], B: p[2], A: p[3]}, nil
	}, typed(func(w *binio.Buffer, c ByteColor) error {
		w.WriteBytes([]byte{c.R, c.G, c.B, c.A})
		return nil
	}))
	Register("bCRange1", 8, func(r *binio.Buffer, _ string) (Data, error) {
		v, err := r.ReadVec2()
		return Range{Min: v[0], Max: v[1]}, err
	}, typed(func(w *binio.Buffer, v Range) error {
		w.WriteVec2(mgl32.Vec2{v.Min, v.Max})
		return nil
	}))
	Register("bCBox", 24, func(r *binio.Buffer, _ string) (Data, error) {
		var b Box
		var err error
		if b.Min, err = r.ReadVec3(); err != nil {
			return nil, err
		}
		b.Max, err = r.ReadVec3()
		return b, err
	}, typed(func(w *binio.Buffer, b Box) error {
		w.WriteVec3(b.Min)
		w.WriteVec3(b.Max)
		return nil
	}))
	Register("bCSphere", 16, func(r *binio.Buffer, _ string) (Data, error) {
		var s Sphere
		var err error
		if s.Radius, err = r.ReadF32(); err != nil {
			return nil, err
		}
		s.Center, err = r.ReadVec3()
		return s, err
	}, typed(func(w *binio.Buffer, s Sphere) error {
		w.WriteF32(s.Radius)
		w.WriteVec3(s.Center)
		return nil
	}))
	Register("bCGuid", binio.GUIDSize, func(r *binio.Buffer, _ string) (Data, error) {
		g, err := r.ReadGUID()
		return GUID(g), err
	}, typed(func(w *binio.Buffer, d GUID) error {
		w.WriteGUID(binio.GUID(d))
		return nil
	}))
	for _, name := range entityProxyTypes {
		Register(name, 2+binio.GUIDSize, func(r *binio.Buffer, typeName string) (Data, error) {
			e := EntityProxy{Type: typeName}
			var err error
			if e.Version, err = r.ReadU16(); err != nil {
				return nil, err
			}
			e.ID, err = r.ReadGUID()
			return e, err
		}, typed(func(w *binio.Buffer, e EntityProxy) error {
			w.WriteU16(e.Version)
			w.WriteGUID(e.ID)
			return nil
		}))
	}

	// --- arrays ---
	Register("bTValArray<float>", -1, func(r *binio.Buffer, _ string) (Data, error) {
		n, err := readCount(r, 4)
		if err != nil {
			return nil, err
		}
		v, err := r.ReadF32s(n)
		return FloatArray(v), err
	}, typed(func(w *binio.Buffer, v FloatArray) error {
		w.WriteU32(uint32(len(v)))
		w.WriteF32s(v)
		return nil
	}))
	Register("bTValArray<long>", -1, func(r *binio.Buffer, _ string) (Data, error) {
		n, err := readCount(r, 4)
		if err != nil {
			return nil, err
		}
		words, err := r.ReadU32s(n)
		if err != nil {
			return nil, err
		}
		v := make(IntArray, n)
		for i, w := range words {
			v[i] = int32(w)
		}
		return v, nil
	}, typed(func(w *binio.Buffer, v IntArray) error {
		w.WriteU32(uint32(len(v)))
		for _, x := range v {
			w.WriteI32(x)
		}
		return nil
	}))
	Register("bTObjArray<class bCString>", -1, func(r *binio.Buffer, _ string) (Data, error) {
		n, err := readCount(r, 2)
		if err != nil {
			return nil, err
		}
		v := make(StringArray, n)
		for i := range v {
			if v[i], err = r.ReadString(); err != nil {
				return nil, err
			}
		}
		return v, nil
	}, typed(func(w *binio.Buffer, v StringArray) error {
		w.WriteU32(uint32(len(v)))
		for _, s := range v {
			if err := w.WriteString(s); err != nil {
				return err
			}
		}
		return nil
	}))
}
