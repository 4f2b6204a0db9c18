package property

import (
	"encoding/binary"
	"testing"
	"testing/quick"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, p Property) Property {
	t.Helper()
	w := binio.New(binary.LittleEndian)
	require.NoError(t, Encode(w, p))
	r := binio.FromBytes(w.Bytes(), binary.LittleEndian)
	got, err := Decode(r)
	require.NoError(t, err)
	require.Equal(t, 0, r.Remaining())
	return got
}

func TestRoundTripEveryType(t *testing.T) {
	speed, err := EnumOf("gEWeatherType", "gEWeatherType_Rainy")
	require.NoError(t, err)
	values := []Data{
		Bool(binio.True),
		Char(-3),
		Short(-300),
		UShort(60000),
		Int(-70000),
		UInt(0xFFFFFFF0),
		Long(42),
		ULong(7),
		Float(1.25),
		Double(-2.5),
		String("Harbour Town"),
		ResourceString{Type: "bCMeshResourceString", Value: "Hero_Body.xmsh"},
		ResourceString{Type: "eCLocString", Value: "INFO_HELLO"},
		Vector2{1, 2},
		Vector{1, 2, 3},
		Vector4{1, 2, 3, 4},
		Quaternion(mgl32.QuatIdent()),
		Matrix(mgl32.Ident4()),
		Matrix3(mgl32.Ident3()),
		Color{0.5, 0.25, 1},
		EulerAngles{Yaw: 1, Pitch: 2, Roll: 3},
		ByteColor{R: 1, G: 2, B: 3, A: 255},
		Range{Min: -1, Max: 1},
		Box{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}},
		Sphere{Radius: 2, Center: mgl32.Vec3{0, 1, 0}},
		GUID(binio.NewGUID()),
		EntityProxy{Type: "eCTemplateEntityProxy", Version: 1, ID: binio.NewGUID()},
		FloatArray{0.5, 1.5},
		IntArray{-1, 0, 1},
		StringArray{"a", "", "ccc"},
		Enum{speed},
		ContainerEnum{EnumValue{Enum: "gEDirection", Raw: 2}},
		EnumArray{Enum: "gEGuild", Values: []uint32{1, 2, 3}},
		Buffer{Type: "gCUnheardOf", Raw: []byte{9, 8, 7}},
	}
	for _, d := range values {
		t.Run(d.TypeName(), func(t *testing.T) {
			got := roundTrip(t, New("Value", d))
			assert.Equal(t, "Value", got.Name)
			assert.Equal(t, uint16(Version), got.Version)
			assert.Equal(t, d, got.Data)
		})
	}
}

func TestPropertyHeaderLayout(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, Encode(w, Property{Name: "A", Data: Int(5)}))
	want := []byte{
		1, 0, 'A',
		3, 0, 'i', 'n', 't',
		30, 0,
		4, 0, 0, 0,
		5, 0, 0, 0,
	}
	require.Equal(t, want, w.Bytes())
}

func TestStoredFlagBytesRoundTrip(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, w.WriteString("Locked"))
	require.NoError(t, w.WriteString("bool"))
	w.WriteU16(Version)
	w.WriteU32(1)
	w.WriteU8(0x02)
	require.NoError(t, w.WriteString("Owner"))
	require.NoError(t, w.WriteString("bCGuid"))
	w.WriteU16(Version)
	w.WriteU32(binio.GUIDSize)
	w.WriteBytes(make([]byte, 16))
	w.WriteU32(0xCDCDCDCD)
	in := w.Bytes()

	l, err := DecodeList(binio.FromBytes(in, binary.LittleEndian), 2)
	require.NoError(t, err)
	assert.Equal(t, Bool(2), l[0].Data)
	assert.Equal(t, uint32(0xCDCDCDCD), binio.GUID(l[1].Data.(GUID)).Valid)

	out := binio.New(binary.LittleEndian)
	require.NoError(t, EncodeList(out, l))
	require.Equal(t, in, out.Bytes())
}

type mislabeled struct{ Int }

func (mislabeled) TypeName() string { return "bCString" }

func TestEncodeRejectsMismatchedValueType(t *testing.T) {
	for _, d := range []Data{
		ResourceString{Type: "bCString", Value: "x"},
		ResourceString{Type: "bool"},
		mislabeled{5},
	} {
		err := Encode(binio.New(nil), New("P", d))
		require.ErrorIs(t, err, errs.ErrInvalidStructure, "%T", d)
	}
}

func TestDeclaredSizeMismatch(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, w.WriteString("A"))
	require.NoError(t, w.WriteString("int"))
	w.WriteU16(Version)
	w.WriteU32(3)
	w.WriteBytes([]byte{1, 2, 3})

	_, err := Decode(binio.FromBytes(w.Bytes(), binary.LittleEndian))
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestVariablePayloadMustFillDeclaredSize(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, w.WriteString("Names"))
	require.NoError(t, w.WriteString("bCString"))
	w.WriteU16(Version)
	w.WriteU32(5)
	require.NoError(t, w.WriteString("ab"))
	w.WriteU8(0)

	_, err := Decode(binio.FromBytes(w.Bytes(), binary.LittleEndian))
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestPayloadOverrunIsInvalidStructure(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, w.WriteString("Names"))
	require.NoError(t, w.WriteString("bCString"))
	w.WriteU16(Version)
	w.WriteU32(3)
	w.WriteU16(10)
	w.WriteU8('x')

	_, err := Decode(binio.FromBytes(w.Bytes(), binary.LittleEndian))
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestWrongVersionRejected(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, Encode(w, Property{Name: "A", Version: 29, Data: Bool(binio.True)}))
	_, err := Decode(binio.FromBytes(w.Bytes(), binary.LittleEndian))
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestDeclaredSizeBeyondInput(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, w.WriteString("A"))
	require.NoError(t, w.WriteString("gCMystery"))
	w.WriteU16(Version)
	w.WriteU32(100)
	w.WriteBytes([]byte{1, 2})
	_, err := Decode(binio.FromBytes(w.Bytes(), binary.LittleEndian))
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestUnknownEnumValueKept(t *testing.T) {
	d := Enum{EnumValue{Enum: "gEGender", Raw: 99}}
	got := roundTrip(t, New("Gender", d))
	e := got.Data.(Enum)
	assert.True(t, e.Unknown())
	assert.Equal(t, uint32(99), e.Raw)
	assert.Equal(t, "gEGender(99)", e.String())
}

func TestEnumHeaderChecked(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, w.WriteString("Gender"))
	require.NoError(t, w.WriteString("gEGender"))
	w.WriteU16(Version)
	w.WriteU32(6)
	w.WriteU16(200)
	w.WriteU32(1)
	_, err := Decode(binio.FromBytes(w.Bytes(), binary.LittleEndian))
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestEnumMembers(t *testing.T) {
	v, err := EnumOf("gEGender", "gEGender_Female")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v.Raw)
	assert.Equal(t, "gEGender_Female", v.String())

	_, err = EnumOf("gEGender", "gEGender_Other")
	require.ErrorIs(t, err, errs.ErrEnumUnparseable)
	assert.True(t, errs.Recoverable(err))

	def, ok := LookupEnum("eEShaderMaterialVersion")
	require.True(t, ok)
	m, ok := def.Member(5)
	require.True(t, ok)
	assert.Equal(t, "eEShaderMaterialVersion_Elex", m)
}

func TestEnumTypeNames(t *testing.T) {
	v := EnumValue{Enum: "gEDirection", Raw: 1}
	assert.Equal(t, "gEDirection", Enum{v}.TypeName())
	assert.Equal(t, "bTPropertyContainer<enum gEDirection>", ContainerEnum{v}.TypeName())
	assert.Equal(t, "bTValArray<enum gEDirection>", EnumArray{Enum: "gEDirection"}.TypeName())

	assert.True(t, Registered("bTPropertyContainer<enum gEDirection>"))
	assert.True(t, Registered("bTValArray<enum gEDirection>"))
	assert.True(t, Registered("gEDirection"))
	assert.False(t, Registered("bTPropertyContainer<enum gENotDeclared>"))
	assert.False(t, Registered("gENotDeclared"))
}

func TestUnregisteredContainerEnumIsOpaque(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, w.WriteString("Mode"))
	require.NoError(t, w.WriteString("bTPropertyContainer<enum gENotDeclared>"))
	w.WriteU16(Version)
	w.WriteU32(6)
	w.WriteU16(EnumHeader)
	w.WriteU32(4)

	p, err := Decode(binio.FromBytes(w.Bytes(), binary.LittleEndian))
	require.NoError(t, err)
	b, ok := p.Data.(Buffer)
	require.True(t, ok)
	assert.Equal(t, []byte{201, 0, 4, 0, 0, 0}, b.Raw)

	out := binio.New(binary.LittleEndian)
	require.NoError(t, Encode(out, p))
	assert.Equal(t, w.Bytes(), out.Bytes())
}

func TestEnumArrayUnknownPositions(t *testing.T) {
	a := EnumArray{Enum: "gEGender", Values: []uint32{0, 7, 1, 8}}
	assert.Equal(t, []int{1, 3}, a.Unknown())
}

func TestListGetSet(t *testing.T) {
	var l List
	l.Set(New("A", Int(1)))
	l.Set(New("B", Bool(binio.True)))
	l.Set(New("A", Int(2)))
	require.Len(t, l, 2)
	p, ok := l.Get("A")
	require.True(t, ok)
	assert.Equal(t, Int(2), p.Data)
	_, ok = l.Get("C")
	assert.False(t, ok)

	w := binio.New(binary.LittleEndian)
	require.NoError(t, EncodeList(w, l))
	got, err := DecodeList(binio.FromBytes(w.Bytes(), binary.LittleEndian), len(l))
	require.NoError(t, err)
	assert.Equal(t, l, got)
}

func TestDecodeListCountTooLarge(t *testing.T) {
	_, err := DecodeList(binio.FromBytes([]byte{1, 2}, nil), 10)
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestEncodeWithoutData(t *testing.T) {
	err := Encode(binio.New(binary.LittleEndian), Property{Name: "A"})
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestBigEndianScalars(t *testing.T) {
	w := binio.New(binary.BigEndian)
	require.NoError(t, Encode(w, New("A", UInt(0x01020304))))
	assert.Equal(t, []byte{1, 2, 3, 4}, w.Bytes()[len(w.Bytes())-4:])
	got, err := Decode(binio.FromBytes(w.Bytes(), binary.BigEndian))
	require.NoError(t, err)
	assert.Equal(t, UInt(0x01020304), got.Data)
}

func TestQuickFloatArray(t *testing.T) {
	f := func(v []float32) bool {
		for _, x := range v {
			if x != x {
				return true
			}
		}
		w := binio.New(binary.LittleEndian)
		if err := Encode(w, New("Weights", FloatArray(v))); err != nil {
			return false
		}
		p, err := Decode(binio.FromBytes(w.Bytes(), binary.LittleEndian))
		if err != nil {
			return false
		}
		got := p.Data.(FloatArray)
		if len(got) != len(v) {
			return false
		}
		for i := range v {
			if got[i] != v[i] {
				return false
			}
		}
		return p.Name == "Weights"
	}
	require.NoError(t, quick.Check(f, nil))
}

func FuzzDecode(f *testing.F) {
	w := binio.New(binary.LittleEndian)
	_ = Encode(w, New("A", StringArray{"x", "y"}))
	f.Add(w.Bytes())
	f.Fuzz(func(t *testing.T, data []byte) {
		p, err := Decode(binio.FromBytes(data, binary.LittleEndian))
		if err != nil {
			return
		}
		out := binio.New(binary.LittleEndian)
		require.NoError(t, Encode(out, p))
	})
}
