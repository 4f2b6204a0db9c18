package binio

import (
	"encoding/binary"
	"io"
	"testing"
	"testing/quick"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarsBothOrders(t *testing.T) {
	for _, order := range []ByteOrder{binary.LittleEndian, binary.BigEndian} {
		w := New(order)
		w.WriteU8(0xAB)
		w.WriteBool(True)
		w.WriteI16(-2)
		w.WriteU32(0xDEADBEEF)
		w.WriteI64(-1 << 40)
		w.WriteF32(1.5)
		w.WriteF64(-0.25)

		r := FromBytes(w.Bytes(), order)
		u8, err := r.ReadU8()
		require.NoError(t, err)
		assert.Equal(t, uint8(0xAB), u8)
		bl, err := r.ReadBool()
		require.NoError(t, err)
		assert.True(t, bl.IsTrue())
		i16, err := r.ReadI16()
		require.NoError(t, err)
		assert.Equal(t, int16(-2), i16)
		u32, err := r.ReadU32()
		require.NoError(t, err)
		assert.Equal(t, uint32(0xDEADBEEF), u32)
		i64, err := r.ReadI64()
		require.NoError(t, err)
		assert.Equal(t, int64(-1<<40), i64)
		f32, err := r.ReadF32()
		require.NoError(t, err)
		assert.Equal(t, float32(1.5), f32)
		f64, err := r.ReadF64()
		require.NoError(t, err)
		assert.Equal(t, -0.25, f64)
		assert.Equal(t, 0, r.Remaining())
	}
}

func TestBigEndianLayout(t *testing.T) {
	w := New(binary.BigEndian)
	w.WriteU32(1)
	require.Equal(t, []byte{0, 0, 0, 1}, w.Bytes())
	require.True(t, w.BigEndian())
}

func TestShortReadIsIOError(t *testing.T) {
	r := FromBytes([]byte{1, 2}, binary.LittleEndian)
	_, err := r.ReadU32()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Equal(t, 0, r.Pos())
}

func TestGeometryRoundTrip(t *testing.T) {
	w := New(binary.LittleEndian)
	q := mgl32.Quat{W: 0.5, V: mgl32.Vec3{1, 2, 3}}
	m := mgl32.Ident4()
	m[12] = 7
	w.WriteQuat(q)
	w.WriteMat4(m)
	w.WriteVec3(mgl32.Vec3{4, 5, 6})
	// quaternions are stored x, y, z, w
	require.Equal(t, float32(0.5), FromBytes(w.Bytes()[12:16], binary.LittleEndian).mustF32(t))

	r := FromBytes(w.Bytes(), binary.LittleEndian)
	gq, err := r.ReadQuat()
	require.NoError(t, err)
	assert.Equal(t, q, gq)
	gm, err := r.ReadMat4()
	require.NoError(t, err)
	assert.Equal(t, m, gm)
	gv, err := r.ReadVec3()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, gv)
}

func (b *Buffer) mustF32(t *testing.T) float32 {
	v, err := b.ReadF32()
	require.NoError(t, err)
	return v
}

func TestGUIDRoundTrip(t *testing.T) {
	g := NewGUID()
	w := New(binary.LittleEndian)
	w.WriteGUID(g)
	require.Equal(t, GUIDSize, w.Len())
	got, err := FromBytes(w.Bytes(), binary.LittleEndian).ReadGUID()
	require.NoError(t, err)
	require.Equal(t, g, got)
}

func TestStoredFlagsKeepTheirBytes(t *testing.T) {
	in := []byte{0x02, 0xCD}
	in = append(in, make([]byte, 16)...)
	in = append(in, 0x02, 0, 0, 0)

	r := FromBytes(in, nil)
	a, err := r.ReadBool()
	require.NoError(t, err)
	b, err := r.ReadBool()
	require.NoError(t, err)
	g, err := r.ReadGUID()
	require.NoError(t, err)
	assert.True(t, a.IsTrue())
	assert.True(t, b.IsTrue())
	assert.True(t, g.IsValid())
	assert.False(t, GUID{}.IsValid())

	w := New(nil)
	w.WriteBool(a)
	w.WriteBool(b)
	w.WriteGUID(g)
	require.Equal(t, in, w.Bytes())
	assert.Equal(t, True, BoolOf(true))
	assert.Equal(t, False, BoolOf(false))
}

func TestFileTime(t *testing.T) {
	ts := time.Date(2009, 10, 13, 12, 30, 15, 123456700, time.UTC)
	ft := FileTimeOf(ts)
	require.Equal(t, ts, ft.Time())
	require.Equal(t, time.Unix(0, 0).UTC(), FileTime(unixEpochFileTime).Time())
}

func TestSeekAndRead(t *testing.T) {
	b := FromBytes([]byte("genome"), binary.LittleEndian)
	off, err := b.Seek(-3, io.SeekEnd)
	require.NoError(t, err)
	require.Equal(t, int64(3), off)
	rest, err := io.ReadAll(b)
	require.NoError(t, err)
	require.Equal(t, "ome", string(rest))
	_, err = b.Seek(1, io.SeekEnd)
	require.Error(t, err)
	require.NoError(t, b.SeekTo(0))
	c, err := b.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('g'), c)
}

func TestLimitDoesNotMoveParent(t *testing.T) {
	b := FromBytes([]byte{1, 2, 3, 4, 5}, binary.LittleEndian)
	require.NoError(t, b.Skip(1))
	sub, err := b.Limit(3)
	require.NoError(t, err)
	require.Equal(t, 1, b.Pos())
	require.Equal(t, []byte{2, 3, 4}, sub.Bytes())
	// writes to the sub-reader never clobber the parent
	sub.WriteU8(9)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, b.Bytes())
	_, err = b.Limit(10)
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestWriteSized32(t *testing.T) {
	w := New(binary.BigEndian)
	require.NoError(t, w.WriteSized32(func(s *Buffer) error {
		s.WriteU16(7)
		return s.WriteString("ab")
	}))
	require.Equal(t, []byte{0, 0, 0, 6, 0, 7, 0, 2, 'a', 'b'}, w.Bytes())
}

func TestInlineStrings(t *testing.T) {
	w := New(binary.BigEndian)
	w.SetStrings(Inline32{})
	require.NoError(t, w.WriteString("Dämon"))
	require.Equal(t, []byte{0, 0, 0, 5}, w.Bytes()[:4])
	r := w.Derive(w.Bytes())
	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "Dämon", s)

	bad := FromBytes([]byte{0xff, 0, 0, 0}, binary.LittleEndian)
	bad.SetStrings(Inline32{})
	_, err = bad.ReadString()
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestU32sQuick(t *testing.T) {
	check := func(vs []uint32, big bool) bool {
		var order ByteOrder = binary.LittleEndian
		if big {
			order = binary.BigEndian
		}
		w := New(order)
		w.WriteU32s(vs)
		got, err := w.Derive(w.Bytes()).ReadU32s(len(vs))
		return err == nil && assert.ObjectsAreEqual(append([]uint32{}, vs...), got)
	}
	require.NoError(t, quick.Check(check, nil))
}
