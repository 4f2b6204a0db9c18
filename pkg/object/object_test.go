package object

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rawbytedev/genom/pkg/property"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter is a test class: u16 version then u32 value. Only version 2 is
// understood.
type counter struct{ Value uint32 }

func (counter) ClassName() string { return "gCTestCounter" }

// greedy reads four bytes more than it should.
type greedy struct{}

func (greedy) ClassName() string { return "gCTestGreedy" }

// lazy reads nothing.
type lazy struct{}

func (lazy) ClassName() string { return "gCTestLazy" }

func init() {
	Register("gCTestCounter", Codec{
		Decode: func(r *binio.Buffer) (ClassData, error) {
			v, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			if v != 2 {
				return nil, eris.Wrapf(errs.ErrUnknownVersion, "counter version %d", v)
			}
			n, err := r.ReadU32()
			return counter{Value: n}, err
		},
		Encode: func(w *binio.Buffer, d ClassData) error {
			w.WriteU16(2)
			w.WriteU32(d.(counter).Value)
			return nil
		},
	})
	Register("gCTestGreedy", Codec{
		Decode: func(r *binio.Buffer) (ClassData, error) {
			_, err := r.ReadBytes(r.Remaining() + 4)
			return greedy{}, err
		},
		Encode: func(*binio.Buffer, ClassData) error { return nil },
	})
	Register("gCTestLazy", Codec{
		Decode: func(*binio.Buffer) (ClassData, error) { return lazy{}, nil },
		Encode: func(*binio.Buffer, ClassData) error { return nil },
	})
}

func encodeAccessor(t *testing.T, a Accessor) []byte {
	t.Helper()
	w := binio.New(binary.LittleEndian)
	require.NoError(t, EncodeAccessor(w, a))
	return w.Bytes()
}

func TestAccessorRoundTrip(t *testing.T) {
	a := NewAccessor(New(counter{Value: 77}, property.New("Name", property.String("Box"))))
	data := encodeAccessor(t, a)

	r := binio.FromBytes(data, binary.LittleEndian)
	got, err := DecodeAccessor(r)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Remaining())
	assert.Equal(t, a, got)
	assert.Equal(t, "gCTestCounter", got.ClassName())
	assert.Equal(t, data, encodeAccessor(t, got))
}

func TestAccessorKeepsValidByte(t *testing.T) {
	data := encodeAccessor(t, NewAccessor(New(counter{Value: 1})))
	data[2] = 0x02

	got, err := DecodeAccessor(binio.FromBytes(data, binary.LittleEndian))
	require.NoError(t, err)
	assert.Equal(t, binio.Bool(2), got.Valid)
	assert.Equal(t, "gCTestCounter", got.ClassName())
	assert.Equal(t, data, encodeAccessor(t, got))
}

func TestInvalidAccessor(t *testing.T) {
	data := encodeAccessor(t, Accessor{Version: AccessorVersion})
	assert.Equal(t, []byte{1, 0, 0}, data)

	got, err := DecodeAccessor(binio.FromBytes(data, nil))
	require.NoError(t, err)
	assert.False(t, got.Valid.IsTrue())
	assert.Nil(t, got.Object)
	assert.Equal(t, "", got.ClassName())
}

func TestAccessorVersionMustBeOne(t *testing.T) {
	_, err := DecodeAccessor(binio.FromBytes([]byte{2, 0, 0}, nil))
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestUnnamedClassIsInvalidSentinel(t *testing.T) {
	a := NewAccessor(New(nil))
	got, err := DecodeAccessor(binio.FromBytes(encodeAccessor(t, a), nil))
	require.NoError(t, err)
	assert.Equal(t, Invalid{}, got.Object.Class)
}

func TestUnknownClassIsOpaque(t *testing.T) {
	obj := New(Opaque{Name: "gCNeverHeardOf", Raw: []byte{5, 6, 7, 8}}, property.New("Flag", property.Bool(binio.True)))
	data := encodeAccessor(t, NewAccessor(obj))

	got, err := DecodeAccessor(binio.FromBytes(data, nil))
	require.NoError(t, err)
	assert.Equal(t, obj.Class, got.Object.Class)
	assert.Equal(t, data, encodeAccessor(t, got))
}

func TestUnknownClassVersionIsOpaque(t *testing.T) {
	raw := []byte{3, 0, 9, 9, 9, 9}
	data := encodeAccessor(t, NewAccessor(New(Opaque{Name: "gCTestCounter", Raw: raw})))

	got, err := DecodeAccessor(binio.FromBytes(data, nil))
	require.NoError(t, err)
	assert.Equal(t, Opaque{Name: "gCTestCounter", Raw: raw}, got.Object.Class)
	assert.Equal(t, data, encodeAccessor(t, got))
}

func TestOverrunningClassFallsBackAndSiblingsSurvive(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, EncodeAccessor(w, NewAccessor(New(Opaque{Name: "gCTestGreedy", Raw: []byte{1, 2}}))))
	require.NoError(t, EncodeAccessor(w, NewAccessor(New(counter{Value: 5}))))

	r := binio.FromBytes(w.Bytes(), nil)
	first, err := DecodeAccessor(r)
	require.NoError(t, err)
	assert.Equal(t, Opaque{Name: "gCTestGreedy", Raw: []byte{1, 2}}, first.Object.Class)
	second, err := DecodeAccessor(r)
	require.NoError(t, err)
	assert.Equal(t, counter{Value: 5}, second.Object.Class)
}

func TestUnreadPayloadSkippedWithWarning(t *testing.T) {
	var logs bytes.Buffer
	w := binio.New(binary.LittleEndian)
	require.NoError(t, EncodeAccessor(w, NewAccessor(&Object{
		Version:         1,
		PropertyVersion: PropertyVersion,
		Class:           lazy{},
		Trailing:        []byte{0xAA, 0xBB},
	})))
	w.WriteU32(0xCAFEBABE)

	r := binio.FromBytes(w.Bytes(), nil)
	r.SetLogger(zerolog.New(&logs))
	got, err := DecodeAccessor(r)
	require.NoError(t, err)
	assert.Equal(t, lazy{}, got.Object.Class)
	assert.Equal(t, []byte{0xAA, 0xBB}, got.Object.Trailing)
	assert.Contains(t, logs.String(), "skipping to object boundary")

	tail, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEBABE), tail)
}

func TestObjectSizeBeyondInput(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	w.WriteU16(1)
	w.WriteU32(100)
	_, err := DecodeObject(binio.FromBytes(w.Bytes(), nil), "gCTestLazy")
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestObjectLayout(t *testing.T) {
	w := binio.New(binary.LittleEndian)
	require.NoError(t, EncodeObject(w, New(counter{Value: 1})))
	want := []byte{
		1, 0,
		12, 0, 0, 0,
		201, 0,
		0, 0, 0, 0,
		2, 0,
		1, 0, 0, 0,
	}
	assert.Equal(t, want, w.Bytes())
}

func TestEncodeUnregisteredClass(t *testing.T) {
	err := EncodeObject(binio.New(nil), New(lazyUnregistered{}))
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

type lazyUnregistered struct{}

func (lazyUnregistered) ClassName() string { return "gCNotRegistered" }
