package binio

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

func (b *Buffer) readFloats(dst []float32) error {
	for i := range dst {
		v, err := b.ReadF32()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (b *Buffer) writeFloats(src []float32) {
	for _, v := range src {
		b.WriteF32(v)
	}
}

func (b *Buffer) ReadVec2() (mgl32.Vec2, error) {
	var v mgl32.Vec2
	return v, b.readFloats(v[:])
}

func (b *Buffer) ReadVec3() (mgl32.Vec3, error) {
	var v mgl32.Vec3
	return v, b.readFloats(v[:])
}

func (b *Buffer) ReadVec4() (mgl32.Vec4, error) {
	var v mgl32.Vec4
	return v, b.readFloats(v[:])
}

// ReadQuat reads a quaternion stored as x, y, z, w.
func (b *Buffer) ReadQuat() (mgl32.Quat, error) {
	var f [4]float32
	if err := b.readFloats(f[:]); err != nil {
		return mgl32.Quat{}, err
	}
	return mgl32.Quat{W: f[3], V: mgl32.Vec3{f[0], f[1], f[2]}}, nil
}

// ReadMat3 reads nine floats in file order.
func (b *Buffer) ReadMat3() (mgl32.Mat3, error) {
	var m mgl32.Mat3
	return m, b.readFloats(m[:])
}

// ReadMat4 reads sixteen floats in file order.
func (b *Buffer) ReadMat4() (mgl32.Mat4, error) {
	var m mgl32.Mat4
	return m, b.readFloats(m[:])
}

func (b *Buffer) WriteVec2(v mgl32.Vec2) { b.writeFloats(v[:]) }
func (b *Buffer) WriteVec3(v mgl32.Vec3) { b.writeFloats(v[:]) }
func (b *Buffer) WriteVec4(v mgl32.Vec4) { b.writeFloats(v[:]) }
func (b *Buffer) WriteMat3(m mgl32.Mat3) { b.writeFloats(m[:]) }
func (b *Buffer) WriteMat4(m mgl32.Mat4) { b.writeFloats(m[:]) }

func (b *Buffer) WriteQuat(q mgl32.Quat) {
	b.writeFloats([]float32{q.V[0], q.V[1], q.V[2], q.W})
}

// GUIDSize is the on-disk width of a GUID: 16 identifier bytes and a u32
// validity flag.
const GUIDSize = 20

// GUID identifies entities and templates. The identifier bytes are kept in
// file order. Valid is the stored u32 flag; any non-zero value means valid.
type GUID struct {
	ID    uuid.UUID
	Valid uint32
}

// NewGUID returns a fresh valid identifier for authored records.
func NewGUID() GUID {
	return GUID{ID: uuid.New(), Valid: 1}
}

func (g GUID) IsValid() bool { return g.Valid != 0 }

func (g GUID) String() string {
	if !g.IsValid() {
		return "invalid:" + g.ID.String()
	}
	return g.ID.String()
}

func (b *Buffer) ReadGUID() (GUID, error) {
	var g GUID
	p, err := b.take(16)
	if err != nil {
		return g, err
	}
	copy(g.ID[:], p)
	g.Valid, err = b.ReadU32()
	return g, err
}

func (b *Buffer) WriteGUID(g GUID) {
	b.WriteBytes(g.ID[:])
	b.WriteU32(g.Valid)
}

// FileTime is a Windows FILETIME: 100ns intervals since 1601-01-01 UTC.
type FileTime uint64

// 100ns intervals between 1601-01-01 and 1970-01-01.
const unixEpochFileTime = 116444736000000000

func (ft FileTime) Time() time.Time {
	d := int64(ft) - unixEpochFileTime
	return time.Unix(d/1e7, (d%1e7)*100).UTC()
}

// FileTimeOf converts t, truncated to 100ns.
func FileTimeOf(t time.Time) FileTime {
	return FileTime(t.Unix()*1e7 + int64(t.Nanosecond()/100) + unixEpochFileTime)
}

func (b *Buffer) ReadFileTime() (FileTime, error) {
	v, err := b.ReadU64()
	return FileTime(v), err
}

func (b *Buffer) WriteFileTime(ft FileTime) { b.WriteU64(uint64(ft)) }
