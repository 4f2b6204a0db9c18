package binio

import "math"

// --- fixed-width readers ---

func (b *Buffer) ReadU8() (uint8, error) {
	p, err := b.take(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (b *Buffer) ReadI8() (int8, error) {
	v, err := b.ReadU8()
	return int8(v), err
}

// Bool is a one byte boolean kept as stored. Any non-zero byte is true and
// is written back unchanged.
type Bool uint8

const (
	False Bool = 0
	True  Bool = 1
)

// BoolOf returns the canonical byte for v.
func BoolOf(v bool) Bool {
	if v {
		return True
	}
	return False
}

func (v Bool) IsTrue() bool { return v != 0 }

func (b *Buffer) ReadBool() (Bool, error) {
	v, err := b.ReadU8()
	return Bool(v), err
}

func (b *Buffer) ReadU16() (uint16, error) {
	p, err := b.take(2)
	if err != nil {
		return 0, err
	}
	return b.order.Uint16(p), nil
}

func (b *Buffer) ReadI16() (int16, error) {
	v, err := b.ReadU16()
	return int16(v), err
}

func (b *Buffer) ReadU32() (uint32, error) {
	p, err := b.take(4)
	if err != nil {
		return 0, err
	}
	return b.order.Uint32(p), nil
}

func (b *Buffer) ReadI32() (int32, error) {
	v, err := b.ReadU32()
	return int32(v), err
}

func (b *Buffer) ReadU64() (uint64, error) {
	p, err := b.take(8)
	if err != nil {
		return 0, err
	}
	return b.order.Uint64(p), nil
}

func (b *Buffer) ReadI64() (int64, error) {
	v, err := b.ReadU64()
	return int64(v), err
}

func (b *Buffer) ReadF32() (float32, error) {
	v, err := b.ReadU32()
	return math.Float32frombits(v), err
}

func (b *Buffer) ReadF64() (float64, error) {
	v, err := b.ReadU64()
	return math.Float64frombits(v), err
}

// ReadBytes returns a copy of the next n bytes.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	p, err := b.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

// ReadU32s reads n consecutive u32 values.
func (b *Buffer) ReadU32s(n int) ([]uint32, error) {
	p, err := b.take(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = b.order.Uint32(p[i*4:])
	}
	return out, nil
}

// ReadF32s reads n consecutive f32 values.
func (b *Buffer) ReadF32s(n int) ([]float32, error) {
	words, err := b.ReadU32s(n)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i, w := range words {
		out[i] = math.Float32frombits(w)
	}
	return out, nil
}

// --- fixed-width writers ---

func (b *Buffer) WriteU8(v uint8) { b.data = append(b.data, v) }
func (b *Buffer) WriteI8(v int8)  { b.data = append(b.data, byte(v)) }

func (b *Buffer) WriteBool(v Bool) { b.data = append(b.data, byte(v)) }

func (b *Buffer) WriteU16(v uint16)  { b.data = b.order.AppendUint16(b.data, v) }
func (b *Buffer) WriteI16(v int16)   { b.WriteU16(uint16(v)) }
func (b *Buffer) WriteU32(v uint32)  { b.data = b.order.AppendUint32(b.data, v) }
func (b *Buffer) WriteI32(v int32)   { b.WriteU32(uint32(v)) }
func (b *Buffer) WriteU64(v uint64)  { b.data = b.order.AppendUint64(b.data, v) }
func (b *Buffer) WriteI64(v int64)   { b.WriteU64(uint64(v)) }
func (b *Buffer) WriteF32(v float32) { b.WriteU32(math.Float32bits(v)) }
func (b *Buffer) WriteF64(v float64) { b.WriteU64(math.Float64bits(v)) }

// WriteBytes appends p unchanged.
func (b *Buffer) WriteBytes(p []byte) { b.data = append(b.data, p...) }

func (b *Buffer) WriteU32s(vs []uint32) {
	for _, v := range vs {
		b.WriteU32(v)
	}
}

func (b *Buffer) WriteF32s(vs []float32) {
	for _, v := range vs {
		b.WriteF32(v)
	}
}
