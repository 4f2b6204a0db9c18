// Package binio is the primitive codec every genom format is built on.
//
// A Buffer is a growable byte slice with an implicit write cursor at its end
// and an independently seekable read cursor. Buffers carry a byte order, a
// string codec and a logger; buffers derived from them (scratch buffers,
// bounded sub-readers) inherit all three so nested records encode the same
// way as their parent.
package binio

import (
	"encoding/binary"
	"io"

	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

var nopLogger = zerolog.Nop()

// ByteOrder is satisfied by binary.LittleEndian and binary.BigEndian.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

type Buffer struct {
	data    []byte
	pos     int
	order   ByteOrder
	strings StringCodec
	log     *zerolog.Logger
}

// New returns an empty buffer for writing.
func New(order ByteOrder) *Buffer {
	return FromBytes(nil, order)
}

// FromBytes returns a buffer reading data from its first byte. The slice is
// not copied.
func FromBytes(data []byte, order ByteOrder) *Buffer {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Buffer{data: data, order: order, strings: Inline16{}, log: &nopLogger}
}

// Derive returns a buffer over data with the same order, string codec and
// logger as b.
func (b *Buffer) Derive(data []byte) *Buffer {
	return &Buffer{data: data, order: b.order, strings: b.strings, log: b.log}
}

// Scratch returns an empty buffer sharing b's settings. Strings written to it
// go through the same codec, so an interning table stays shared.
func (b *Buffer) Scratch() *Buffer {
	return b.Derive(nil)
}

func (b *Buffer) Bytes() []byte            { return b.data }
func (b *Buffer) Len() int                 { return len(b.data) }
func (b *Buffer) Pos() int                 { return b.pos }
func (b *Buffer) Remaining() int           { return len(b.data) - b.pos }
func (b *Buffer) Order() ByteOrder         { return b.order }
func (b *Buffer) SetOrder(o ByteOrder)     { b.order = o }
func (b *Buffer) Strings() StringCodec     { return b.strings }
func (b *Buffer) SetStrings(s StringCodec) { b.strings = s }
func (b *Buffer) Logger() *zerolog.Logger  { return b.log }

// SetLogger replaces the logger used by decoders reading from b.
func (b *Buffer) SetLogger(l zerolog.Logger) { b.log = &l }

// BigEndian reports whether multi-byte values are stored big-endian.
func (b *Buffer) BigEndian() bool { return b.order == binary.BigEndian }

// --- read cursor ---

// SeekTo moves the read cursor to an absolute offset.
func (b *Buffer) SeekTo(off int) error {
	if off < 0 || off > len(b.data) {
		return eris.Wrapf(io.ErrUnexpectedEOF, "seek to %d outside buffer of %d bytes", off, len(b.data))
	}
	b.pos = off
	return nil
}

// Skip advances the read cursor by n bytes.
func (b *Buffer) Skip(n int) error {
	return b.SeekTo(b.pos + n)
}

// Seek implements io.Seeker on the read cursor.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(len(b.data))
	default:
		return 0, eris.Errorf("seek: invalid whence %d", whence)
	}
	target := base + offset
	if target < 0 || target > int64(len(b.data)) {
		return 0, eris.Wrapf(io.ErrUnexpectedEOF, "seek to %d outside buffer of %d bytes", target, len(b.data))
	}
	b.pos = int(target)
	return target, nil
}

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.pos >= len(b.data) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += n
	return n, nil
}

// ReadByte implements io.ByteReader.
func (b *Buffer) ReadByte() (byte, error) {
	if b.pos >= len(b.data) {
		return 0, io.EOF
	}
	c := b.data[b.pos]
	b.pos++
	return c, nil
}

// Write implements io.Writer. Writes always append.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// take returns the next n bytes without copying.
func (b *Buffer) take(n int) ([]byte, error) {
	if n < 0 || n > len(b.data)-b.pos {
		return nil, eris.Wrapf(io.ErrUnexpectedEOF, "read %d bytes at offset %d of %d", n, b.pos, len(b.data))
	}
	p := b.data[b.pos : b.pos+n]
	b.pos += n
	return p, nil
}

// Limit returns a sub-reader over the next n bytes. The parent cursor does
// not move; callers skip to the boundary themselves once the sub-reader is
// done, whatever it consumed.
func (b *Buffer) Limit(n int) (*Buffer, error) {
	if n < 0 || n > len(b.data)-b.pos {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "record of %d bytes at offset %d overruns buffer of %d", n, b.pos, len(b.data))
	}
	return b.Derive(b.data[b.pos : b.pos+n : b.pos+n]), nil
}

// --- framing ---

// Encode runs fn against a scratch buffer and returns what it wrote.
func (b *Buffer) Encode(fn func(*Buffer) error) ([]byte, error) {
	s := b.Scratch()
	if err := fn(s); err != nil {
		return nil, err
	}
	return s.data, nil
}

// WriteSized32 encodes fn into a scratch buffer, measures it, then emits the
// u32 length followed by the encoded bytes.
func (b *Buffer) WriteSized32(fn func(*Buffer) error) error {
	p, err := b.Encode(fn)
	if err != nil {
		return err
	}
	b.WriteU32(uint32(len(p)))
	b.WriteBytes(p)
	return nil
}

// WriteSized16 is WriteSized32 with a u16 prefix.
func (b *Buffer) WriteSized16(fn func(*Buffer) error) error {
	p, err := b.Encode(fn)
	if err != nil {
		return err
	}
	if len(p) > 0xFFFF {
		return eris.Wrapf(errs.ErrInvalidStructure, "sized record of %d bytes does not fit a u16 prefix", len(p))
	}
	b.WriteU16(uint16(len(p)))
	b.WriteBytes(p)
	return nil
}
