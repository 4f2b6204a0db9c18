package binio

import (
	"github.com/rawbytedev/genom/internal/common"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
)

// StringCodec decides how a buffer stores strings. Inline codecs store the
// text itself; an archive stores an index into its string table.
type StringCodec interface {
	ReadString(b *Buffer) (string, error)
	WriteString(b *Buffer, s string) error
}

// Inline16 stores strings as a u16 length followed by Windows-1252 bytes.
type Inline16 struct{}

func (Inline16) ReadString(b *Buffer) (string, error) {
	n, err := b.ReadU16()
	if err != nil {
		return "", err
	}
	p, err := b.take(int(n))
	if err != nil {
		return "", err
	}
	return common.DecodeText(p)
}

func (Inline16) WriteString(b *Buffer, s string) error {
	p, err := common.EncodeText(s, b.log)
	if err != nil {
		return err
	}
	if len(p) > 0xFFFF {
		return eris.Wrapf(errs.ErrInvalidStructure, "string of %d bytes does not fit a u16 length", len(p))
	}
	b.WriteU16(uint16(len(p)))
	b.WriteBytes(p)
	return nil
}

// Inline32 stores strings as a u32 length followed by Windows-1252 bytes.
type Inline32 struct{}

func (Inline32) ReadString(b *Buffer) (string, error) {
	n, err := b.ReadU32()
	if err != nil {
		return "", err
	}
	if int64(n) > int64(b.Remaining()) {
		return "", eris.Wrapf(errs.ErrInvalidStructure, "string length %d exceeds %d remaining bytes", n, b.Remaining())
	}
	p, err := b.take(int(n))
	if err != nil {
		return "", err
	}
	return common.DecodeText(p)
}

func (Inline32) WriteString(b *Buffer, s string) error {
	p, err := common.EncodeText(s, b.log)
	if err != nil {
		return err
	}
	b.WriteU32(uint32(len(p)))
	b.WriteBytes(p)
	return nil
}

// ReadString reads a string through the buffer's codec.
func (b *Buffer) ReadString() (string, error) {
	return b.strings.ReadString(b)
}

// WriteString writes s through the buffer's codec.
func (b *Buffer) WriteString(s string) error {
	return b.strings.WriteString(b, s)
}
