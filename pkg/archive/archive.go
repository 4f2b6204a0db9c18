// Package archive implements the GENOMFLE container: a payload buffer plus a
// deduplicated string table footer.
//
// Layout:
//
//	"GENOMFLE"       8 bytes
//	version          u16 (1)
//	table offset     u32, absolute offset of the string table
//	payload          opaque bytes
//	table magic      u32 0xDEADBEEF
//	table version    u8 (1)
//	string count     u32
//	strings          u16 length + Windows-1252 bytes each
//
// Inside the payload strings are referenced by u16 table index.
package archive

import (
	"bytes"
	"encoding/binary"

	"github.com/rawbytedev/genom/internal/common"
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
)

const (
	Magic        = "GENOMFLE"
	Version      = 1
	TableMagic   = 0xDEADBEEF
	TableVersion = 1
	HeaderSize   = len(Magic) + 2 + 4
)

// Archive is the payload buffer of one GENOMFLE file together with its
// string table. The embedded buffer reads and writes strings as table
// indices. One Archive must not be shared between concurrent encoders.
type Archive struct {
	*binio.Buffer
	Version uint16
	table   *StringTable
}

// New returns an empty archive for authoring.
func New() *Archive {
	t := &StringTable{}
	buf := binio.New(binary.LittleEndian)
	buf.SetStrings(t)
	return &Archive{Buffer: buf, Version: Version, table: t}
}

// NewWithStrings returns an empty archive whose table is seeded with list in
// order. Rewriting a loaded file through it reproduces the original indices.
func NewWithStrings(list []string) *Archive {
	a := New()
	for _, s := range list {
		a.table.list = append(a.table.list, s)
		if a.table.index == nil {
			a.table.index = make(map[string]int, len(list))
		}
		if _, dup := a.table.index[s]; !dup {
			a.table.index[s] = len(a.table.list) - 1
		}
	}
	return a
}

// IsArchive reports whether data starts with the archive magic.
func IsArchive(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// Load parses a complete archive. The read cursor of the returned archive is
// at the start of the payload.
func Load(data []byte) (*Archive, error) {
	if len(data) < HeaderSize || !IsArchive(data) {
		return nil, eris.Wrap(errs.ErrInvalidStructure, "archive: bad magic")
	}
	hdr := binio.FromBytes(data[len(Magic):HeaderSize], binary.LittleEndian)
	version, _ := hdr.ReadU16()
	if version != Version {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "archive: version %d, want %d", version, Version)
	}
	tableOff, _ := hdr.ReadU32()
	if int64(tableOff) < int64(HeaderSize) || int64(tableOff) > int64(len(data)) {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "archive: string table offset %d outside file of %d bytes", tableOff, len(data))
	}

	t := &StringTable{}
	if err := t.decode(binio.FromBytes(data[tableOff:], binary.LittleEndian)); err != nil {
		return nil, eris.Wrap(err, "archive: string table")
	}
	payload := make([]byte, int(tableOff)-HeaderSize)
	copy(payload, data[HeaderSize:tableOff])
	buf := binio.FromBytes(payload, binary.LittleEndian)
	buf.SetStrings(t)
	return &Archive{Buffer: buf, Version: version, table: t}, nil
}

// Save serializes header, payload and string table.
func (a *Archive) Save() ([]byte, error) {
	payload := a.Bytes()
	out := binio.New(binary.LittleEndian)
	out.SetLogger(*a.Logger())
	out.WriteBytes([]byte(Magic))
	out.WriteU16(a.Version)
	out.WriteU32(uint32(HeaderSize + len(payload)))
	out.WriteBytes(payload)
	if err := a.table.encode(out); err != nil {
		return nil, eris.Wrap(err, "archive: string table")
	}
	return out.Bytes(), nil
}

// Intern returns the table index of s, adding it if absent.
func (a *Archive) Intern(s string) int { return a.table.Intern(s) }

// String resolves a table index.
func (a *Archive) String(i int) (string, error) { return a.table.At(i) }

// Strings returns the table in index order.
func (a *Archive) Strings() []string { return a.table.list }

// Data returns the payload bytes.
func (a *Archive) Data() []byte { return a.Bytes() }

// StringTable is an ordered list of unique strings. Indices are stable for
// the lifetime of the table.
type StringTable struct {
	list  []string
	index map[string]int
}

// Intern is the only operation that mutates the table.
func (t *StringTable) Intern(s string) int {
	if i, ok := t.index[s]; ok {
		return i
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.list = append(t.list, s)
	t.index[s] = len(t.list) - 1
	return len(t.list) - 1
}

func (t *StringTable) At(i int) (string, error) {
	if i < 0 || i >= len(t.list) {
		return "", eris.Wrapf(errs.ErrInvalidStructure, "string index %d outside table of %d", i, len(t.list))
	}
	return t.list[i], nil
}

func (t *StringTable) Len() int { return len(t.list) }

// ReadString reads a u16 table index and resolves it.
func (t *StringTable) ReadString(b *binio.Buffer) (string, error) {
	i, err := b.ReadU16()
	if err != nil {
		return "", err
	}
	return t.At(int(i))
}

// WriteString interns s and writes its u16 index.
func (t *StringTable) WriteString(b *binio.Buffer, s string) error {
	i := t.Intern(s)
	if i > 0xFFFF {
		return eris.Wrapf(errs.ErrInvalidStructure, "string table exceeds %d entries", 0x10000)
	}
	b.WriteU16(uint16(i))
	return nil
}

func (t *StringTable) decode(b *binio.Buffer) error {
	magic, err := b.ReadU32()
	if err != nil {
		return err
	}
	if magic != TableMagic {
		return eris.Wrapf(errs.ErrInvalidStructure, "bad table magic %#x", magic)
	}
	version, err := b.ReadU8()
	if err != nil {
		return err
	}
	if version != TableVersion {
		return eris.Wrapf(errs.ErrInvalidStructure, "table version %d, want %d", version, TableVersion)
	}
	count, err := b.ReadU32()
	if err != nil {
		return err
	}
	// every entry needs at least its length prefix
	if int64(count)*2 > int64(b.Remaining()) {
		return eris.Wrapf(errs.ErrInvalidStructure, "table claims %d strings in %d bytes", count, b.Remaining())
	}
	t.list = make([]string, 0, count)
	t.index = make(map[string]int, count)
	for i := 0; i < int(count); i++ {
		n, err := b.ReadU16()
		if err != nil {
			return err
		}
		p, err := b.ReadBytes(int(n))
		if err != nil {
			return err
		}
		s, err := common.DecodeText(p)
		if err != nil {
			return eris.Wrapf(err, "string %d", i)
		}
		t.list = append(t.list, s)
		if _, dup := t.index[s]; !dup {
			t.index[s] = i
		}
	}
	return nil
}

func (t *StringTable) encode(b *binio.Buffer) error {
	b.WriteU32(TableMagic)
	b.WriteU8(TableVersion)
	b.WriteU32(uint32(len(t.list)))
	for _, s := range t.list {
		p, err := common.EncodeText(s, b.Logger())
		if err != nil {
			return err
		}
		if len(p) > 0xFFFF {
			return eris.Wrapf(errs.ErrInvalidStructure, "string of %d bytes does not fit a u16 length", len(p))
		}
		b.WriteU16(uint16(len(p)))
		b.WriteBytes(p)
	}
	return nil
}
