// Package resource reads and writes the GR01 preamble shared by top-level
// resource files: a fixed header, a property block describing the resource,
// then the class-specific data section.
//
//	"GR01"            4 bytes
//	class revision    4 bytes
//	property offset   u32 (0x28)
//	property length   u32
//	data offset       u32 (property offset + property length)
//	data length       u32
//	timestamp         u64 FILETIME
//	raw extension     8 bytes
//	property block
//	data
//
// The preamble is always little-endian with u16 string lengths, whatever
// the data section uses.
package resource

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rawbytedev/genom/pkg/property"
	"github.com/rotisserie/eris"
)

const (
	Magic          = "GR01"
	PropertyOffset = 0x28
	BlockVersion   = 201

	// BoundaryProperty is mandatory in every property block.
	BoundaryProperty = "Boundary"
)

var (
	blockHeader = []byte{0x01, 0x00, 0x01, 0x01, 0x00, 0x01}
	blockTag    = []byte{0x01, 0x00, 0x00}
)

type Header struct {
	ClassRevision [4]byte
	Timestamp     binio.FileTime
	RawExtension  [8]byte
	ClassName     string
	Properties    property.List
}

// New returns a header stamped with t and carrying boundary.
func New(className string, revision [4]byte, ext [8]byte, boundary property.Box, t time.Time) *Header {
	h := &Header{ClassRevision: revision, RawExtension: ext, ClassName: className, Timestamp: binio.FileTimeOf(t)}
	h.Properties.Set(property.New(BoundaryProperty, boundary))
	return h
}

// IsResource reports whether data starts with the resource magic.
func IsResource(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// Boundary returns the bounding box of the resource.
func (h *Header) Boundary() (property.Box, bool) {
	p, ok := h.Properties.Get(BoundaryProperty)
	if !ok {
		return property.Box{}, false
	}
	b, ok := p.Data.(property.Box)
	return b, ok
}

// Decode reads the preamble from the start of r and returns the header and
// the data section. The data section aliases r's bytes.
func Decode(r *binio.Buffer) (*Header, []byte, error) {
	in := r.Derive(r.Bytes())
	in.SetOrder(binary.LittleEndian)
	in.SetStrings(binio.Inline16{})

	magic, err := in.ReadBytes(len(Magic))
	if err != nil || string(magic) != Magic {
		return nil, nil, eris.Wrap(errs.ErrInvalidStructure, "resource: bad magic")
	}
	h := &Header{}
	rev, err := in.ReadBytes(4)
	if err != nil {
		return nil, nil, err
	}
	copy(h.ClassRevision[:], rev)

	var offsets [4]uint32
	for i := range offsets {
		if offsets[i], err = in.ReadU32(); err != nil {
			return nil, nil, err
		}
	}
	propOff, propLen, dataOff, dataLen := offsets[0], offsets[1], offsets[2], offsets[3]
	if propOff != PropertyOffset {
		return nil, nil, eris.Wrapf(errs.ErrInvalidStructure, "resource: property offset %#x, want %#x", propOff, PropertyOffset)
	}
	if dataOff != propOff+propLen {
		return nil, nil, eris.Wrapf(errs.ErrInvalidStructure, "resource: data offset %#x does not follow property block", dataOff)
	}
	if int64(dataOff)+int64(dataLen) > int64(in.Len()) {
		return nil, nil, eris.Wrapf(errs.ErrInvalidStructure, "resource: data section %d+%d exceeds %d bytes", dataOff, dataLen, in.Len())
	}
	if h.Timestamp, err = in.ReadFileTime(); err != nil {
		return nil, nil, err
	}
	ext, err := in.ReadBytes(8)
	if err != nil {
		return nil, nil, err
	}
	copy(h.RawExtension[:], ext)

	block, err := in.Limit(int(propLen))
	if err != nil {
		return nil, nil, err
	}
	if err := h.decodeBlock(block); err != nil {
		return nil, nil, eris.Wrap(err, "resource: property block")
	}
	if block.Remaining() != 0 {
		return nil, nil, eris.Wrapf(errs.ErrInvalidStructure, "resource: %d bytes after property block", block.Remaining())
	}
	if _, ok := h.Properties.Get(BoundaryProperty); !ok {
		return nil, nil, eris.Wrapf(errs.ErrInvalidStructure, "resource: no %s property", BoundaryProperty)
	}
	return h, r.Bytes()[dataOff : dataOff+dataLen], nil
}

func (h *Header) decodeBlock(r *binio.Buffer) error {
	hdr, err := r.ReadBytes(len(blockHeader))
	if err != nil {
		return err
	}
	if !bytes.Equal(hdr, blockHeader) {
		return eris.Wrapf(errs.ErrInvalidStructure, "block header % x", hdr)
	}
	if h.ClassName, err = r.ReadString(); err != nil {
		return err
	}
	tag, err := r.ReadBytes(len(blockTag))
	if err != nil {
		return err
	}
	if !bytes.Equal(tag, blockTag) {
		return eris.Wrapf(errs.ErrInvalidStructure, "block tag % x", tag)
	}
	for i := 0; i < 3; i++ {
		if err := expectVersion(r); err != nil {
			return err
		}
	}
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	if h.Properties, err = property.DecodeList(r, int(count)); err != nil {
		return err
	}
	return expectVersion(r)
}

func expectVersion(r *binio.Buffer) error {
	v, err := r.ReadU16()
	if err != nil {
		return err
	}
	if v != BlockVersion {
		return eris.Wrapf(errs.ErrInvalidStructure, "block version %d, want %d", v, BlockVersion)
	}
	return nil
}

// Encode writes the preamble followed by data, computing every offset.
func (h *Header) Encode(w *binio.Buffer, data []byte) error {
	if _, ok := h.Properties.Get(BoundaryProperty); !ok {
		return eris.Wrapf(errs.ErrInvalidStructure, "resource: no %s property", BoundaryProperty)
	}
	out := w.Scratch()
	out.SetOrder(binary.LittleEndian)
	out.SetStrings(binio.Inline16{})
	block, err := out.Encode(h.encodeBlock)
	if err != nil {
		return eris.Wrap(err, "resource: property block")
	}

	out.WriteBytes([]byte(Magic))
	out.WriteBytes(h.ClassRevision[:])
	out.WriteU32(PropertyOffset)
	out.WriteU32(uint32(len(block)))
	out.WriteU32(PropertyOffset + uint32(len(block)))
	out.WriteU32(uint32(len(data)))
	out.WriteFileTime(h.Timestamp)
	out.WriteBytes(h.RawExtension[:])
	out.WriteBytes(block)
	out.WriteBytes(data)
	w.WriteBytes(out.Bytes())
	return nil
}

func (h *Header) encodeBlock(w *binio.Buffer) error {
	w.WriteBytes(blockHeader)
	if err := w.WriteString(h.ClassName); err != nil {
		return err
	}
	w.WriteBytes(blockTag)
	for i := 0; i < 3; i++ {
		w.WriteU16(BlockVersion)
	}
	w.WriteU32(uint32(len(h.Properties)))
	if err := property.EncodeList(w, h.Properties); err != nil {
		return err
	}
	w.WriteU16(BlockVersion)
	return nil
}
