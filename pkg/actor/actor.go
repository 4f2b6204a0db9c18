// Package actor reads and writes actor/mesh files: a resource preamble whose
// data section is an XAC chunk stream.
//
//	"XAC "        4 bytes
//	major, minor  u8
//	big endian    u8, 1 when every multi-byte value is big-endian
//	mul order     u8
//	chunks
//
// Strings inside the stream carry a u32 length.
package actor

import (
	"encoding/binary"

	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/chunk"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rawbytedev/genom/pkg/resource"
	"github.com/rotisserie/eris"
)

const StreamMagic = "XAC "

// Chunk type ids.
const (
	TypeMesh                = 0x1
	TypeSkinningInfo        = 0x2
	TypeStdMaterial         = 0x3
	TypeInfo                = 0x7
	TypeStdProgMorphTargets = 0xC
	TypeMaterialInfo        = 0xD
	TypeNodes               = 0xB
)

// NoParent is the parent index of root nodes.
const NoParent = 0xFFFFFFFF

// Registry holds the codecs of every chunk kind this package implements.
var Registry = chunk.NewRegistry()

func init() {
	Registry.Register(TypeInfo, infoCodec)
	Registry.Register(TypeNodes, nodesCodec)
	Registry.Register(TypeMesh, meshCodec)
	Registry.Register(TypeSkinningInfo, skinningCodec)
	Registry.Register(TypeStdMaterial, stdMaterialCodec)
	Registry.Register(TypeMaterialInfo, materialInfoCodec)
	Registry.Register(TypeStdProgMorphTargets, morphTargetsCodec)
}

type Stream struct {
	Major         uint8
	Minor         uint8
	BigEndian     binio.Bool
	MultiplyOrder uint8
}

// File is a decoded actor file. Chunk order is significant and preserved.
type File struct {
	Resource *resource.Header
	Stream   Stream
	Chunks   []chunk.Chunk
}

// Load decodes an actor file from the start of r. r supplies the logger.
func Load(r *binio.Buffer, opts chunk.Options) (*File, error) {
	hdr, section, err := resource.Decode(r)
	if err != nil {
		return nil, err
	}
	f := &File{Resource: hdr}
	s := r.Derive(section)
	magic, err := s.ReadBytes(len(StreamMagic))
	if err != nil || string(magic) != StreamMagic {
		return nil, eris.Wrap(errs.ErrInvalidStructure, "actor: bad stream magic")
	}
	var flags [4]uint8
	for i := range flags {
		if flags[i], err = s.ReadU8(); err != nil {
			return nil, eris.Wrap(err, "actor: stream header")
		}
	}
	f.Stream = Stream{Major: flags[0], Minor: flags[1], BigEndian: binio.Bool(flags[2]), MultiplyOrder: flags[3]}
	s.SetOrder(f.Stream.order())
	s.SetStrings(binio.Inline32{})

	if f.Chunks, err = Registry.DecodeAll(s, opts); err != nil {
		return nil, eris.Wrap(err, "actor")
	}
	return f, nil
}

func (s Stream) order() binio.ByteOrder {
	if s.BigEndian.IsTrue() {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Save encodes f after the resource preamble.
func (f *File) Save(w *binio.Buffer) error {
	if f.Resource == nil {
		return eris.Wrap(errs.ErrInvalidStructure, "actor: no resource header")
	}
	s := w.Scratch()
	s.SetOrder(f.Stream.order())
	s.SetStrings(binio.Inline32{})
	s.WriteBytes([]byte(StreamMagic))
	s.WriteU8(f.Stream.Major)
	s.WriteU8(f.Stream.Minor)
	s.WriteBool(f.Stream.BigEndian)
	s.WriteU8(f.Stream.MultiplyOrder)
	if err := Registry.EncodeAll(s, f.Chunks); err != nil {
		return eris.Wrap(err, "actor")
	}
	return f.Resource.Encode(w, s.Bytes())
}

func chunksOf[T chunk.Chunk](f *File) []T {
	var out []T
	for _, c := range f.Chunks {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Info returns the first info chunk.
func (f *File) Info() (*Info, bool) {
	all := chunksOf[*Info](f)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// Nodes returns the node hierarchy, or nil without a node chunk.
func (f *File) Nodes() []Node {
	all := chunksOf[*Nodes](f)
	if len(all) == 0 {
		return nil
	}
	return all[0].Nodes
}

func (f *File) Meshes() []*Mesh { return chunksOf[*Mesh](f) }

// MeshForNode returns the render mesh attached to node n.
func (f *File) MeshForNode(n uint32) (*Mesh, bool) {
	for _, m := range f.Meshes() {
		if m.NodeIndex == n && !m.IsCollision.IsTrue() {
			return m, true
		}
	}
	return nil, false
}

func (f *File) Skinning() []*SkinningInfo { return chunksOf[*SkinningInfo](f) }

func (f *File) Materials() []*StdMaterial { return chunksOf[*StdMaterial](f) }

// MaterialInfo returns the first material summary chunk.
func (f *File) MaterialInfo() (*MaterialInfo, bool) {
	all := chunksOf[*MaterialInfo](f)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// MorphTargets returns every morph target of every morph chunk in order.
func (f *File) MorphTargets() []MorphTarget {
	var out []MorphTarget
	for _, c := range chunksOf[*MorphTargets](f) {
		out = append(out, c.Targets...)
	}
	return out
}

// readCount reads a u32 count and checks that n elements of width bytes fit
// in r.
func readCount(r *binio.Buffer, width int) (int, error) {
	n, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return n32(r, n, width)
}

func n32(r *binio.Buffer, n uint32, width int) (int, error) {
	if int64(n)*int64(width) > int64(r.Remaining()) {
		return 0, eris.Wrapf(errs.ErrInvalidStructure, "%d elements of %d bytes exceed %d remaining", n, width, r.Remaining())
	}
	return int(n), nil
}
