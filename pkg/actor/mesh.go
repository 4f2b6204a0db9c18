package actor

import (
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/chunk"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
)

// VertexLayer is one per-vertex attribute stream. Data holds VertexCount
// attributes of AttribSize bytes each, as 32-bit words in stream order.
type VertexLayer struct {
	TypeID     uint32
	AttribSize uint32
	Deformable binio.Bool
	IsScale    binio.Bool
	Padding    [2]byte
	Data       []uint32
}

type SubMesh struct {
	VertexCount   uint32
	MaterialIndex uint32
	Indices       []uint32
	Bones         []uint32
}

// Mesh is the geometry attached to one node. OrigVertsCount is the vertex
// count before vertices were split per submesh; skinning tables are sized
// against it.
type Mesh struct {
	NodeIndex      uint32
	OrigVertsCount uint32
	VertexCount    uint32
	IsCollision    binio.Bool
	Padding        [3]byte
	Layers         []VertexLayer
	SubMeshes      []SubMesh
}

func (*Mesh) ChunkType() uint32    { return TypeMesh }
func (*Mesh) ChunkVersion() uint32 { return 1 }

// IndexCount sums the indices of every submesh.
func (m *Mesh) IndexCount() int {
	n := 0
	for _, s := range m.SubMeshes {
		n += len(s.Indices)
	}
	return n
}

var meshCodec = chunk.Codec{
	Name:       "Mesh",
	MinVersion: 1,
	MaxVersion: 1,
	Decode: func(r *binio.Buffer, _ chunk.Header, _ *chunk.Context) (chunk.Chunk, error) {
		return decodeMesh(r)
	},
	Encode: func(w *binio.Buffer, c chunk.Chunk) error {
		return encodeMesh(w, c.(*Mesh))
	},
}

func decodeMesh(r *binio.Buffer) (*Mesh, error) {
	m := &Mesh{}
	var hdr [6]uint32
	for i := range hdr {
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		hdr[i] = v
	}
	m.NodeIndex, m.OrigVertsCount, m.VertexCount = hdr[0], hdr[1], hdr[2]
	totalIndices, subCount, layerCount := hdr[3], hdr[4], hdr[5]
	var err error
	if m.IsCollision, err = r.ReadBool(); err != nil {
		return nil, err
	}
	pad, err := r.ReadBytes(3)
	if err != nil {
		return nil, err
	}
	copy(m.Padding[:], pad)

	nLayers, err := n32(r, layerCount, 12)
	if err != nil {
		return nil, eris.Wrap(err, "layers")
	}
	m.Layers = make([]VertexLayer, nLayers)
	for i := range m.Layers {
		if err := decodeLayer(r, &m.Layers[i], m.VertexCount); err != nil {
			return nil, eris.Wrapf(err, "layer %d", i)
		}
	}

	nSubs, err := n32(r, subCount, 16)
	if err != nil {
		return nil, eris.Wrap(err, "submeshes")
	}
	m.SubMeshes = make([]SubMesh, nSubs)
	for i := range m.SubMeshes {
		if err := decodeSubMesh(r, &m.SubMeshes[i]); err != nil {
			return nil, eris.Wrapf(err, "submesh %d", i)
		}
	}
	if m.IndexCount() != int(totalIndices) {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "submeshes hold %d indices, header says %d", m.IndexCount(), totalIndices)
	}
	return m, nil
}

func decodeLayer(r *binio.Buffer, l *VertexLayer, vertices uint32) error {
	var err error
	if l.TypeID, err = r.ReadU32(); err != nil {
		return err
	}
	if l.AttribSize, err = r.ReadU32(); err != nil {
		return err
	}
	if l.AttribSize%4 != 0 {
		return eris.Wrapf(errs.ErrInvalidStructure, "attribute size %d is not a multiple of 4", l.AttribSize)
	}
	if l.Deformable, err = r.ReadBool(); err != nil {
		return err
	}
	if l.IsScale, err = r.ReadBool(); err != nil {
		return err
	}
	pad, err := r.ReadBytes(2)
	if err != nil {
		return err
	}
	copy(l.Padding[:], pad)
	words := int64(vertices) * int64(l.AttribSize/4)
	if words*4 > int64(r.Remaining()) {
		return eris.Wrapf(errs.ErrInvalidStructure, "%d vertices of %d bytes exceed %d remaining", vertices, l.AttribSize, r.Remaining())
	}
	l.Data, err = r.ReadU32s(int(words))
	return err
}

func decodeSubMesh(r *binio.Buffer, s *SubMesh) error {
	indices, err := r.ReadU32()
	if err != nil {
		return err
	}
	if s.VertexCount, err = r.ReadU32(); err != nil {
		return err
	}
	if s.MaterialIndex, err = r.ReadU32(); err != nil {
		return err
	}
	bones, err := r.ReadU32()
	if err != nil {
		return err
	}
	n, err := n32(r, indices, 4)
	if err != nil {
		return err
	}
	if s.Indices, err = r.ReadU32s(n); err != nil {
		return err
	}
	if n, err = n32(r, bones, 4); err != nil {
		return err
	}
	s.Bones, err = r.ReadU32s(n)
	return err
}

func encodeMesh(w *binio.Buffer, m *Mesh) error {
	w.WriteU32(m.NodeIndex)
	w.WriteU32(m.OrigVertsCount)
	w.WriteU32(m.VertexCount)
	w.WriteU32(uint32(m.IndexCount()))
	w.WriteU32(uint32(len(m.SubMeshes)))
	w.WriteU32(uint32(len(m.Layers)))
	w.WriteBool(m.IsCollision)
	w.WriteBytes(m.Padding[:])
	for i, l := range m.Layers {
		if uint64(len(l.Data)) != uint64(m.VertexCount)*uint64(l.AttribSize/4) || l.AttribSize%4 != 0 {
			return eris.Wrapf(errs.ErrInvalidStructure, "layer %d holds %d words for %d vertices of %d bytes", i, len(l.Data), m.VertexCount, l.AttribSize)
		}
		w.WriteU32(l.TypeID)
		w.WriteU32(l.AttribSize)
		w.WriteBool(l.Deformable)
		w.WriteBool(l.IsScale)
		w.WriteBytes(l.Padding[:])
		w.WriteU32s(l.Data)
	}
	for _, s := range m.SubMeshes {
		w.WriteU32(uint32(len(s.Indices)))
		w.WriteU32(s.VertexCount)
		w.WriteU32(s.MaterialIndex)
		w.WriteU32(uint32(len(s.Bones)))
		w.WriteU32s(s.Indices)
		w.WriteU32s(s.Bones)
	}
	return nil
}

// Influence binds a vertex to one bone.
type Influence struct {
	Weight  float32
	Bone    uint16
	Padding [2]byte
}

// InfluenceRange selects the influences of one original vertex.
type InfluenceRange struct {
	Start uint32
	Count uint32
}

// SkinningInfo holds the bone influences of one mesh, with one table entry
// per original vertex of that mesh.
type SkinningInfo struct {
	Version     uint32
	NodeIndex   uint32
	LocalBones  uint32
	IsCollision binio.Bool
	Padding     [3]byte
	Influences  []Influence
	Table       []InfluenceRange
}

func (*SkinningInfo) ChunkType() uint32      { return TypeSkinningInfo }
func (s *SkinningInfo) ChunkVersion() uint32 { return s.Version }

var skinningCodec = chunk.Codec{
	Name:       "SkinningInfo",
	MinVersion: 2,
	MaxVersion: 3,
	Decode:     decodeSkinning,
	Encode: func(w *binio.Buffer, c chunk.Chunk) error {
		return encodeSkinning(w, c.(*SkinningInfo))
	},
}

func decodeSkinning(r *binio.Buffer, h chunk.Header, ctx *chunk.Context) (chunk.Chunk, error) {
	s := &SkinningInfo{Version: h.Version}
	var err error
	if s.NodeIndex, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.Version >= 3 {
		if s.LocalBones, err = r.ReadU32(); err != nil {
			return nil, err
		}
	}
	total, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if s.IsCollision, err = r.ReadBool(); err != nil {
		return nil, err
	}
	pad, err := r.ReadBytes(3)
	if err != nil {
		return nil, err
	}
	copy(s.Padding[:], pad)

	mesh, ok := chunk.FindAs(ctx, func(m *Mesh) bool {
		return m.NodeIndex == s.NodeIndex && m.IsCollision.IsTrue() == s.IsCollision.IsTrue()
	})
	if !ok {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "no mesh for node %d (collision %t) precedes its skinning", s.NodeIndex, s.IsCollision.IsTrue())
	}

	n, err := n32(r, total, 8)
	if err != nil {
		return nil, eris.Wrap(err, "influences")
	}
	s.Influences = make([]Influence, n)
	for i := range s.Influences {
		inf := &s.Influences[i]
		if inf.Weight, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if inf.Bone, err = r.ReadU16(); err != nil {
			return nil, err
		}
		pad, err := r.ReadBytes(2)
		if err != nil {
			return nil, err
		}
		copy(inf.Padding[:], pad)
	}

	rows, err := n32(r, mesh.OrigVertsCount, 8)
	if err != nil {
		return nil, eris.Wrap(err, "influence table")
	}
	s.Table = make([]InfluenceRange, rows)
	for i := range s.Table {
		e := &s.Table[i]
		if e.Start, err = r.ReadU32(); err != nil {
			return nil, err
		}
		if e.Count, err = r.ReadU32(); err != nil {
			return nil, err
		}
		if uint64(e.Start)+uint64(e.Count) > uint64(len(s.Influences)) {
			return nil, eris.Wrapf(errs.ErrInvalidStructure, "vertex %d selects influences %d+%d of %d", i, e.Start, e.Count, len(s.Influences))
		}
	}
	return s, nil
}

func encodeSkinning(w *binio.Buffer, s *SkinningInfo) error {
	w.WriteU32(s.NodeIndex)
	if s.Version >= 3 {
		w.WriteU32(s.LocalBones)
	}
	w.WriteU32(uint32(len(s.Influences)))
	w.WriteBool(s.IsCollision)
	w.WriteBytes(s.Padding[:])
	for _, inf := range s.Influences {
		w.WriteF32(inf.Weight)
		w.WriteU16(inf.Bone)
		w.WriteBytes(inf.Padding[:])
	}
	for _, e := range s.Table {
		w.WriteU32(e.Start)
		w.WriteU32(e.Count)
	}
	return nil
}
