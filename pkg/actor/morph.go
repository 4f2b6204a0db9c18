package actor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/chunk"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
)

// MorphDeformation moves vertices of one node's mesh.
type MorphDeformation struct {
	NodeIndex     uint32
	MinValue      float32
	MaxValue      float32
	Positions     []mgl32.Vec3
	Normals       []mgl32.Vec3
	Tangents      []mgl32.Vec4
	VertexNumbers []uint32
}

// MorphTransform moves a whole node.
type MorphTransform struct {
	NodeIndex     uint32
	Rotation      mgl32.Quat
	ScaleRotation mgl32.Quat
	Position      mgl32.Vec3
	Scale         mgl32.Vec3
}

type MorphTarget struct {
	RangeMin     float32
	RangeMax     float32
	LOD          uint32
	PhonemeSets  uint32
	Name         string
	Deformations []MorphDeformation
	Transforms   []MorphTransform
}

// MorphTargets is the set of progressive morph targets of one LOD. Tangents
// are stored from version 2.
type MorphTargets struct {
	Version uint32
	LOD     uint32
	Targets []MorphTarget
}

func (*MorphTargets) ChunkType() uint32      { return TypeStdProgMorphTargets }
func (m *MorphTargets) ChunkVersion() uint32 { return m.Version }

var morphTargetsCodec = chunk.Codec{
	Name:       "StdProgMorphTargets",
	MinVersion: 1,
	MaxVersion: 2,
	Decode: func(r *binio.Buffer, h chunk.Header, _ *chunk.Context) (chunk.Chunk, error) {
		return decodeMorphTargets(r, h.Version)
	},
	Encode: func(w *binio.Buffer, c chunk.Chunk) error {
		return encodeMorphTargets(w, c.(*MorphTargets))
	},
}

func decodeMorphTargets(r *binio.Buffer, version uint32) (*MorphTargets, error) {
	m := &MorphTargets{Version: version}
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if m.LOD, err = r.ReadU32(); err != nil {
		return nil, err
	}
	n, err := n32(r, count, 24)
	if err != nil {
		return nil, err
	}
	m.Targets = make([]MorphTarget, n)
	for i := range m.Targets {
		if err := decodeMorphTarget(r, &m.Targets[i], version); err != nil {
			return nil, eris.Wrapf(err, "morph target %d", i)
		}
	}
	return m, nil
}

func decodeMorphTarget(r *binio.Buffer, t *MorphTarget, version uint32) error {
	var err error
	if t.RangeMin, err = r.ReadF32(); err != nil {
		return err
	}
	if t.RangeMax, err = r.ReadF32(); err != nil {
		return err
	}
	if t.LOD, err = r.ReadU32(); err != nil {
		return err
	}
	deforms, err := r.ReadU32()
	if err != nil {
		return err
	}
	transforms, err := r.ReadU32()
	if err != nil {
		return err
	}
	if t.PhonemeSets, err = r.ReadU32(); err != nil {
		return err
	}
	if t.Name, err = r.ReadString(); err != nil {
		return err
	}

	n, err := n32(r, deforms, 16)
	if err != nil {
		return err
	}
	t.Deformations = make([]MorphDeformation, n)
	for i := range t.Deformations {
		if err := decodeDeformation(r, &t.Deformations[i], version); err != nil {
			return eris.Wrapf(err, "deformation %d", i)
		}
	}

	if n, err = n32(r, transforms, 4+16+16+12+12); err != nil {
		return err
	}
	t.Transforms = make([]MorphTransform, n)
	for i := range t.Transforms {
		x := &t.Transforms[i]
		if x.NodeIndex, err = r.ReadU32(); err != nil {
			return err
		}
		if x.Rotation, err = r.ReadQuat(); err != nil {
			return err
		}
		if x.ScaleRotation, err = r.ReadQuat(); err != nil {
			return err
		}
		if x.Position, err = r.ReadVec3(); err != nil {
			return err
		}
		if x.Scale, err = r.ReadVec3(); err != nil {
			return err
		}
	}
	return nil
}

func decodeDeformation(r *binio.Buffer, d *MorphDeformation, version uint32) error {
	var err error
	if d.NodeIndex, err = r.ReadU32(); err != nil {
		return err
	}
	if d.MinValue, err = r.ReadF32(); err != nil {
		return err
	}
	if d.MaxValue, err = r.ReadF32(); err != nil {
		return err
	}
	// positions, normals, tangents from v2, vertex numbers
	width := 12 + 12 + 4
	if version >= 2 {
		width += 16
	}
	n, err := readCount(r, width)
	if err != nil {
		return err
	}
	if d.Positions, err = readVec3s(r, n); err != nil {
		return err
	}
	if d.Normals, err = readVec3s(r, n); err != nil {
		return err
	}
	if version >= 2 {
		d.Tangents = make([]mgl32.Vec4, n)
		for i := range d.Tangents {
			if d.Tangents[i], err = r.ReadVec4(); err != nil {
				return err
			}
		}
	}
	d.VertexNumbers, err = r.ReadU32s(n)
	return err
}

func readVec3s(r *binio.Buffer, n int) ([]mgl32.Vec3, error) {
	out := make([]mgl32.Vec3, n)
	for i := range out {
		v, err := r.ReadVec3()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func encodeMorphTargets(w *binio.Buffer, m *MorphTargets) error {
	w.WriteU32(uint32(len(m.Targets)))
	w.WriteU32(m.LOD)
	for i := range m.Targets {
		if err := encodeMorphTarget(w, &m.Targets[i], m.Version); err != nil {
			return eris.Wrapf(err, "morph target %d", i)
		}
	}
	return nil
}

func encodeMorphTarget(w *binio.Buffer, t *MorphTarget, version uint32) error {
	w.WriteF32(t.RangeMin)
	w.WriteF32(t.RangeMax)
	w.WriteU32(t.LOD)
	w.WriteU32(uint32(len(t.Deformations)))
	w.WriteU32(uint32(len(t.Transforms)))
	w.WriteU32(t.PhonemeSets)
	if err := w.WriteString(t.Name); err != nil {
		return err
	}
	for i, d := range t.Deformations {
		n := len(d.VertexNumbers)
		if len(d.Positions) != n || len(d.Normals) != n || (version >= 2 && len(d.Tangents) != n) {
			return eris.Wrapf(errs.ErrInvalidStructure, "deformation %d: attribute counts differ from %d vertex numbers", i, n)
		}
		w.WriteU32(d.NodeIndex)
		w.WriteF32(d.MinValue)
		w.WriteF32(d.MaxValue)
		w.WriteU32(uint32(n))
		for _, v := range d.Positions {
			w.WriteVec3(v)
		}
		for _, v := range d.Normals {
			w.WriteVec3(v)
		}
		if version >= 2 {
			for _, v := range d.Tangents {
				w.WriteVec4(v)
			}
		}
		w.WriteU32s(d.VertexNumbers)
	}
	for _, x := range t.Transforms {
		w.WriteU32(x.NodeIndex)
		w.WriteQuat(x.Rotation)
		w.WriteQuat(x.ScaleRotation)
		w.WriteVec3(x.Position)
		w.WriteVec3(x.Scale)
	}
	return nil
}
