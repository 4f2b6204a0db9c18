package actor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/chunk"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rawbytedev/genom/pkg/layout"
	"github.com/rotisserie/eris"
)

// MaterialLayer is one texture map of a standard material.
type MaterialLayer struct {
	Amount        float32
	UOffset       float32
	VOffset       float32
	UTiling       float32
	VTiling       float32
	Rotation      float32
	MaterialIndex uint16
	MapType       uint8
	BlendMode     uint8
	Name          string
}

var layerLayout = &layout.Layout[MaterialLayer]{
	Name:      "MaterialLayer",
	MinDecode: 1,
	MinEncode: 1,
	Max:       3,
	Fields: []layout.Field[MaterialLayer]{
		layout.F32("amount", layout.Always, func(l *MaterialLayer) *float32 { return &l.Amount }),
		layout.F32("u_offset", layout.Always, func(l *MaterialLayer) *float32 { return &l.UOffset }),
		layout.F32("v_offset", layout.Always, func(l *MaterialLayer) *float32 { return &l.VOffset }),
		layout.F32("u_tiling", layout.Always, func(l *MaterialLayer) *float32 { return &l.UTiling }),
		layout.F32("v_tiling", layout.Always, func(l *MaterialLayer) *float32 { return &l.VTiling }),
		layout.F32("rotation", layout.Always, func(l *MaterialLayer) *float32 { return &l.Rotation }),
		layout.U16("material_index", layout.Always, func(l *MaterialLayer) *uint16 { return &l.MaterialIndex }),
		layout.U8("map_type", layout.Always, func(l *MaterialLayer) *uint8 { return &l.MapType }),
		// padding before v3
		layout.U8("blend_mode", layout.Always, func(l *MaterialLayer) *uint8 { return &l.BlendMode }),
		layout.String("name", layout.Always, func(l *MaterialLayer) *string { return &l.Name }),
	},
}

// StdMaterial is a fixed-function material with texture layers.
type StdMaterial struct {
	Version          uint32
	LOD              uint32
	Ambient          mgl32.Vec4
	Diffuse          mgl32.Vec4
	Specular         mgl32.Vec4
	Emissive         mgl32.Vec4
	Shine            float32
	ShineStrength    float32
	Opacity          float32
	IOR              float32
	DoubleSided      binio.Bool
	Wireframe        binio.Bool
	TransparencyType uint8
	Name             string
	Layers           []MaterialLayer
}

func (*StdMaterial) ChunkType() uint32      { return TypeStdMaterial }
func (m *StdMaterial) ChunkVersion() uint32 { return m.Version }

var stdMaterialLayout = &layout.Layout[StdMaterial]{
	Name:      "StdMaterial",
	MinDecode: 1,
	MinEncode: 1,
	Max:       3,
	Fields: []layout.Field[StdMaterial]{
		layout.U32("lod", layout.Since(2), func(m *StdMaterial) *uint32 { return &m.LOD }),
		layout.Vec4("ambient", layout.Always, func(m *StdMaterial) *mgl32.Vec4 { return &m.Ambient }),
		layout.Vec4("diffuse", layout.Always, func(m *StdMaterial) *mgl32.Vec4 { return &m.Diffuse }),
		layout.Vec4("specular", layout.Always, func(m *StdMaterial) *mgl32.Vec4 { return &m.Specular }),
		layout.Vec4("emissive", layout.Always, func(m *StdMaterial) *mgl32.Vec4 { return &m.Emissive }),
		layout.F32("shine", layout.Always, func(m *StdMaterial) *float32 { return &m.Shine }),
		layout.F32("shine_strength", layout.Always, func(m *StdMaterial) *float32 { return &m.ShineStrength }),
		layout.F32("opacity", layout.Always, func(m *StdMaterial) *float32 { return &m.Opacity }),
		layout.F32("ior", layout.Always, func(m *StdMaterial) *float32 { return &m.IOR }),
		layout.Bool("double_sided", layout.Always, func(m *StdMaterial) *binio.Bool { return &m.DoubleSided }),
		layout.Bool("wireframe", layout.Always, func(m *StdMaterial) *binio.Bool { return &m.Wireframe }),
		layout.U8("transparency_type", layout.Always, func(m *StdMaterial) *uint8 { return &m.TransparencyType }),
		layout.Custom("layers", layout.Always, decodeMaterialLayers, encodeMaterialLayers),
	},
}

// The layer count precedes the material name; the layers follow it.
func decodeMaterialLayers(r *binio.Buffer, m *StdMaterial, version uint32) error {
	count, err := r.ReadU8()
	if err != nil {
		return err
	}
	if m.Name, err = r.ReadString(); err != nil {
		return err
	}
	m.Layers = make([]MaterialLayer, count)
	for i := range m.Layers {
		if err := layerLayout.Decode(r, &m.Layers[i], version); err != nil {
			return eris.Wrapf(err, "layer %d", i)
		}
	}
	return nil
}

func encodeMaterialLayers(w *binio.Buffer, m *StdMaterial, version uint32) error {
	if len(m.Layers) > 0xFF {
		return eris.Wrapf(errs.ErrInvalidStructure, "%d layers do not fit a u8 count", len(m.Layers))
	}
	w.WriteU8(uint8(len(m.Layers)))
	if err := w.WriteString(m.Name); err != nil {
		return err
	}
	for i := range m.Layers {
		if err := layerLayout.Encode(w, &m.Layers[i], version); err != nil {
			return eris.Wrapf(err, "layer %d", i)
		}
	}
	return nil
}

var stdMaterialCodec = chunk.Codec{
	Name:       "StdMaterial",
	MinVersion: stdMaterialLayout.MinDecode,
	MaxVersion: stdMaterialLayout.Max,
	Decode: func(r *binio.Buffer, h chunk.Header, _ *chunk.Context) (chunk.Chunk, error) {
		m := &StdMaterial{Version: h.Version}
		return m, stdMaterialLayout.Decode(r, m, h.Version)
	},
	Encode: func(w *binio.Buffer, c chunk.Chunk) error {
		m := c.(*StdMaterial)
		return stdMaterialLayout.Encode(w, m, m.Version)
	},
}

// MaterialInfo counts the materials that follow it.
type MaterialInfo struct {
	Total    uint32
	Standard uint32
	FX       uint32
}

func (*MaterialInfo) ChunkType() uint32    { return TypeMaterialInfo }
func (*MaterialInfo) ChunkVersion() uint32 { return 1 }

var materialInfoLayout = &layout.Layout[MaterialInfo]{
	Name:      "MaterialInfo",
	MinDecode: 1,
	MinEncode: 1,
	Max:       1,
	Fields: []layout.Field[MaterialInfo]{
		layout.U32("total", layout.Always, func(m *MaterialInfo) *uint32 { return &m.Total }),
		layout.U32("standard", layout.Always, func(m *MaterialInfo) *uint32 { return &m.Standard }),
		layout.U32("fx", layout.Always, func(m *MaterialInfo) *uint32 { return &m.FX }),
	},
}

var materialInfoCodec = chunk.Codec{
	Name:       "MaterialInfo",
	MinVersion: 1,
	MaxVersion: 1,
	Decode: func(r *binio.Buffer, h chunk.Header, _ *chunk.Context) (chunk.Chunk, error) {
		m := &MaterialInfo{}
		return m, materialInfoLayout.Decode(r, m, h.Version)
	},
	Encode: func(w *binio.Buffer, c chunk.Chunk) error {
		return materialInfoLayout.Encode(w, c.(*MaterialInfo), 1)
	},
}
