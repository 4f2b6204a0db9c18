package actor

import (
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/chunk"
	"github.com/rawbytedev/genom/pkg/layout"
)

// Info describes the exporter and the motion extraction setup.
type Info struct {
	Version              uint32
	LODCount             uint32
	TrajectoryNode       uint32
	MotionExtractionNode uint32
	MotionExtractionMask uint32
	ExporterMajor        uint8
	ExporterMinor        uint8
	UnitType             uint8
	Padding              []byte
	RetargetRootOffset   float32
	SourceApp            string
	OriginalFile         string
	CompilationDate      string
	ActorName            string
}

func (*Info) ChunkType() uint32      { return TypeInfo }
func (i *Info) ChunkVersion() uint32 { return i.Version }

var infoLayout = &layout.Layout[Info]{
	Name:      "Info",
	MinDecode: 2,
	MinEncode: 2,
	Max:       4,
	Fields: []layout.Field[Info]{
		layout.U32("lod_count", layout.Since(4), func(i *Info) *uint32 { return &i.LODCount }),
		layout.U32("trajectory_node", layout.Since(3), func(i *Info) *uint32 { return &i.TrajectoryNode }),
		layout.U32("motion_extraction_node", layout.Always, func(i *Info) *uint32 { return &i.MotionExtractionNode }),
		layout.U32("motion_extraction_mask", layout.Until(3), func(i *Info) *uint32 { return &i.MotionExtractionMask }),
		layout.F32("retarget_root_offset", layout.Between(2, 3), func(i *Info) *float32 { return &i.RetargetRootOffset }),
		layout.U8("exporter_major", layout.Always, func(i *Info) *uint8 { return &i.ExporterMajor }),
		layout.U8("exporter_minor", layout.Always, func(i *Info) *uint8 { return &i.ExporterMinor }),
		layout.U8("unit_type", layout.Since(3), func(i *Info) *uint8 { return &i.UnitType }),
		layout.Raw("padding", layout.Since(3), 1, func(i *Info) *[]byte { return &i.Padding }),
		layout.Raw("padding", layout.Before(3), 2, func(i *Info) *[]byte { return &i.Padding }),
		layout.String("source_app", layout.Always, func(i *Info) *string { return &i.SourceApp }),
		layout.String("original_file", layout.Always, func(i *Info) *string { return &i.OriginalFile }),
		layout.String("compilation_date", layout.Always, func(i *Info) *string { return &i.CompilationDate }),
		layout.String("actor_name", layout.Always, func(i *Info) *string { return &i.ActorName }),
	},
}

var infoCodec = chunk.Codec{
	Name:       "Info",
	MinVersion: infoLayout.MinDecode,
	MaxVersion: infoLayout.Max,
	Decode: func(r *binio.Buffer, h chunk.Header, _ *chunk.Context) (chunk.Chunk, error) {
		i := &Info{Version: h.Version}
		return i, infoLayout.Decode(r, i, h.Version)
	},
	Encode: func(w *binio.Buffer, c chunk.Chunk) error {
		i := c.(*Info)
		return infoLayout.Encode(w, i, i.Version)
	},
}
