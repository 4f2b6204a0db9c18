package actor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/chunk"
	"github.com/rawbytedev/genom/pkg/layout"
	"github.com/rotisserie/eris"
)

// Node is one entry of the skeleton hierarchy.
type Node struct {
	Rotation        mgl32.Quat
	ScaleRotation   mgl32.Quat
	Position        mgl32.Vec3
	Scale           mgl32.Vec3
	Unused          []byte
	SkeletalLODs    uint32
	Parent          uint32
	ChildCount      uint32
	IncludeInBounds binio.Bool
	Padding         []byte
	OBB             mgl32.Mat4
	Importance      float32
	Name            string
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.Parent == NoParent }

var nodeLayout = &layout.Layout[Node]{
	Name:      "Node",
	MinDecode: 1,
	MinEncode: 1,
	Max:       2,
	Fields: []layout.Field[Node]{
		layout.Quat("rotation", layout.Always, func(n *Node) *mgl32.Quat { return &n.Rotation }),
		layout.Quat("scale_rotation", layout.Always, func(n *Node) *mgl32.Quat { return &n.ScaleRotation }),
		layout.Vec3("position", layout.Always, func(n *Node) *mgl32.Vec3 { return &n.Position }),
		layout.Vec3("scale", layout.Always, func(n *Node) *mgl32.Vec3 { return &n.Scale }),
		layout.Raw("unused", layout.Always, 12, func(n *Node) *[]byte { return &n.Unused }),
		layout.U32("skeletal_lods", layout.Always, func(n *Node) *uint32 { return &n.SkeletalLODs }),
		layout.U32("parent", layout.Always, func(n *Node) *uint32 { return &n.Parent }),
		layout.U32("child_count", layout.Always, func(n *Node) *uint32 { return &n.ChildCount }),
		layout.Bool("include_in_bounds", layout.Always, func(n *Node) *binio.Bool { return &n.IncludeInBounds }),
		layout.Raw("padding", layout.Always, 3, func(n *Node) *[]byte { return &n.Padding }),
		layout.Mat4("obb", layout.Since(2), func(n *Node) *mgl32.Mat4 { return &n.OBB }),
		layout.F32("importance", layout.Since(2), func(n *Node) *float32 { return &n.Importance }),
		layout.String("name", layout.Always, func(n *Node) *string { return &n.Name }),
	},
}

// minNodeSize is the smallest encoding of a node: the fixed fields plus an
// empty name.
const minNodeSize = 16 + 16 + 12 + 12 + 12 + 4 + 4 + 4 + 1 + 3 + 4

// Nodes is the skeleton hierarchy in parent-before-child order.
type Nodes struct {
	Version   uint32
	RootCount uint32
	Nodes     []Node
}

func (*Nodes) ChunkType() uint32      { return TypeNodes }
func (n *Nodes) ChunkVersion() uint32 { return n.Version }

var nodesCodec = chunk.Codec{
	Name:       "Nodes",
	MinVersion: nodeLayout.MinDecode,
	MaxVersion: nodeLayout.Max,
	Decode: func(r *binio.Buffer, h chunk.Header, _ *chunk.Context) (chunk.Chunk, error) {
		c := &Nodes{Version: h.Version}
		count, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		if c.RootCount, err = r.ReadU32(); err != nil {
			return nil, err
		}
		n, err := n32(r, count, minNodeSize)
		if err != nil {
			return nil, err
		}
		c.Nodes = make([]Node, n)
		for i := range c.Nodes {
			if err := nodeLayout.Decode(r, &c.Nodes[i], h.Version); err != nil {
				return nil, eris.Wrapf(err, "node %d", i)
			}
		}
		return c, nil
	},
	Encode: func(w *binio.Buffer, ch chunk.Chunk) error {
		c := ch.(*Nodes)
		w.WriteU32(uint32(len(c.Nodes)))
		w.WriteU32(c.RootCount)
		for i := range c.Nodes {
			if err := nodeLayout.Encode(w, &c.Nodes[i], c.Version); err != nil {
				return eris.Wrapf(err, "node %d", i)
			}
		}
		return nil
	},
}
