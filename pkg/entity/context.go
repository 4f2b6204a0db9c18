package entity

import (
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/layout"
)

const ClassDynamicContext = "eCEntityDynamicContext"

// DynamicContext groups the entities a level section spawns at runtime.
type DynamicContext struct {
	Version  uint16
	Enabled  binio.Bool
	Visible  binio.Bool
	Creator  binio.GUID
	Entities []binio.GUID
}

func (*DynamicContext) ClassName() string { return ClassDynamicContext }

var dynamicContextLayout = &layout.Layout[DynamicContext]{
	Name:      ClassDynamicContext,
	MinDecode: 1,
	MinEncode: 1,
	Max:       2,
	Fields: []layout.Field[DynamicContext]{
		layout.Bool("enabled", layout.Always, func(c *DynamicContext) *binio.Bool { return &c.Enabled }),
		layout.Bool("visible", layout.Always, func(c *DynamicContext) *binio.Bool { return &c.Visible }),
		layout.GUID("creator", layout.Since(2), func(c *DynamicContext) *binio.GUID { return &c.Creator }),
		guids("entities", layout.Always, func(c *DynamicContext) *[]binio.GUID { return &c.Entities }),
	},
}

func init() {
	register[DynamicContext](ClassDynamicContext,
		func(r *binio.Buffer, c *DynamicContext) error {
			return versioned(r, dynamicContextLayout, c, &c.Version)
		},
		func(w *binio.Buffer, c *DynamicContext) error {
			return writeVersioned(w, dynamicContextLayout, c, c.Version)
		})
}
