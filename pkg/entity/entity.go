// Package entity holds the world records stored in templates and levels.
// Every class payload starts with its own u16 version; the fields that
// follow are described once per class as a version-gated layout and shared
// by decoding and encoding.
package entity

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/layout"
	"github.com/rawbytedev/genom/pkg/object"
)

const (
	ClassEntity         = "eCEntity"
	ClassGeometryEntity = "eCGeometryEntity"
	ClassTemplateEntity = "eCTemplateEntity"
)

// Entity is the base record of every world object.
type Entity struct {
	Version      uint16
	ID           binio.GUID
	Name         string
	Flags        uint32
	Enabled      binio.Bool
	RenderAlpha  float32
	ViewRange    float32
	Creator      binio.GUID
	Modified     time.Time
	PropertySets []object.Accessor
	Children     []object.Accessor
}

func (*Entity) ClassName() string { return ClassEntity }

// Flags widened from u16 to u32 in 212. Versions before 212 are read only.
var entityLayout = &layout.Layout[Entity]{
	Name:      ClassEntity,
	MinDecode: 210,
	MinEncode: 212,
	Max:       217,
	Fields: []layout.Field[Entity]{
		layout.GUID("id", layout.Always, func(e *Entity) *binio.GUID { return &e.ID }),
		layout.String("name", layout.Always, func(e *Entity) *string { return &e.Name }),
		layout.U16As32("flags", layout.Before(212), func(e *Entity) *uint32 { return &e.Flags }),
		layout.U32("flags", layout.Since(212), func(e *Entity) *uint32 { return &e.Flags }),
		layout.Bool("enabled", layout.Always, func(e *Entity) *binio.Bool { return &e.Enabled }),
		layout.F32("render_alpha", layout.Between(213, 214), func(e *Entity) *float32 { return &e.RenderAlpha }),
		layout.F32("view_range", layout.Since(215), func(e *Entity) *float32 { return &e.ViewRange }),
		layout.GUID("creator", layout.Since(216), func(e *Entity) *binio.GUID { return &e.Creator }),
		layout.FileTime("modified", layout.Since(217), func(e *Entity) *time.Time { return &e.Modified }),
		accessors("property_sets", layout.Always, func(e *Entity) *[]object.Accessor { return &e.PropertySets }),
		accessors("children", layout.Always, func(e *Entity) *[]object.Accessor { return &e.Children }),
	},
}

// NewEntity returns an entity at the newest version.
func NewEntity(name string) *Entity {
	return &Entity{Version: uint16(entityLayout.Max), ID: binio.NewGUID(), Name: name, Enabled: binio.True}
}

func decodeEntity(r *binio.Buffer, e *Entity) error {
	return versioned(r, entityLayout, e, &e.Version)
}

func encodeEntity(w *binio.Buffer, e *Entity) error {
	return writeVersioned(w, entityLayout, e, e.Version)
}

// PropertySet returns the first property set of the given class.
func (e *Entity) PropertySet(className string) (object.Accessor, bool) {
	for _, a := range e.PropertySets {
		if a.ClassName() == className {
			return a, true
		}
	}
	return object.Accessor{}, false
}

// GeometryEntity is an entity placed in the world.
type GeometryEntity struct {
	Entity
	GeometryVersion uint16
	WorldMatrix     mgl32.Mat4
	LocalMatrix     mgl32.Mat4
	WorldMin        mgl32.Vec3
	WorldMax        mgl32.Vec3
	VisualRange     float32
	CacheIn         binio.Bool
}

func (*GeometryEntity) ClassName() string { return ClassGeometryEntity }

var geometryLayout = &layout.Layout[GeometryEntity]{
	Name:      ClassGeometryEntity,
	MinDecode: 1,
	MinEncode: 2,
	Max:       3,
	Fields: []layout.Field[GeometryEntity]{
		layout.Mat4("world_matrix", layout.Always, func(g *GeometryEntity) *mgl32.Mat4 { return &g.WorldMatrix }),
		layout.Mat4("local_matrix", layout.Always, func(g *GeometryEntity) *mgl32.Mat4 { return &g.LocalMatrix }),
		layout.Vec3("world_min", layout.Always, func(g *GeometryEntity) *mgl32.Vec3 { return &g.WorldMin }),
		layout.Vec3("world_max", layout.Always, func(g *GeometryEntity) *mgl32.Vec3 { return &g.WorldMax }),
		layout.F32("visual_range", layout.Since(2), func(g *GeometryEntity) *float32 { return &g.VisualRange }),
		layout.Bool("cache_in", layout.Since(3), func(g *GeometryEntity) *binio.Bool { return &g.CacheIn }),
	},
}

func decodeGeometry(r *binio.Buffer, g *GeometryEntity) error {
	if err := decodeEntity(r, &g.Entity); err != nil {
		return err
	}
	return versioned(r, geometryLayout, g, &g.GeometryVersion)
}

func encodeGeometry(w *binio.Buffer, g *GeometryEntity) error {
	if err := encodeEntity(w, &g.Entity); err != nil {
		return err
	}
	return writeVersioned(w, geometryLayout, g, g.GeometryVersion)
}

// TemplateEntity is a geometry entity stored in a template.
type TemplateEntity struct {
	GeometryEntity
	TemplateVersion uint16
	RefTemplate     binio.GUID
	HelperParent    binio.Bool
	Changed         time.Time
	Locked          binio.Bool
}

func (*TemplateEntity) ClassName() string { return ClassTemplateEntity }

var templateEntityLayout = &layout.Layout[TemplateEntity]{
	Name:      ClassTemplateEntity,
	MinDecode: 1,
	MinEncode: 1,
	Max:       4,
	Fields: []layout.Field[TemplateEntity]{
		layout.GUID("ref_template", layout.Always, func(t *TemplateEntity) *binio.GUID { return &t.RefTemplate }),
		layout.Bool("helper_parent", layout.Since(2), func(t *TemplateEntity) *binio.Bool { return &t.HelperParent }),
		layout.FileTime("changed", layout.Since(3), func(t *TemplateEntity) *time.Time { return &t.Changed }),
		layout.Bool("locked", layout.Since(4), func(t *TemplateEntity) *binio.Bool { return &t.Locked }),
	},
}

func decodeTemplateEntity(r *binio.Buffer, t *TemplateEntity) error {
	if err := decodeGeometry(r, &t.GeometryEntity); err != nil {
		return err
	}
	return versioned(r, templateEntityLayout, t, &t.TemplateVersion)
}

func encodeTemplateEntity(w *binio.Buffer, t *TemplateEntity) error {
	if err := encodeGeometry(w, &t.GeometryEntity); err != nil {
		return err
	}
	return writeVersioned(w, templateEntityLayout, t, t.TemplateVersion)
}

func init() {
	register[Entity](ClassEntity, decodeEntity, encodeEntity)
	register[GeometryEntity](ClassGeometryEntity, decodeGeometry, encodeGeometry)
	register[TemplateEntity](ClassTemplateEntity, decodeTemplateEntity, encodeTemplateEntity)
}
