package entity

import (
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rawbytedev/genom/pkg/layout"
	"github.com/rawbytedev/genom/pkg/object"
	"github.com/rawbytedev/genom/pkg/property"
	"github.com/rotisserie/eris"
)

const (
	ClassInventory      = "gCInventory_PS"
	ClassInventoryStack = "gCInventoryStack"
)

// InventoryStack is a pile of identical items.
type InventoryStack struct {
	Version  uint16
	Template binio.GUID
	Amount   uint32
	Quality  uint32
	Slot     uint32
}

func (*InventoryStack) ClassName() string { return ClassInventoryStack }

// SlotValue returns the equip slot as a gEInventorySlot value.
func (s *InventoryStack) SlotValue() property.EnumValue {
	return property.EnumValue{Enum: "gEInventorySlot", Raw: s.Slot}
}

var stackLayout = &layout.Layout[InventoryStack]{
	Name:      ClassInventoryStack,
	MinDecode: 1,
	MinEncode: 1,
	Max:       3,
	Fields: []layout.Field[InventoryStack]{
		layout.GUID("template", layout.Always, func(s *InventoryStack) *binio.GUID { return &s.Template }),
		layout.U32("amount", layout.Always, func(s *InventoryStack) *uint32 { return &s.Amount }),
		layout.U32("quality", layout.Since(2), func(s *InventoryStack) *uint32 { return &s.Quality }),
		layout.U32("slot", layout.Since(3), func(s *InventoryStack) *uint32 { return &s.Slot }),
	},
}

// Inventory is the property set holding an entity's items.
type Inventory struct {
	Version      uint16
	Stacks       []object.Accessor
	TreasureSets []string
}

func (*Inventory) ClassName() string { return ClassInventory }

var inventoryLayout = &layout.Layout[Inventory]{
	Name:      ClassInventory,
	MinDecode: 1,
	MinEncode: 1,
	Max:       2,
	Fields: []layout.Field[Inventory]{
		accessors("stacks", layout.Always, func(i *Inventory) *[]object.Accessor { return &i.Stacks }),
		strs("treasure_sets", layout.Since(2), func(i *Inventory) *[]string { return &i.TreasureSets }),
	},
}

// Items returns the decoded stacks. Stacks kept opaque are skipped.
func (i *Inventory) Items() []*InventoryStack {
	var out []*InventoryStack
	for _, a := range i.Stacks {
		if a.Object == nil {
			continue
		}
		if s, ok := a.Object.Class.(*InventoryStack); ok {
			out = append(out, s)
		}
	}
	return out
}

// Add appends a stack at the newest version.
func (i *Inventory) Add(template binio.GUID, amount uint32) *InventoryStack {
	s := &InventoryStack{Version: uint16(stackLayout.Max), Template: template, Amount: amount}
	i.Stacks = append(i.Stacks, object.NewAccessor(object.New(s)))
	return s
}

func init() {
	register[InventoryStack](ClassInventoryStack,
		func(r *binio.Buffer, s *InventoryStack) error {
			return versioned(r, stackLayout, s, &s.Version)
		},
		func(w *binio.Buffer, s *InventoryStack) error {
			return writeVersioned(w, stackLayout, s, s.Version)
		})
	register[Inventory](ClassInventory,
		func(r *binio.Buffer, inv *Inventory) error {
			if err := versioned(r, inventoryLayout, inv, &inv.Version); err != nil {
				return err
			}
			for n, a := range inv.Stacks {
				if c := a.ClassName(); a.Valid.IsTrue() && c != ClassInventoryStack {
					return eris.Wrapf(errs.ErrInvalidStructure, "stack %d is a %q", n, c)
				}
			}
			return nil
		},
		func(w *binio.Buffer, inv *Inventory) error {
			return writeVersioned(w, inventoryLayout, inv, inv.Version)
		})
}
