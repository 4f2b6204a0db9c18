package entity

import (
	"strconv"

	"github.com/rawbytedev/genom/pkg/object"
)

// Walk calls fn for a and every accessor nested below it, depth first.
// path names each accessor by class and position, "eCTemplateEntity/children[0]".
// Walk stops at the first error fn returns.
func Walk(a object.Accessor, fn func(path string, a object.Accessor) error) error {
	return walk(a.ClassName(), a, fn)
}

func walk(path string, a object.Accessor, fn func(string, object.Accessor) error) error {
	if err := fn(path, a); err != nil {
		return err
	}
	if a.Object == nil {
		return nil
	}
	for _, group := range nested(a.Object.Class) {
		for i, child := range group.list {
			p := path + "/" + group.name + "[" + strconv.Itoa(i) + "]"
			if err := walk(p, child, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

type accessorGroup struct {
	name string
	list []object.Accessor
}

func nested(c object.ClassData) []accessorGroup {
	var e *Entity
	switch v := c.(type) {
	case *Entity:
		e = v
	case *GeometryEntity:
		e = &v.Entity
	case *TemplateEntity:
		e = &v.Entity
	case *Inventory:
		return []accessorGroup{{"stacks", v.Stacks}}
	default:
		return nil
	}
	return []accessorGroup{{"property_sets", e.PropertySets}, {"children", e.Children}}
}
