package main

import (
	"bytes"
	"fmt"

	"github.com/rawbytedev/genom"
	"github.com/rawbytedev/genom/pkg/actor"
	"github.com/rawbytedev/genom/pkg/chunk"
	"github.com/rawbytedev/genom/pkg/entity"
	"github.com/rawbytedev/genom/pkg/object"
	"github.com/rawbytedev/genom/pkg/resource"
	"github.com/rotisserie/eris"
)

func (a *app) inspect(path string) error {
	doc, _, err := a.load(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s: %s\n", path, doc.Kind())
	switch d := doc.(type) {
	case genom.Template:
		return a.inspectTemplate(d)
	case genom.Actor:
		a.inspectResource(d.Resource)
		a.inspectActor(d)
	case genom.Resource:
		a.inspectResource(d.Header)
		fmt.Fprintf(a.stdout, "data: %d bytes\n", len(d.Data))
	}
	return nil
}

func (a *app) inspectTemplate(t genom.Template) error {
	fmt.Fprintf(a.stdout, "version: %d\n", t.Version)
	if e, ok := t.Entity(); ok {
		fmt.Fprintf(a.stdout, "entity: %q %s\n", e.Name, e.ID)
	}
	return entity.Walk(t.Root, func(path string, acc object.Accessor) error {
		if acc.Object == nil {
			fmt.Fprintf(a.stdout, "  %s: invalid\n", path)
			return nil
		}
		line := fmt.Sprintf("  %s: %d properties", path, len(acc.Object.Properties))
		if o, ok := acc.Object.Class.(object.Opaque); ok {
			line += fmt.Sprintf(", opaque %d bytes", len(o.Raw))
		}
		if n := len(acc.Object.Trailing); n > 0 {
			line += fmt.Sprintf(", %d trailing bytes", n)
		}
		fmt.Fprintln(a.stdout, line)
		return nil
	})
}

func (a *app) inspectResource(h *resource.Header) {
	fmt.Fprintf(a.stdout, "class: %s revision %q\n", h.ClassName, bytes.TrimRight(h.ClassRevision[:], "\x00"))
	fmt.Fprintf(a.stdout, "timestamp: %s\n", h.Timestamp.Time().UTC().Format("2006-01-02 15:04:05"))
	if b, ok := h.Boundary(); ok {
		fmt.Fprintf(a.stdout, "boundary: %v %v\n", b.Min, b.Max)
	}
	for _, p := range h.Properties {
		typeName := "-"
		if p.Data != nil {
			typeName = p.Data.TypeName()
		}
		fmt.Fprintf(a.stdout, "property: %s %s\n", p.Name, typeName)
	}
}

func (a *app) inspectActor(f genom.Actor) {
	byteOrder := "little-endian"
	if f.Stream.BigEndian.IsTrue() {
		byteOrder = "big-endian"
	}
	fmt.Fprintf(a.stdout, "stream: %d.%d %s\n", f.Stream.Major, f.Stream.Minor, byteOrder)
	for i, c := range f.Chunks {
		name := actor.Registry.Name(c.ChunkType())
		if o, ok := c.(*chunk.Opaque); ok {
			fmt.Fprintf(a.stdout, "  chunk %d: %s %#x v%d, opaque %d bytes\n", i, name, o.Type, o.Version, len(o.Raw))
			continue
		}
		fmt.Fprintf(a.stdout, "  chunk %d: %s %#x v%d\n", i, name, c.ChunkType(), c.ChunkVersion())
	}
}

// roundtrip re-encodes every file and reports whether the bytes match. A
// file that fails does not stop the batch.
func (a *app) roundtrip(paths []string) error {
	failed := 0
	for _, path := range paths {
		if err := a.roundtripOne(path); err != nil {
			failed++
			a.log.Error().Err(err).Str("file", path).Msg("roundtrip failed")
			fmt.Fprintf(a.stdout, "%s: FAIL\n", path)
			continue
		}
		fmt.Fprintf(a.stdout, "%s: ok\n", path)
	}
	if failed > 0 {
		return eris.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

func (a *app) roundtripOne(path string) error {
	doc, data, err := a.load(path)
	if err != nil {
		return err
	}
	out, err := a.codec.Encode(doc)
	if err != nil {
		return eris.Wrap(err, "encode")
	}
	if !bytes.Equal(data, out) {
		return eris.Errorf("re-encoded %d bytes differ from %d input bytes at offset %d", len(out), len(data), firstDiff(data, out))
	}
	return nil
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
