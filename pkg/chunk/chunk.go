// Package chunk implements the chunked container: a sequence of records,
// each framed by a type id, a byte size and a per-chunk version.
//
//	type     u32
//	size     u32, payload bytes
//	version  u32
//	payload
//
// All three header fields follow the byte order of the stream. Chunks whose
// type or version has no codec are kept as Opaque and written back verbatim.
package chunk

import (
	"errors"

	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
)

const HeaderSize = 12

type Header struct {
	Type    uint32
	Size    uint32
	Version uint32
}

func ReadHeader(r *binio.Buffer) (Header, error) {
	var h Header
	var err error
	if h.Type, err = r.ReadU32(); err != nil {
		return h, err
	}
	if h.Size, err = r.ReadU32(); err != nil {
		return h, err
	}
	h.Version, err = r.ReadU32()
	return h, err
}

func WriteHeader(w *binio.Buffer, h Header) {
	w.WriteU32(h.Type)
	w.WriteU32(h.Size)
	w.WriteU32(h.Version)
}

// Chunk is one decoded record.
type Chunk interface {
	ChunkType() uint32
	ChunkVersion() uint32
}

// Opaque is a chunk kept as raw payload bytes.
type Opaque struct {
	Type    uint32
	Version uint32
	Raw     []byte
}

func (o *Opaque) ChunkType() uint32    { return o.Type }
func (o *Opaque) ChunkVersion() uint32 { return o.Version }

// Context is the read-only view of the chunks decoded so far in one file.
type Context struct {
	chunks []Chunk
}

func (c *Context) Len() int { return len(c.chunks) }

// At returns the i-th decoded chunk.
func (c *Context) At(i int) Chunk { return c.chunks[i] }

// Find returns the last decoded chunk matching fn.
func (c *Context) Find(fn func(Chunk) bool) (Chunk, bool) {
	for i := len(c.chunks) - 1; i >= 0; i-- {
		if fn(c.chunks[i]) {
			return c.chunks[i], true
		}
	}
	return nil, false
}

// FindAs returns the last decoded chunk of type T matching fn.
func FindAs[T Chunk](c *Context, fn func(T) bool) (T, bool) {
	found, ok := c.Find(func(ch Chunk) bool {
		t, ok := ch.(T)
		return ok && fn(t)
	})
	if !ok {
		var zero T
		return zero, false
	}
	return found.(T), true
}

func (c *Context) add(ch Chunk) { c.chunks = append(c.chunks, ch) }

// Codec decodes and encodes one chunk type. Decode reads the payload from r
// directly; versions outside MinVersion..MaxVersion never reach it. A
// decoder may still return errs.ErrUnknownVersion to fall back to Opaque.
type Codec struct {
	Name       string
	MinVersion uint32
	MaxVersion uint32
	Decode     func(r *binio.Buffer, h Header, ctx *Context) (Chunk, error)
	Encode     func(w *binio.Buffer, c Chunk) error
}

func (c Codec) supports(version uint32) bool {
	return version >= c.MinVersion && version <= c.MaxVersion
}

type Options struct {
	// StrictBoundaries turns a payload that does not end on its declared
	// size into an error instead of a warning.
	StrictBoundaries bool
}

// Registry maps chunk type ids to codecs.
type Registry struct {
	codecs map[uint32]Codec
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[uint32]Codec)}
}

func (reg *Registry) Register(typeID uint32, c Codec) {
	reg.codecs[typeID] = c
}

// Name returns the registered name of a type id.
func (reg *Registry) Name(typeID uint32) string {
	if c, ok := reg.codecs[typeID]; ok {
		return c.Name
	}
	return "unknown"
}

// DecodeAll reads chunks until r is exhausted.
func (reg *Registry) DecodeAll(r *binio.Buffer, opts Options) ([]Chunk, error) {
	ctx := &Context{}
	for r.Remaining() > 0 {
		ch, err := reg.decode(r, ctx, opts)
		if err != nil {
			return nil, eris.Wrapf(err, "chunk %d", ctx.Len())
		}
		ctx.add(ch)
	}
	return ctx.chunks, nil
}

func (reg *Registry) decode(r *binio.Buffer, ctx *Context, opts Options) (Chunk, error) {
	start := r.Pos()
	h, err := ReadHeader(r)
	if err != nil {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "truncated chunk header at offset %d", start)
	}
	payload := r.Pos()
	if int64(h.Size) > int64(r.Remaining()) {
		return nil, eris.Wrapf(errs.ErrInvalidStructure, "chunk %#x at offset %d declares %d bytes, %d remaining", h.Type, start, h.Size, r.Remaining())
	}
	log := r.Logger()

	c, ok := reg.codecs[h.Type]
	if !ok {
		log.Debug().Uint32("type", h.Type).Uint32("version", h.Version).Uint32("size", h.Size).Msg("unknown chunk type, keeping raw payload")
		return readOpaque(r, h, payload)
	}
	if !c.supports(h.Version) {
		log.Warn().Str("chunk", c.Name).Uint32("version", h.Version).Msg("unsupported chunk version, keeping raw payload")
		return readOpaque(r, h, payload)
	}
	ch, err := c.Decode(r, h, ctx)
	if errors.Is(err, errs.ErrUnknownVersion) {
		log.Warn().Err(err).Str("chunk", c.Name).Msg("keeping raw payload")
		return readOpaque(r, h, payload)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "%s v%d", c.Name, h.Version)
	}

	end := payload + int(h.Size)
	if r.Pos() != end {
		if opts.StrictBoundaries {
			return nil, eris.Wrapf(errs.ErrInvalidStructure, "%s v%d ends at %d, declared end %d", c.Name, h.Version, r.Pos(), end)
		}
		log.Warn().
			Str("chunk", c.Name).
			Uint32("version", h.Version).
			Int("declared_end", end).
			Int("actual_end", r.Pos()).
			Msg("chunk payload does not end on its declared size")
	}
	return ch, nil
}

func readOpaque(r *binio.Buffer, h Header, payload int) (Chunk, error) {
	if err := r.SeekTo(payload); err != nil {
		return nil, err
	}
	raw, err := r.ReadBytes(int(h.Size))
	if err != nil {
		return nil, err
	}
	return &Opaque{Type: h.Type, Version: h.Version, Raw: raw}, nil
}

// EncodeAll writes chunks in order.
func (reg *Registry) EncodeAll(w *binio.Buffer, chunks []Chunk) error {
	for i, ch := range chunks {
		if err := reg.Encode(w, ch); err != nil {
			return eris.Wrapf(err, "chunk %d", i)
		}
	}
	return nil
}

// Encode writes one chunk. The payload is encoded first so the header can
// carry its measured size.
func (reg *Registry) Encode(w *binio.Buffer, ch Chunk) error {
	if o, ok := ch.(*Opaque); ok {
		WriteHeader(w, Header{Type: o.Type, Size: uint32(len(o.Raw)), Version: o.Version})
		w.WriteBytes(o.Raw)
		return nil
	}
	c, ok := reg.codecs[ch.ChunkType()]
	if !ok {
		return eris.Wrapf(errs.ErrInvalidStructure, "no codec for chunk type %#x", ch.ChunkType())
	}
	if !c.supports(ch.ChunkVersion()) {
		return eris.Wrapf(errs.ErrUnknownVersion, "%s v%d", c.Name, ch.ChunkVersion())
	}
	payload, err := w.Encode(func(s *binio.Buffer) error { return c.Encode(s, ch) })
	if err != nil {
		return eris.Wrapf(err, "%s v%d", c.Name, ch.ChunkVersion())
	}
	WriteHeader(w, Header{Type: ch.ChunkType(), Size: uint32(len(payload)), Version: ch.ChunkVersion()})
	w.WriteBytes(payload)
	return nil
}
