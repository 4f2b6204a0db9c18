// Package genom loads and saves the file formats built on the genom codec:
// template archives (GENOMFLE), actor files (GR01 + XAC) and other GR01
// resources, whose data section is kept as is.
package genom

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/rawbytedev/genom/pkg/actor"
	"github.com/rawbytedev/genom/pkg/archive"
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/chunk"
	"github.com/rawbytedev/genom/pkg/entity"
	"github.com/rawbytedev/genom/pkg/property"
	"github.com/rawbytedev/genom/pkg/resource"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// ErrUnknownFormat is returned for data no loader recognizes.
var ErrUnknownFormat = eris.New("unknown file format")

type Kind int

const (
	KindUnknown Kind = iota
	KindTemplate
	KindActor
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindActor:
		return "actor"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Sniff classifies data by its leading magic bytes.
func Sniff(data []byte) Kind {
	switch {
	case archive.IsArchive(data):
		return KindTemplate
	case resource.IsResource(data):
		if len(data) >= resource.PropertyOffset {
			off := binary.LittleEndian.Uint32(data[16:])
			if int(off)+len(actor.StreamMagic) <= len(data) && string(data[off:int(off)+len(actor.StreamMagic)]) == actor.StreamMagic {
				return KindActor
			}
		}
		return KindResource
	default:
		return KindUnknown
	}
}

// Document is a decoded file.
type Document interface {
	Kind() Kind
}

type Template struct{ *entity.TemplateFile }

func (Template) Kind() Kind { return KindTemplate }

type Actor struct{ *actor.File }

func (Actor) Kind() Kind { return KindActor }

// Resource is a GR01 file whose data section has no decoder.
type Resource struct {
	Header *resource.Header
	Data   []byte
}

func (Resource) Kind() Kind { return KindResource }

// Codec loads and saves documents. A Codec holds no per-file state and may
// be shared.
type Codec struct {
	opts Options
	log  zerolog.Logger
}

// New returns a codec logging to log at the level named in opts.
func New(opts Options, log zerolog.Logger) (*Codec, error) {
	level, err := opts.level()
	if err != nil {
		return nil, err
	}
	return &Codec{opts: opts, log: log.Level(level)}, nil
}

func (c *Codec) Options() Options { return c.opts }

func (c *Codec) Load(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "read")
	}
	return c.Decode(data)
}

// Decode is Load over a byte slice.
func (c *Codec) Decode(data []byte) (Document, error) {
	kind := Sniff(data)
	log := c.log.With().Str("kind", kind.String()).Logger()
	switch kind {
	case KindTemplate:
		t, err := entity.LoadTemplate(data, log)
		if err != nil {
			return nil, err
		}
		return Template{t}, nil
	case KindActor:
		f, err := actor.Load(c.buffer(data, log), chunk.Options{StrictBoundaries: c.opts.StrictChunkBoundaries})
		if err != nil {
			return nil, err
		}
		return Actor{f}, nil
	case KindResource:
		h, section, err := resource.Decode(c.buffer(data, log))
		if err != nil {
			return nil, err
		}
		return Resource{Header: h, Data: append([]byte(nil), section...)}, nil
	default:
		return nil, eris.Wrapf(ErrUnknownFormat, "leading bytes % x", head(data))
	}
}

func (c *Codec) Save(w io.Writer, doc Document) error {
	data, err := c.Encode(doc)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return eris.Wrap(err, "write")
}

// Encode is Save into a byte slice.
func (c *Codec) Encode(doc Document) ([]byte, error) {
	switch d := doc.(type) {
	case Template:
		return d.Save(c.log)
	case Actor:
		out := c.buffer(nil, c.log)
		if err := d.Save(out); err != nil {
			return nil, err
		}
		return out.Bytes(), nil
	case Resource:
		out := c.buffer(nil, c.log)
		if err := d.Header.Encode(out, d.Data); err != nil {
			return nil, err
		}
		return out.Bytes(), nil
	default:
		return nil, eris.Wrapf(ErrUnknownFormat, "document %T", doc)
	}
}

// NewActor returns an empty actor document in the configured byte order.
func (c *Codec) NewActor(className string, boundary property.Box) Actor {
	h := resource.New(className, [4]byte{}, [8]byte{}, boundary, time.Now())
	return Actor{&actor.File{
		Resource: h,
		Stream:   actor.Stream{Major: 1, BigEndian: binio.BoolOf(c.opts.BigEndianActors)},
	}}
}

func (c *Codec) buffer(data []byte, log zerolog.Logger) *binio.Buffer {
	b := binio.FromBytes(data, binary.LittleEndian)
	b.SetLogger(log)
	return b
}

func head(data []byte) []byte {
	if len(data) > 8 {
		return data[:8]
	}
	return data
}
