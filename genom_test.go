package genom

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rawbytedev/genom/pkg/actor"
	"github.com/rawbytedev/genom/pkg/binio"
	"github.com/rawbytedev/genom/pkg/chunk"
	"github.com/rawbytedev/genom/pkg/entity"
	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rawbytedev/genom/pkg/property"
	"github.com/rawbytedev/genom/pkg/resource"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitBox = property.Box{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

func newCodec(t *testing.T, opts Options) *Codec {
	t.Helper()
	c, err := New(opts, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func saveLoad(t *testing.T, c *Codec, doc Document) ([]byte, Document) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf, doc))
	data := append([]byte(nil), buf.Bytes()...)
	got, err := c.Load(&buf)
	require.NoError(t, err)
	return data, got
}

func TestTemplateDocument(t *testing.T) {
	c := newCodec(t, DefaultOptions())
	root := &entity.TemplateEntity{
		GeometryEntity:  entity.GeometryEntity{Entity: *entity.NewEntity("Barrel"), GeometryVersion: 3},
		TemplateVersion: 4,
	}
	data, doc := saveLoad(t, c, Template{entity.NewTemplate(root)})
	assert.Equal(t, KindTemplate, Sniff(data))
	require.Equal(t, KindTemplate, doc.Kind())

	e, ok := doc.(Template).Entity()
	require.True(t, ok)
	assert.Equal(t, "Barrel", e.Name)

	again, err := c.Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestActorDocument(t *testing.T) {
	for _, be := range []bool{false, true} {
		c := newCodec(t, Options{BigEndianActors: be})
		doc := c.NewActor("eCResourceMeshComplex_PS", unitBox)
		doc.Chunks = []chunk.Chunk{
			&actor.MaterialInfo{Total: 0},
			&chunk.Opaque{Type: 0x42, Version: 1, Raw: []byte{1, 2, 3}},
		}
		data, got := saveLoad(t, c, doc)
		assert.Equal(t, KindActor, Sniff(data))
		a := got.(Actor)
		assert.Equal(t, be, a.Stream.BigEndian.IsTrue())
		require.Len(t, a.Chunks, 2)
		assert.Equal(t, doc.Chunks[1], a.Chunks[1])

		again, err := c.Encode(got)
		require.NoError(t, err)
		assert.Equal(t, data, again)
	}
}

func TestResourceDocumentKeptRaw(t *testing.T) {
	c := newCodec(t, DefaultOptions())
	h := resource.New("eCResourceImage_PS", [4]byte{'I', 'M', 'G', '0'}, [8]byte{}, unitBox, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	doc := Resource{Header: h, Data: []byte("DDS payload")}
	data, got := saveLoad(t, c, doc)
	assert.Equal(t, KindResource, Sniff(data))
	assert.Equal(t, doc, got)
}

func TestUnknownFormat(t *testing.T) {
	c := newCodec(t, DefaultOptions())
	_, err := c.Load(bytes.NewReader([]byte("RIFF....WAVE")))
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, KindUnknown, Sniff(nil))
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestStructuralErrorsSurface(t *testing.T) {
	c := newCodec(t, DefaultOptions())
	_, err := c.Decode([]byte("GENOMFLE\x02\x00\x0e\x00\x00\x00"))
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestStrictChunkBoundaries(t *testing.T) {
	// a material summary declaring twelve bytes more than it holds; the
	// surplus is itself an empty chunk
	stream := binio.New(nil)
	stream.SetStrings(binio.Inline32{})
	stream.WriteBytes([]byte(actor.StreamMagic))
	stream.WriteBytes([]byte{1, 0, 0, 0})
	info, err := stream.Encode(func(w *binio.Buffer) error {
		return actor.Registry.Encode(w, &actor.MaterialInfo{Total: 1})
	})
	require.NoError(t, err)
	info[4] += chunk.HeaderSize
	stream.WriteBytes(info)
	chunk.WriteHeader(stream, chunk.Header{Type: 0x42, Size: 0, Version: 1})

	w := binio.New(nil)
	require.NoError(t, resource.New("eCResourceMeshComplex_PS", [4]byte{}, [8]byte{}, unitBox, time.Unix(0, 0)).Encode(w, stream.Bytes()))

	lenient := newCodec(t, DefaultOptions())
	doc, err := lenient.Decode(w.Bytes())
	require.NoError(t, err)
	chunks := doc.(Actor).Chunks
	require.Len(t, chunks, 2)
	assert.Equal(t, &actor.MaterialInfo{Total: 1}, chunks[0])
	assert.Equal(t, uint32(0x42), chunks[1].ChunkType())

	strict := newCodec(t, Options{StrictChunkBoundaries: true})
	_, err = strict.Decode(w.Bytes())
	require.ErrorIs(t, err, errs.ErrInvalidStructure)
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nstrict_chunk_boundaries: true\n"), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, Options{LogLevel: "debug", StrictChunkBoundaries: true}, opts)

	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o644))
	_, err = LoadOptions(path)
	require.Error(t, err)

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	_, err = New(Options{LogLevel: "loud"}, zerolog.Nop())
	require.Error(t, err)
}
