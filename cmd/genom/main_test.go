package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/rawbytedev/genom"
	"github.com/rawbytedev/genom/pkg/entity"
	"github.com/rawbytedev/genom/pkg/object"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	c, err := genom.New(genom.DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)
	root := &entity.TemplateEntity{
		GeometryEntity:  entity.GeometryEntity{Entity: *entity.NewEntity("Campfire"), GeometryVersion: 3},
		TemplateVersion: 4,
	}
	root.PropertySets = []object.Accessor{object.NewAccessor(object.New(object.Opaque{Name: "gCUnknown_PS", Raw: []byte{1, 2, 3, 4}}))}
	data, err := c.Encode(genom.Template{TemplateFile: entity.NewTemplate(root)})
	require.NoError(t, err)
	path := filepath.Join(dir, "campfire.tple")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func TestInspectTemplate(t *testing.T) {
	path := writeTemplate(t, t.TempDir())
	out, err := runCLI(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, ": template")
	assert.Contains(t, out, `entity: "Campfire"`)
	assert.Contains(t, out, "eCTemplateEntity/property_sets[0]: 0 properties, opaque 4 bytes")
}

func TestRoundtripContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeTemplate(t, dir)
	bad := filepath.Join(dir, "broken.tple")
	require.NoError(t, os.WriteFile(bad, []byte("GENOMFLE"), 0o644))

	out, err := runCLI(t, "roundtrip", bad, good)
	require.Error(t, err)
	assert.Contains(t, out, bad+": FAIL")
	assert.Contains(t, out, good+": ok")

	out, err = runCLI(t, "roundtrip", good)
	require.NoError(t, err)
	assert.Contains(t, out, good+": ok")
}

func TestExportYAML(t *testing.T) {
	path := writeTemplate(t, t.TempDir())
	out, err := runCLI(t, "export", path)
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "template", tree["kind"])
	assert.Contains(t, out, "Campfire")
}

func TestExportCompressedCBOR(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir)

	for _, compress := range []string{"zstd", "lz4"} {
		dst := filepath.Join(dir, "out."+compress)
		_, err := runCLI(t, "export", "--format", "cbor", "--compress", compress, "--out", dst, path)
		require.NoError(t, err)

		f, err := os.Open(dst)
		require.NoError(t, err)
		var raw bytes.Buffer
		if compress == "zstd" {
			dec, err := zstd.NewReader(f)
			require.NoError(t, err)
			_, err = raw.ReadFrom(dec)
			require.NoError(t, err)
			dec.Close()
		} else {
			_, err = raw.ReadFrom(lz4.NewReader(f))
			require.NoError(t, err)
		}
		f.Close()

		var tree map[string]any
		require.NoError(t, cbor.Unmarshal(raw.Bytes(), &tree))
		assert.Equal(t, "template", tree["kind"], compress)
	}
}

func TestUsageErrors(t *testing.T) {
	_, err := runCLI(t)
	require.Error(t, err)
	_, err = runCLI(t, "frobnicate")
	require.Error(t, err)
	_, err = runCLI(t, "export", "--format", "xml", writeTemplate(t, t.TempDir()))
	require.Error(t, err)
	_, err = runCLI(t, "--log-level", "loud", "inspect", "x")
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "genom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log_level: error\n"), 0o644))
	_, err := runCLI(t, "--config", cfg, "inspect", writeTemplate(t, dir))
	require.NoError(t, err)
}

type closeFailer struct {
	bytes.Buffer
	err error
}

func (c *closeFailer) Close() error { return c.err }

func TestWriteOutputReportsCloseError(t *testing.T) {
	diskFull := errors.New("disk full")
	for _, compress := range []string{"", "zstd", "lz4"} {
		dst := &closeFailer{err: diskFull}
		err := writeOutput(dst, compress, []byte("kind: template\n"))
		require.ErrorIs(t, err, diskFull, compress)
		assert.NotZero(t, dst.Len(), compress)
	}

	ok := &closeFailer{}
	require.NoError(t, writeOutput(ok, "", []byte("x")))
	assert.Equal(t, "x", ok.String())
	require.Error(t, writeOutput(&closeFailer{}, "brotli", []byte("x")))
}
