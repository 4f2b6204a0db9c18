package main

import (
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/rawbytedev/genom"
	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// exported is the tree written by export.
type exported struct {
	Kind     string `yaml:"kind" cbor:"kind"`
	Document any    `yaml:"document" cbor:"document"`
}

func exportTree(doc genom.Document) exported {
	out := exported{Kind: doc.Kind().String()}
	switch d := doc.(type) {
	case genom.Template:
		out.Document = d.TemplateFile
	case genom.Actor:
		out.Document = d.File
	default:
		out.Document = d
	}
	return out
}

var cborMode cbor.EncMode

func init() {
	var err error
	if cborMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic("genom: cbor encoder initialization failed: " + err.Error())
	}
}

func marshal(format string, v any) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(v)
	case "cbor":
		return cborMode.Marshal(v)
	default:
		return nil, eris.Errorf("unknown format %q", format)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func compressor(name string, w io.Writer) (io.WriteCloser, error) {
	switch name {
	case "", "none":
		return nopCloser{w}, nil
	case "zstd":
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case "lz4":
		return lz4.NewWriter(w), nil
	default:
		return nil, eris.Errorf("unknown compression %q", name)
	}
}

func (a *app) export(args []string) error {
	var format, compress, outPath string
	flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
	flagSet.StringVar(&format, "format", "yaml", "output format: yaml or cbor")
	flagSet.StringVar(&compress, "compress", "", "compress the output: zstd or lz4")
	flagSet.StringVarP(&outPath, "out", "o", "", "write to FILE instead of stdout")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return eris.New("export takes exactly one file")
	}

	doc, _, err := a.load(flagSet.Arg(0))
	if err != nil {
		return err
	}
	data, err := marshal(format, exportTree(doc))
	if err != nil {
		return eris.Wrap(err, "export")
	}

	if outPath == "" {
		return writeOutput(nopCloser{a.stdout}, compress, data)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return eris.Wrap(err, "export")
	}
	return writeOutput(f, compress, data)
}

// writeOutput compresses data into dst and closes dst. The first error is
// returned, including one from closing dst.
func writeOutput(dst io.WriteCloser, compress string, data []byte) error {
	err := writeCompressed(dst, compress, data)
	if cerr := dst.Close(); err == nil && cerr != nil {
		err = eris.Wrap(cerr, "close output")
	}
	return err
}

func writeCompressed(dst io.Writer, compress string, data []byte) error {
	w, err := compressor(compress, dst)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return eris.Wrap(err, "export")
	}
	return eris.Wrap(w.Close(), "export")
}
