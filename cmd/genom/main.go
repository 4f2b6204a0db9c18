// Command genom inspects, round-trips and exports genom files.
//
// Usage:
//
//	genom [--config FILE] [--log-level LEVEL] inspect FILE
//	genom [--config FILE] [--log-level LEVEL] roundtrip FILE...
//	genom [--config FILE] [--log-level LEVEL] export [--format yaml|cbor] [--compress zstd|lz4] [--out FILE] FILE
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rawbytedev/genom"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	codec  *genom.Codec
	log    zerolog.Logger
	stdout io.Writer
}

func run(args []string, stdout, stderr io.Writer) error {
	var configPath, logLevel string
	flagSet := pflag.NewFlagSet("genom", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "options YAML file")
	flagSet.StringVar(&logLevel, "log-level", "", "log level, overrides the config file")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	opts := genom.DefaultOptions()
	if configPath != "" {
		var err error
		if opts, err = genom.LoadOptions(configPath); err != nil {
			return err
		}
	}
	if logLevel != "" {
		opts.LogLevel = logLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()
	codec, err := genom.New(opts, log)
	if err != nil {
		return err
	}
	a := &app{codec: codec, log: log, stdout: stdout}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(stderr, flagSet)
		return eris.New("missing command")
	}
	switch rest[0] {
	case "inspect":
		if len(rest) != 2 {
			return eris.New("inspect takes exactly one file")
		}
		return a.inspect(rest[1])
	case "roundtrip":
		if len(rest) < 2 {
			return eris.New("roundtrip needs at least one file")
		}
		return a.roundtrip(rest[1:])
	case "export":
		return a.export(rest[1:])
	default:
		return eris.Errorf("unknown command %q", rest[0])
	}
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `genom reads and writes template archives, actor files and GR01 resources.

Usage:
  genom [flags] inspect FILE
  genom [flags] roundtrip FILE...
  genom [flags] export [--format yaml|cbor] [--compress zstd|lz4] [--out FILE] FILE

Flags:
%s`, flagSet.FlagUsages())
}

func (a *app) load(path string) (genom.Document, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "read %s", path)
	}
	doc, err := a.codec.Decode(data)
	if err != nil {
		return nil, data, eris.Wrapf(err, "decode %s", path)
	}
	return doc, data, nil
}
