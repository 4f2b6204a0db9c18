package genom

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Options tunes decoding and authoring. The zero value matches the behavior
// shipped files need.
type Options struct {
	// LogLevel is a zerolog level name. Empty means "warn".
	LogLevel string `yaml:"log_level"`
	// StrictChunkBoundaries fails a chunk whose payload does not end on its
	// declared size instead of logging it.
	StrictChunkBoundaries bool `yaml:"strict_chunk_boundaries"`
	// BigEndianActors selects the byte order of newly authored actor streams.
	BigEndianActors bool `yaml:"big_endian_actors"`
}

// DefaultOptions returns the options used when no file is given.
func DefaultOptions() Options {
	return Options{LogLevel: "warn"}
}

// LoadOptions reads options from a YAML file. Keys missing from the file keep
// their defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, eris.Wrapf(err, "read options %s", path)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, eris.Wrapf(err, "parse options %s", path)
	}
	if _, err := opts.level(); err != nil {
		return opts, err
	}
	return opts, nil
}

func (o Options) level() (zerolog.Level, error) {
	if o.LogLevel == "" {
		return zerolog.WarnLevel, nil
	}
	l, err := zerolog.ParseLevel(o.LogLevel)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "log_level %q", o.LogLevel)
	}
	return l, nil
}
