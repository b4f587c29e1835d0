package batch

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"honnef.co/go/curve3"
)

// Bounds on the number of output points per curve.
const (
	MinCount = 3
	MaxCount = 5000
)

// Config describes a batch job.
type Config struct {
	// InputDir is scanned (non-recursively) for curve files.
	InputDir string `yaml:"input"`
	// OutputDir receives one FCSV file per successfully resampled curve.
	OutputDir string `yaml:"output"`
	// Count is the number of points every output curve has.
	Count    int             `yaml:"count"`
	Topology curve3.Topology `yaml:"topology"`
	// Extension selects which files in InputDir are read, e.g. ".fcsv".
	Extension string `yaml:"extension"`
	Workers   int    `yaml:"workers"`
	// PreviewDir, if set, receives a PNG preview per curve.
	PreviewDir string `yaml:"preview"`
}

func DefaultConfig() Config {
	return Config{
		Count:     50,
		Topology:  curve3.Open,
		Extension: ".fcsv",
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// LoadConfig decodes the YAML job file at path on top of cfg. Fields missing
// from the file keep their values.
func LoadConfig(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}
	return nil
}

func (cfg Config) Validate() error {
	switch {
	case cfg.InputDir == "":
		return errors.New("no input directory")
	case cfg.OutputDir == "":
		return errors.New("no output directory")
	case cfg.Count < MinCount || cfg.Count > MaxCount:
		return errors.Errorf("point count %d out of range [%d, %d]", cfg.Count, MinCount, MaxCount)
	case cfg.Topology != curve3.Open && cfg.Topology != curve3.Closed:
		return errors.Errorf("unknown topology %d", cfg.Topology)
	case cfg.Extension == "":
		return errors.New("no file extension")
	case cfg.Workers < 1:
		return errors.Errorf("need at least one worker, got %d", cfg.Workers)
	}
	return nil
}
