// Package config reads and validates run parameters from TOML or YAML
// input files. Validation is eager: a bad file aborts before any mesh or
// simulation work starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
)

// ErrMisconfigured wraps every validation failure.
var ErrMisconfigured = errors.New("invalid configuration")

// Parameters obtained from the input file. ghodss/yaml routes YAML through
// the json tags, so the json and toml tags carry the same key names.
type Parameters struct {
	MeshFile       string  `json:"meshFile" toml:"meshFile"`
	Dt             float64 `json:"dt" toml:"dt"`
	TEnd           float64 `json:"tEnd" toml:"tEnd"`
	WriteFrequency int     `json:"writeFrequency" toml:"writeFrequency"` // 0 disables output
	LogName        string  `json:"logName" toml:"logName"`
	OutputDir      string  `json:"outputDir" toml:"outputDir"`
	Workers        int     `json:"workers" toml:"workers"` // <= 1 runs the sweep serially

	// FishingGrounds is the optional diagnostic rectangle,
	// [[xMin, xMax], [yMin, yMax]].
	FishingGrounds *[2][2]float64 `json:"fishingGrounds" toml:"fishingGrounds"`
}

// Load reads, parses and validates the file at path. The format is chosen
// by extension: .toml, or .yaml/.yml.
func Load(path string) (*Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	p := &Parameters{}
	if err = p.Parse(data, filepath.Ext(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err = p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse fills p from raw file contents in the format implied by ext.
func (p *Parameters) Parse(data []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, p); err != nil {
			return fmt.Errorf("%w: %v", ErrMisconfigured, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, p); err != nil {
			return fmt.Errorf("%w: %v", ErrMisconfigured, err)
		}
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrMisconfigured, ext)
	}
	p.applyDefaults()
	return nil
}

func (p *Parameters) applyDefaults() {
	if p.LogName == "" {
		p.LogName = "logfile"
	}
	if p.OutputDir == "" {
		p.OutputDir = "tmp"
	}
}

// Validate checks required entries and their ranges.
func (p *Parameters) Validate() error {
	if p.MeshFile == "" {
		return fmt.Errorf("%w: missing required entry meshFile", ErrMisconfigured)
	}
	if p.Dt == 0 {
		return fmt.Errorf("%w: missing required entry dt", ErrMisconfigured)
	}
	if p.TEnd == 0 {
		return fmt.Errorf("%w: missing required entry tEnd", ErrMisconfigured)
	}
	if p.Dt < 0 {
		return fmt.Errorf("%w: dt must be > 0", ErrMisconfigured)
	}
	if p.TEnd < 0 {
		return fmt.Errorf("%w: tEnd must be > 0", ErrMisconfigured)
	}
	if p.WriteFrequency < 0 {
		return fmt.Errorf("%w: writeFrequency must be >= 0", ErrMisconfigured)
	}
	if fg := p.FishingGrounds; fg != nil {
		if fg[0][0] > fg[0][1] || fg[1][0] > fg[1][1] {
			return fmt.Errorf("%w: fishingGrounds bounds are inverted", ErrMisconfigured)
		}
	}
	return nil
}

// Print writes the effective parameters in the input-echo style used at
// run startup.
func (p *Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= meshFile\n", p.MeshFile)
	fmt.Printf("%8.5f\t\t= dt\n", p.Dt)
	fmt.Printf("%8.5f\t\t= tEnd\n", p.TEnd)
	fmt.Printf("[%d]\t\t\t= writeFrequency\n", p.WriteFrequency)
	if p.FishingGrounds != nil {
		fmt.Printf("%v\t= fishingGrounds\n", *p.FishingGrounds)
	}
}
