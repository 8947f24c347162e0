package config

import (
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fepmorph/internal/anim"
	"github.com/san-kum/fepmorph/internal/morph"
)

const (
	DefaultLimit     = 10.0
	DefaultOutputDir = "images"
	DefaultRate      = 10.0
)

type Config struct {
	Scheme     string      `yaml:"scheme"`
	Input      string      `yaml:"input"`
	Limit      float64     `yaml:"limit"`
	ShowWaters bool        `yaml:"show_waters"`
	OutputDir  string      `yaml:"output_dir"`
	Prefix     string      `yaml:"prefix"`
	Samples    int         `yaml:"samples"`
	Start      float64     `yaml:"start"`
	End        float64     `yaml:"end"`
	Rate       float64     `yaml:"fps"`
	View       ViewConfig  `yaml:"view"`
	Label      LabelConfig `yaml:"label"`
}

type ViewConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Background string     `yaml:"background"`
	Center     [3]float64 `yaml:"center"`
	Range      float64    `yaml:"range"`
	Autoscale  bool       `yaml:"autoscale"`
}

type LabelConfig struct {
	Pos     [3]float64 `yaml:"pos"`
	Height  float64    `yaml:"height"`
	XOffset float64    `yaml:"xoffset"`
	YOffset float64    `yaml:"yoffset"`
	Color   string     `yaml:"color"`
}

var schemeDefaults = map[string]struct{ input, prefix string }{
	"dual":   {"dual_topology.pdb", "dt"},
	"single": {"single_topology.pdb", "st"},
}

// DefaultConfig returns the settings the animations were designed with.
func DefaultConfig(scheme string) *Config {
	opts := morph.DefaultOptions(scheme)
	cfg := &Config{
		Scheme:    scheme,
		Limit:     DefaultLimit,
		OutputDir: DefaultOutputDir,
		Samples:   anim.DefaultSamples,
		Start:     0,
		End:       1,
		Rate:      DefaultRate,
		View: ViewConfig{
			Width:      opts.View.Width,
			Height:     opts.View.Height,
			Background: opts.View.Background.Hex(),
			Center:     toArray(opts.View.Center),
			Range:      opts.View.Range,
			Autoscale:  opts.View.Autoscale,
		},
		Label: LabelConfig{
			Pos:     toArray(opts.Label.Pos),
			Height:  opts.Label.Height,
			XOffset: opts.Label.XOffset,
			YOffset: opts.Label.YOffset,
			Color:   opts.Label.Color.Hex(),
		},
	}
	if d, ok := schemeDefaults[scheme]; ok {
		cfg.Input = d.input
		cfg.Prefix = d.prefix
	}
	return cfg
}

// Load reads a YAML file over the defaults of the scheme it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var head struct {
		Scheme string `yaml:"scheme"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	if head.Scheme == "" {
		head.Scheme = "dual"
	}
	cfg := DefaultConfig(head.Scheme)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, ok := schemeDefaults[c.Scheme]; !ok {
		return fmt.Errorf("unknown scheme %q (available: %v)", c.Scheme, morph.Schemes())
	}
	if c.Input == "" {
		return fmt.Errorf("input structure is required")
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %f", c.Limit)
	}
	if c.Rate < 0 {
		return fmt.Errorf("fps must not be negative, got %f", c.Rate)
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return fmt.Errorf("view size must be positive, got %dx%d", c.View.Width, c.View.Height)
	}
	if c.View.Range <= 0 {
		return fmt.Errorf("view range must be positive, got %f", c.View.Range)
	}
	if _, err := colorful.Hex(c.View.Background); err != nil {
		return fmt.Errorf("view background: %w", err)
	}
	if _, err := colorful.Hex(c.Label.Color); err != nil {
		return fmt.Errorf("label color: %w", err)
	}
	return c.Schedule().Validate()
}

func (c *Config) Schedule() anim.Schedule {
	return anim.Schedule{Samples: c.Samples, Start: c.Start, End: c.End}
}

// Options converts the view and label settings. Call Validate first; bad
// colours fall back to the defaults.
func (c *Config) Options() morph.Options {
	opts := morph.DefaultOptions(c.Scheme)
	opts.ShowWaters = c.ShowWaters

	opts.View.Width = c.View.Width
	opts.View.Height = c.View.Height
	opts.View.Center = toVec(c.View.Center)
	opts.View.Range = c.View.Range
	opts.View.Autoscale = c.View.Autoscale
	if bg, err := colorful.Hex(c.View.Background); err == nil {
		opts.View.Background = bg
	}

	opts.Label.Pos = toVec(c.Label.Pos)
	opts.Label.Height = c.Label.Height
	opts.Label.XOffset = c.Label.XOffset
	opts.Label.YOffset = c.Label.YOffset
	if lc, err := colorful.Hex(c.Label.Color); err == nil {
		opts.Label.Color = lc
	}
	return opts
}

func toArray(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
func toVec(a [3]float64) r3.Vec   { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }
