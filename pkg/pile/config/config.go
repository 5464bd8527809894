// Package config loads pile metrics and animation timing from TOML.
//
// A file picks a preset and overrides any part of it:
//
//	preset = "flip"
//
//	[animation]
//	duration = 1.0   # seconds
//	damping = 0.8
//
//	[leading]
//	dx = 0.5         # container widths
//	rotate_y = 1.5708
//	perspective = 1000
//
// Unset values keep the preset's.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/pile/pkg/pile"
)

// Preset names.
const (
	PresetSlide = "slide"
	PresetFlip  = "flip"
)

var (
	// ErrUnknownPreset is returned for a preset name with no metrics.
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrInvalid is returned when a value is outside its allowed range.
	ErrInvalid = errors.New("invalid value")
)

// Config is the decoded form of a pile configuration file.
type Config struct {
	Preset    string           `toml:"preset"`
	Animation AnimationSection `toml:"animation"`
	Active    MetricSection    `toml:"active"`
	Leading   MetricSection    `toml:"leading"`
	Trailing  MetricSection    `toml:"trailing"`
}

// AnimationSection overrides pile.AnimationConfig. Times are seconds.
type AnimationSection struct {
	Duration              *float64 `toml:"duration"`
	Delay                 *float64 `toml:"delay"`
	Damping               *float64 `toml:"damping"`
	InitialVelocity       *float64 `toml:"initial_velocity"`
	BeginFromCurrentState *bool    `toml:"begin_from_current_state"`
}

// MetricSection overrides one metric of the preset. Offsets are in
// container widths and heights, rotations in radians. Setting any of the
// transform keys replaces the preset's transform.
type MetricSection struct {
	Alpha       *float64 `toml:"alpha"`
	DX          *float64 `toml:"dx"`
	DY          *float64 `toml:"dy"`
	RotateX     *float64 `toml:"rotate_x"`
	RotateY     *float64 `toml:"rotate_y"`
	Scale       *float64 `toml:"scale"`
	Perspective *float64 `toml:"perspective"`
}

// Default returns the slide preset without overrides.
func Default() *Config {
	return &Config{Preset: PresetSlide}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates TOML data. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the preset name and value ranges.
func (c *Config) Validate() error {
	if _, err := presetMetrics(c.Preset); err != nil {
		return err
	}

	a := c.Animation
	if err := nonNegative("animation.duration", a.Duration); err != nil {
		return err
	}
	if err := nonNegative("animation.delay", a.Delay); err != nil {
		return err
	}
	if a.Damping != nil && *a.Damping <= 0 {
		return fmt.Errorf("animation.damping %v must be positive: %w", *a.Damping, ErrInvalid)
	}

	sections := []struct {
		name string
		m    MetricSection
	}{{"active", c.Active}, {"leading", c.Leading}, {"trailing", c.Trailing}}

	for _, sec := range sections {
		name, m := sec.name, sec.m
		if m.Alpha != nil && (*m.Alpha < 0 || *m.Alpha > 1) {
			return fmt.Errorf("%s.alpha %v must be within [0, 1]: %w", name, *m.Alpha, ErrInvalid)
		}
		if err := nonNegative(name+".perspective", m.Perspective); err != nil {
			return err
		}
	}
	return nil
}

// AnimationConfig returns the animation timing with overrides applied.
func (c *Config) AnimationConfig() pile.AnimationConfig {
	cfg := pile.DefaultAnimationConfig()
	a := c.Animation

	if a.Duration != nil {
		cfg.Duration = seconds(*a.Duration)
	}
	if a.Delay != nil {
		cfg.Delay = seconds(*a.Delay)
	}
	if a.Damping != nil {
		cfg.Damping = *a.Damping
	}
	if a.InitialVelocity != nil {
		cfg.InitialVelocity = *a.InitialVelocity
	}
	if a.BeginFromCurrentState != nil {
		cfg.BeginFromCurrentState = *a.BeginFromCurrentState
	}
	return cfg
}

// Metrics returns the preset's metrics with overrides applied.
func (c *Config) Metrics() (pile.Metrics, error) {
	base, err := presetMetrics(c.Preset)
	if err != nil {
		return pile.Metrics{}, err
	}

	return pile.Metrics{
		Active:   c.Active.apply(base.Active),
		Leading:  c.Leading.apply(base.Leading),
		Trailing: c.Trailing.apply(base.Trailing),
	}, nil
}

// Options returns pile options carrying the configured metrics and timing.
func (c *Config) Options() (pile.Options, error) {
	m, err := c.Metrics()
	if err != nil {
		return pile.Options{}, err
	}
	anim := c.AnimationConfig()
	return pile.Options{Animation: &anim}.WithMetrics(m), nil
}

func (s MetricSection) apply(base pile.OffsetMetric) pile.OffsetMetric {
	m := base
	if s.Alpha != nil {
		m.Opacity = *s.Alpha
	}
	if s.DX != nil {
		m.DX = *s.DX
	}
	if s.DY != nil {
		m.DY = *s.DY
	}

	if s.RotateX == nil && s.RotateY == nil && s.Scale == nil && s.Perspective == nil {
		return m
	}

	t := pile.Identity3D()
	if s.Scale != nil {
		t = t.Concat(pile.Scale3D(*s.Scale, *s.Scale, 1))
	}
	if s.RotateX != nil {
		t = t.Concat(pile.Rotation3D(*s.RotateX, 1, 0, 0))
	}
	if s.RotateY != nil {
		t = t.Concat(pile.Rotation3D(*s.RotateY, 0, 1, 0))
	}
	if s.Perspective != nil {
		t = t.Concat(pile.Perspective(*s.Perspective))
	}
	m.Transform3D = t
	return m
}

type presetSet struct {
	Active, Leading, Trailing pile.OffsetMetric
}

func presetMetrics(name string) (presetSet, error) {
	switch name {
	case "", PresetSlide:
		return presetSet{
			Active:   pile.DefaultActiveMetric(),
			Leading:  pile.DefaultLeadingMetric(),
			Trailing: pile.DefaultTrailingMetric(),
		}, nil
	case PresetFlip:
		return presetSet{
			Active:   pile.FlipActiveMetric(),
			Leading:  pile.FlipLeadingMetric(),
			Trailing: pile.FlipTrailingMetric(),
		}, nil
	default:
		return presetSet{}, fmt.Errorf("preset %q: %w", name, ErrUnknownPreset)
	}
}

func nonNegative(key string, v *float64) error {
	if v != nil && *v < 0 {
		return fmt.Errorf("%s %v must not be negative: %w", key, *v, ErrInvalid)
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
