// Package config loads and validates YAML run configurations: the axis
// set, speed policy, frame timing, and a scripted command timeline.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSpeed   = 90.0
	DefaultFrameMs    = 16.0
	DefaultDurationMs = 5000.0
)

// Valid command ops for the scripted timeline.
const (
	OpGoto = "goto"
	OpStep = "step"
	OpRoll = "roll"
	OpStop = "stop"
	OpSet  = "set"
)

type Config struct {
	Name       string     `yaml:"name"`
	Axes       []AxisSpec `yaml:"axes"`
	MaxSpeed   float64    `yaml:"max_speed"`
	FrameMs    float64    `yaml:"frame_ms"`
	DurationMs float64    `yaml:"duration_ms"`
	Commands   []Command  `yaml:"commands"`
}

// AxisSpec declares one controlled axis. Nil Min/Max leave that side
// unbounded.
type AxisSpec struct {
	Name  string   `yaml:"name"`
	Min   *float64 `yaml:"min"`
	Max   *float64 `yaml:"max"`
	Start float64  `yaml:"start"`
}

// Command is one timeline entry, applied once the run clock reaches AtMs.
// Values feeds goto/step/set; Invert feeds roll; Multiplier defaults to 1
// when zero.
type Command struct {
	AtMs       float64            `yaml:"at_ms"`
	Op         string             `yaml:"op"`
	Values     map[string]float64 `yaml:"values"`
	Invert     map[string]bool    `yaml:"invert"`
	Multiplier float64            `yaml:"multiplier"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "default",
		Axes: []AxisSpec{
			{Name: "yaw", Min: f(-180), Max: f(180)},
			{Name: "pitch", Min: f(-90), Max: f(90)},
			{Name: "zoom", Min: f(1), Max: f(10), Start: 1},
		},
		MaxSpeed:   DefaultMaxSpeed,
		FrameMs:    DefaultFrameMs,
		DurationMs: DefaultDurationMs,
		Commands: []Command{
			{AtMs: 0, Op: OpGoto, Values: map[string]float64{"yaw": 45, "pitch": -10}},
			{AtMs: 2000, Op: OpRoll, Invert: map[string]bool{"yaw": true}},
			{AtMs: 4000, Op: OpStop},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		MaxSpeed:   DefaultMaxSpeed,
		FrameMs:    DefaultFrameMs,
		DurationMs: DefaultDurationMs,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
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
	if len(c.Axes) == 0 {
		return fmt.Errorf("config: at least one axis required")
	}
	seen := make(map[string]bool, len(c.Axes))
	for _, ax := range c.Axes {
		if ax.Name == "" {
			return fmt.Errorf("config: axis with empty name")
		}
		if seen[ax.Name] {
			return fmt.Errorf("config: duplicate axis %q", ax.Name)
		}
		seen[ax.Name] = true
		if ax.Min != nil && ax.Max != nil && *ax.Min > *ax.Max {
			return fmt.Errorf("config: axis %q has min %f > max %f", ax.Name, *ax.Min, *ax.Max)
		}
	}
	if c.MaxSpeed < 0 {
		return fmt.Errorf("config: max_speed must be >= 0, got %f", c.MaxSpeed)
	}
	if c.FrameMs <= 0 {
		return fmt.Errorf("config: frame_ms must be positive, got %f", c.FrameMs)
	}
	if c.DurationMs <= 0 {
		return fmt.Errorf("config: duration_ms must be positive, got %f", c.DurationMs)
	}
	for i, cmd := range c.Commands {
		switch cmd.Op {
		case OpGoto, OpStep, OpRoll, OpStop, OpSet:
		default:
			return fmt.Errorf("config: command %d has unknown op %q", i, cmd.Op)
		}
		if cmd.AtMs < 0 {
			return fmt.Errorf("config: command %d scheduled before t=0", i)
		}
	}
	return nil
}

// AxisNames returns the declared axis names in declaration order.
func (c *Config) AxisNames() []string {
	names := make([]string, 0, len(c.Axes))
	for _, ax := range c.Axes {
		names = append(names, ax.Name)
	}
	return names
}

func f(v float64) *float64 { return &v }
