package config

// Presets are canned run configurations for the CLI, keyed by name.
var presets = map[string]*Config{
	"sweep": {
		Name: "sweep",
		Axes: []AxisSpec{
			{Name: "yaw", Min: f(-180), Max: f(180)},
		},
		MaxSpeed:   DefaultMaxSpeed,
		FrameMs:    DefaultFrameMs,
		DurationMs: 8000,
		Commands: []Command{
			{AtMs: 0, Op: OpGoto, Values: map[string]float64{"yaw": 120}},
			{AtMs: 4000, Op: OpGoto, Values: map[string]float64{"yaw": -120}},
		},
	},
	"orbit": {
		Name: "orbit",
		Axes: []AxisSpec{
			{Name: "yaw", Min: f(-180), Max: f(180)},
			{Name: "pitch", Min: f(-90), Max: f(90)},
			{Name: "zoom", Min: f(1), Max: f(10), Start: 2},
		},
		MaxSpeed:   60,
		FrameMs:    DefaultFrameMs,
		DurationMs: 10000,
		Commands: []Command{
			{AtMs: 0, Op: OpRoll, Invert: map[string]bool{"yaw": false}},
			{AtMs: 0, Op: OpGoto, Values: map[string]float64{"pitch": -25}, Multiplier: 0.5},
			{AtMs: 3000, Op: OpStep, Values: map[string]float64{"zoom": 3}},
			{AtMs: 8000, Op: OpStop},
		},
	},
	"snap": {
		Name: "snap",
		Axes: []AxisSpec{
			{Name: "zoom", Min: f(1), Max: f(10), Start: 1},
		},
		MaxSpeed:   5,
		FrameMs:    DefaultFrameMs,
		DurationMs: 4000,
		Commands: []Command{
			{AtMs: 0, Op: OpGoto, Values: map[string]float64{"zoom": 8}},
			{AtMs: 2000, Op: OpSet, Values: map[string]float64{"zoom": 1}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
