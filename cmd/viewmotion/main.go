package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/viewmotion/internal/config"
	"github.com/san-kum/viewmotion/internal/motion"
	"github.com/san-kum/viewmotion/internal/trace"
	"github.com/san-kum/viewmotion/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	maxSpeed   float64
	save       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "viewmotion",
		Short: "smooth kinematic control of scalar view parameters",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runDemo(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".viewmotion", "data directory")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "interactive live demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	demoCmd.Flags().Float64Var(&maxSpeed, "max-speed", config.DefaultMaxSpeed, "top speed in units/second")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scripted motion profile",
		RunE:  runScripted,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "run configuration (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a preset configuration")
	runCmd.Flags().BoolVar(&save, "save", true, "persist the run trace")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(demoCmd, runCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDemo() error {
	ctrl := motion.NewComposite(map[string]motion.Range{
		"yaw":   {Min: math.Inf(-1), Max: math.Inf(1)},
		"pitch": {Min: -90, Max: 90},
		"zoom":  {Min: 1, Max: 10},
	}, nil)
	if maxSpeed == 0 {
		maxSpeed = config.DefaultMaxSpeed
	}
	ctrl.SetMaxSpeed(maxSpeed)
	return tui.Run(ctrl)
}

func loadRunConfig() (*config.Config, error) {
	switch {
	case preset != "":
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		return cfg, nil
	case configFile != "":
		return config.Load(configFile)
	default:
		return config.DefaultConfig(), nil
	}
}

// buildComposite turns the declared axes into a controller, snapping each
// axis to its configured start value.
func buildComposite(cfg *config.Config, onChange func(map[string]float64)) (*motion.Composite, error) {
	ranges := make(map[string]motion.Range, len(cfg.Axes))
	starts := make(map[string]float64, len(cfg.Axes))
	for _, ax := range cfg.Axes {
		r := motion.Range{Min: math.Inf(-1), Max: math.Inf(1)}
		if ax.Min != nil {
			r.Min = *ax.Min
		}
		if ax.Max != nil {
			r.Max = *ax.Max
		}
		ranges[ax.Name] = r
		starts[ax.Name] = ax.Start
	}

	ctrl := motion.NewComposite(ranges, onChange)
	ctrl.SetMaxSpeed(cfg.MaxSpeed)
	if err := ctrl.SetCurrent(starts); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func applyCommand(ctrl *motion.Composite, cmd config.Command) error {
	mult := cmd.Multiplier
	if mult == 0 {
		mult = 1
	}
	switch cmd.Op {
	case config.OpGoto:
		return ctrl.Goto(cmd.Values, mult)
	case config.OpStep:
		return ctrl.Step(cmd.Values, mult)
	case config.OpRoll:
		return ctrl.Roll(cmd.Invert, mult)
	case config.OpStop:
		ctrl.Stop()
		return nil
	case config.OpSet:
		return ctrl.SetCurrent(cmd.Values)
	default:
		return fmt.Errorf("unknown op %q", cmd.Op)
	}
}

func runScripted(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rec := trace.NewRecorder(cfg.AxisNames())
	ctrl, err := buildComposite(cfg, nil)
	if err != nil {
		return err
	}

	commands := make([]config.Command, len(cfg.Commands))
	copy(commands, cfg.Commands)
	sort.SliceStable(commands, func(i, j int) bool { return commands[i].AtMs < commands[j].AtMs })

	changed := 0
	next := 0
	for t := 0.0; t <= cfg.DurationMs; t += cfg.FrameMs {
		for next < len(commands) && commands[next].AtMs <= t {
			if err := applyCommand(ctrl, commands[next]); err != nil {
				return fmt.Errorf("command at %.0fms: %w", commands[next].AtMs, err)
			}
			next++
		}
		if ctrl.Update(cfg.FrameMs) {
			changed++
		}
		rec.Record(t, ctrl.Values())
	}

	fmt.Printf("run %q: %d frames, %d with motion\n\n", cfg.Name, rec.Len(), changed)
	for _, name := range rec.Names() {
		fmt.Println(rec.Plot(name, 10, 80))
		fmt.Println()
	}

	final := ctrl.Values()
	names := make([]string, 0, len(final))
	for name := range final {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f (%s)\n", name, final[name], ctrl.Axis(name).Mode())
	}

	if !save {
		return nil
	}
	st := trace.NewStore(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Name, cfg.FrameMs, cfg.DurationMs, cfg.MaxSpeed, rec)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := trace.NewStore(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tFRAME\tAXES\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fms\t%.0fms\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.DurationMs,
			run.FrameMs,
			len(run.Axes),
			run.Frames,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := trace.NewStore(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, _, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", meta.Frames)

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs time", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := trace.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
