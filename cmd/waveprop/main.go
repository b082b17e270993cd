package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/waveprop/internal/config"
	"github.com/san-kum/waveprop/internal/engine"
	"github.com/san-kum/waveprop/internal/export"
	"github.com/san-kum/waveprop/internal/field"
	"github.com/san-kum/waveprop/internal/scenario"
	"github.com/san-kum/waveprop/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	stepperKind string
	step        float64
	pStart      float64
	pEnd        float64
	sampleEvery float64
	points      int
	length      float64
	speed       float64
	diffusivity float64
	width       float64
	amplitude   float64
	save        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "waveprop",
		Short: "spectral field propagation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".waveprop", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "yaml config file")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "integrate a scenario and plot the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "save results to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "integrate a scenario and play the field back",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list available scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scenario.Names() {
				presets := config.ListPresets(name)
				sort.Strings(presets)
				if len(presets) > 0 {
					fmt.Printf("%s (presets: %v)\n", name, presets)
				} else {
					fmt.Println(name)
				}
			}
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	rootCmd.AddCommand(runCmd, liveCmd, scenariosCmd, runsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "named preset for the scenario")
	cmd.Flags().StringVar(&stepperKind, "stepper", "rk4", "stepper (euler|rk4)")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "fixed step size")
	cmd.Flags().Float64Var(&pStart, "start", 0.0, "propagation start")
	cmd.Flags().Float64Var(&pEnd, "end", config.DefaultPEnd, "propagation end")
	cmd.Flags().Float64Var(&sampleEvery, "sample-every", config.DefaultSampleEvery, "sampling interval")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "transverse grid points")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "transverse grid length")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "transport speed")
	cmd.Flags().Float64Var(&diffusivity, "diffusivity", config.DefaultDiffusivity, "diffusion coefficient")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "initial profile width")
	cmd.Flags().Float64Var(&amplitude, "amplitude", config.DefaultAmplitude, "initial profile amplitude")
}

func buildConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		cfg = p
	}

	cfg.Scenario = name
	if cmd.Flags().Changed("stepper") {
		cfg.Stepper = stepperKind
	}
	if cmd.Flags().Changed("step") {
		cfg.Step = step
	}
	if cmd.Flags().Changed("start") {
		cfg.PStart = pStart
	}
	if cmd.Flags().Changed("end") {
		cfg.PEnd = pEnd
	}
	if cmd.Flags().Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if cmd.Flags().Changed("points") {
		cfg.Grid.Points = points
	}
	if cmd.Flags().Changed("length") {
		cfg.Grid.Length = length
	}
	if cmd.Flags().Changed("speed") {
		cfg.Params.Speed = speed
	}
	if cmd.Flags().Changed("diffusivity") {
		cfg.Params.Diffusivity = diffusivity
	}
	if cmd.Flags().Changed("width") {
		cfg.Params.Width = width
	}
	if cmd.Flags().Changed("amplitude") {
		cfg.Params.Amplitude = amplitude
	}
	return cfg, cfg.Validate()
}

func integrateScenario(cfg *config.Config, onSample func(p float64)) (*scenario.Scenario, map[string]*field.Field, error) {
	sc, err := scenario.Build(cfg.Scenario, cfg)
	if err != nil {
		return nil, nil, err
	}

	schedule := cfg.SampleSchedule()
	samplers := map[string]engine.SamplerSpec{
		"field": {Fn: engine.SampleField, Schedule: schedule},
		"mean":  {Fn: meanSampler, Schedule: schedule},
	}

	results, err := engine.Integrate(sc.Equation, sc.Initial, cfg.PStart, engine.Options{
		Stepper:  cfg.Stepper,
		Step:     cfg.Step,
		Samplers: samplers,
		OnSample: onSample,
	})
	if err != nil {
		return nil, nil, err
	}
	return sc, results, nil
}

// meanSampler reduces the field to the mean of its real parts.
func meanSampler(f *field.Field, p float64) (any, error) {
	sum := 0.0
	for _, v := range f.Data.Data {
		sum += real(v)
	}
	return sum / float64(f.Data.Size()), nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sc, results, err := integrateScenario(cfg, func(p float64) {
		fmt.Printf("\rintegrating  p = %-10.3f", p)
	})
	fmt.Print("\r\033[K")
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tSTEPPER\tSTEP\tRANGE\tSAMPLES\tGRID")
	fmt.Fprintf(w, "%s\t%s\t%.4f\t[%.2f, %.2f]\t%d\t%d x %.1f\n",
		sc.Name, cfg.Stepper, cfg.Step, cfg.PStart, cfg.PEnd,
		len(cfg.SampleSchedule()), cfg.Grid.Points, cfg.Grid.Length)
	w.Flush()
	fmt.Println()

	fieldResult := results["field"]
	last := fieldResult.Dims[0].Size() - 1
	graph, err := viz.PlotRow(fieldResult, last)
	if err != nil {
		return err
	}
	fmt.Println(graph)

	trace, err := viz.PlotTrace(results["mean"], "mean")
	if err != nil {
		return err
	}
	fmt.Println(trace)

	peak := 0.0
	for _, v := range fieldResult.Data.Data {
		if a := math.Abs(real(v)); a > peak {
			peak = a
		}
	}
	fmt.Printf("peak |F| over the run: %.6f\n", peak)

	if save {
		store := export.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(sc.Name, cfg.Stepper, cfg.Step, cfg.PStart, cfg.PEnd, results)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", runID)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sc, results, err := integrateScenario(cfg, nil)
	if err != nil {
		return err
	}

	frames, err := viz.FramesFromResult(results["field"])
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(sc.Name, sc.P.Name, frames))
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := export.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTEPPER\tSTEP\tRANGE\tSAMPLERS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\t[%.2f, %.2f]\t%v\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stepper,
			run.Step,
			run.PStart,
			run.PEnd,
			run.SamplerKeys,
		)
	}
	return w.Flush()
}
