package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/fepmorph/internal/anim"
	"github.com/san-kum/fepmorph/internal/config"
	"github.com/san-kum/fepmorph/internal/logx"
	"github.com/san-kum/fepmorph/internal/morph"
	"github.com/san-kum/fepmorph/internal/povray"
	"github.com/san-kum/fepmorph/internal/storage"
	"github.com/san-kum/fepmorph/internal/store"
	"github.com/san-kum/fepmorph/internal/structure"
	"github.com/san-kum/fepmorph/internal/tui"
	"github.com/san-kum/fepmorph/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logger   = logx.Discard()

	configFile string
	preset     string

	input      string
	limit      float64
	showWaters bool
	outputDir  string
	prefix     string
	samples    int
	frameRate  float64

	archive  bool
	noRecord bool
	pngFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "fepmorph",
		Short:         "alchemical morph animations for POV-Ray",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logx.New(os.Stderr, logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fepmorph", "run record directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	renderCmd := &cobra.Command{
		Use:   "render [scheme]",
		Short: "write one POV-Ray frame per lambda value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrames,
	}
	addSceneFlags(renderCmd)
	renderCmd.Flags().StringVar(&outputDir, "out", config.DefaultOutputDir, "frame output directory")
	renderCmd.Flags().StringVar(&prefix, "prefix", "", "frame file prefix (default dt or st)")
	renderCmd.Flags().Float64Var(&frameRate, "fps", config.DefaultRate, "frames per second, 0 for unthrottled")
	renderCmd.Flags().BoolVar(&archive, "archive", false, "also write a gzipped scene trajectory")
	renderCmd.Flags().BoolVar(&noRecord, "no-record", false, "do not save a run record")

	inspectCmd := &cobra.Command{
		Use:   "inspect [pdb]",
		Short: "list the molecules of a structure and whether they are displayed",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectStructure,
	}
	inspectCmd.Flags().Float64Var(&limit, "limit", config.DefaultLimit, "display bound after recentring")

	curvesCmd := &cobra.Command{
		Use:   "curves [scheme]",
		Short: "plot the animated quantities against lambda",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotCurves,
	}
	addSceneFlags(curvesCmd)
	curvesCmd.Flags().StringVar(&pngFile, "png", "", "also save the curves as a PNG plot")

	previewCmd := &cobra.Command{
		Use:   "preview [scheme]",
		Short: "play the animation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreview,
	}
	addSceneFlags(previewCmd)
	previewCmd.Flags().Float64Var(&frameRate, "fps", config.DefaultRate, "frames per second")

	presetsCmd := &cobra.Command{
		Use:   "presets [scheme]",
		Short: "list available presets for a scheme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scheme: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	rootCmd.AddCommand(renderCmd, inspectCmd, curvesCmd, previewCmd, presetsCmd, runsCmd, showCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.Hidden.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&input, "input", "", "structure file (default depends on scheme)")
	cmd.Flags().Float64Var(&limit, "limit", config.DefaultLimit, "display bound after recentring")
	cmd.Flags().BoolVar(&showWaters, "waters", false, "draw waters inside the bound")
	cmd.Flags().IntVar(&samples, "samples", anim.DefaultSamples, "number of lambda values")
}

// resolveConfig layers defaults or the config file, then the preset, then
// explicit flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	scheme := "dual"
	if len(args) > 0 {
		scheme = args[0]
	}

	cfg := config.DefaultConfig(scheme)
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 && loaded.Scheme != scheme {
			return nil, fmt.Errorf("config %s is for scheme %s, not %s", configFile, loaded.Scheme, scheme)
		}
		cfg = loaded
	}
	if preset != "" {
		if err := config.ApplyPreset(cfg, preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = input
	}
	if flags.Changed("limit") {
		cfg.Limit = limit
	}
	if flags.Changed("waters") {
		cfg.ShowWaters = showWaters
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("out") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("prefix") {
		cfg.Prefix = prefix
	}
	if flags.Changed("fps") {
		cfg.Rate = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildAnimator(cfg *config.Config) (morph.Animator, *structure.System, error) {
	sys, err := structure.Load(cfg.Input, cfg.Limit)
	if err != nil {
		return nil, nil, err
	}
	logger.Debugf("loaded %s: %d molecules, %d atoms, %d displayed",
		cfg.Input, len(sys.Molecules), sys.NumAtoms(), len(sys.Displayed()))

	a, err := morph.Build(cfg.Scheme, sys, cfg.Options())
	if err != nil {
		return nil, nil, err
	}
	return a, sys, nil
}

func renderFrames(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	a, _, err := buildAnimator(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := anim.New(a)
	exporter := povray.NewExporter(cfg.OutputDir, cfg.Prefix)
	runner.AddObserver(exporter)
	runner.AddObserver(anim.ObserverFunc(func(ctx context.Context, f anim.Frame) error {
		logger.Debugf("frame %03d %s", f.Index, morph.LambdaText(f.Lambda))
		return nil
	}))

	var aw *store.ArchiveWriter
	archivePath := ""
	if archive {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return err
		}
		archivePath = filepath.Join(cfg.OutputDir, cfg.Prefix+"_"+store.ArchiveName)
		aw, err = store.NewArchiveWriter(archivePath)
		if err != nil {
			return err
		}
		runner.AddObserver(aw)
	}

	logger.Infof("rendering %s topology from %s", cfg.Scheme, cfg.Input)
	start := time.Now()
	result, runErr := runner.Run(ctx, anim.Config{Schedule: cfg.Schedule(), Rate: cfg.Rate})
	if aw != nil {
		if err := aw.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			logger.Warnf("interrupted after %d frames", len(exporter.Written))
		}
		return runErr
	}
	elapsed := time.Since(start)

	summary := []string{
		viz.Title.Render(cfg.Scheme + " topology"),
		viz.MetricLabel.Render("frames: ") + viz.MetricValue.Render(fmt.Sprint(result.Frames)),
		viz.MetricLabel.Render("output: ") + viz.MetricValue.Render(cfg.OutputDir),
		viz.MetricLabel.Render("time:   ") + viz.MetricValue.Render(elapsed.Round(time.Millisecond).String()),
	}
	if archivePath != "" {
		summary = append(summary, viz.MetricLabel.Render("trajectory: ")+viz.MetricValue.Render(archivePath))
	}
	fmt.Println(viz.Panel.Render(strings.Join(summary, "\n")))

	if noRecord {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Scheme:     cfg.Scheme,
		Input:      cfg.Input,
		Limit:      cfg.Limit,
		ShowWaters: cfg.ShowWaters,
		Samples:    cfg.Samples,
		OutputDir:  cfg.OutputDir,
		Prefix:     cfg.Prefix,
		Archive:    archivePath,
	}, result)
	if err != nil {
		return err
	}
	logger.Infof("run id: %s", runID)
	return nil
}

func inspectStructure(cmd *cobra.Command, args []string) error {
	sys, err := structure.Load(args[0], limit)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(args[0]))
	fmt.Printf("%s %.3f %.3f %.3f\n", viz.MetricLabel.Render("centroid:"), sys.Center.X, sys.Center.Y, sys.Center.Z)
	fmt.Printf("%s %d molecules, %d atoms, %d displayed\n\n", viz.MetricLabel.Render("contents:"),
		len(sys.Molecules), sys.NumAtoms(), len(sys.Displayed()))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tRESIDUE\tATOMS\tDISPLAYED\tELEMENTS")
	for i, m := range sys.Molecules {
		shown := viz.StatusRunning.Render("yes")
		if !m.Display {
			shown = viz.Hidden.Render("no")
		}
		counts := make(map[byte]int)
		for _, a := range m.Atoms {
			counts[a.Element]++
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", i, m.Name, len(m.Atoms), shown, viz.ElementLegend(counts))
	}
	return w.Flush()
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	a, _, err := buildAnimator(cfg)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(tui.NewPreview(a, cfg.Schedule(), cfg.Rate), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if p, ok := final.(tui.Preview); ok {
		return p.Err()
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHEME\tINPUT\tFRAMES\tOUTPUT\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			run.ID, run.Scheme, run.Input, run.Frames, run.OutputDir,
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
