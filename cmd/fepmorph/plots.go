package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/fepmorph/internal/anim"
	"github.com/san-kum/fepmorph/internal/storage"
	"github.com/san-kum/fepmorph/internal/store"
	"github.com/san-kum/fepmorph/internal/viz"
)

func plotCurves(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	a, _, err := buildAnimator(cfg)
	if err != nil {
		return err
	}

	result, err := anim.New(a).Run(context.Background(), anim.Config{Schedule: cfg.Schedule()})
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(cfg.Scheme + " topology"))
	printCurves(result.Channels)

	if pngFile != "" {
		if err := savePNG(pngFile, cfg.Scheme+" topology", result.Lambdas, result.Channels); err != nil {
			return err
		}
		logger.Infof("saved %s", pngFile)
	}
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	_, channels, err := st.LoadChannels(runID)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(meta.ID))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("scheme:"), meta.Scheme)
	fmt.Printf("%s %s (limit %.1f, waters %v)\n", viz.MetricLabel.Render("input: "), meta.Input, meta.Limit, meta.ShowWaters)
	fmt.Printf("%s %d of %d\n", viz.MetricLabel.Render("frames:"), meta.Frames, meta.Samples)
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("output:"), filepath.Join(meta.OutputDir, meta.Prefix+"*.pov"))
	if meta.Archive != "" {
		records, err := store.ReadArchive(meta.Archive)
		if err != nil {
			logger.Warnf("trajectory %s: %v", meta.Archive, err)
		} else {
			fmt.Printf("%s %s (%d frames)\n", viz.MetricLabel.Render("trajectory:"), meta.Archive, len(records))
		}
	}
	fmt.Println()

	printCurves(channels)
	return nil
}

func sortedChannels(channels map[string][]float64) []string {
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printCurves(channels map[string][]float64) {
	for _, name := range sortedChannels(channels) {
		data := channels[name]
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func savePNG(path, title string, lambdas []float64, channels map[string][]float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "lambda"
	p.Y.Label.Text = "value"
	p.Add(plotter.NewGrid())

	for i, name := range sortedChannels(channels) {
		data := channels[name]
		pts := make(plotter.XYs, len(data))
		for j, v := range data {
			pts[j].X = lambdas[j]
			pts[j].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
