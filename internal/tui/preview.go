// Package tui is the terminal preview of an animation.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fepmorph/internal/anim"
	"github.com/san-kum/fepmorph/internal/morph"
	"github.com/san-kum/fepmorph/internal/scene"
	"github.com/san-kum/fepmorph/internal/viz"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// rows used by the header, progress, channels and help
	chromeRows = 10
)

type tickMsg time.Time

// Preview steps an animator through its schedule on a braille canvas.
type Preview struct {
	animator morph.Animator
	lambdas  []float64
	index    int
	paused   bool
	interval time.Duration

	cam    *viz.Camera
	canvas *viz.Canvas
	err    error

	width  int
	height int
}

// NewPreview plays the schedule at fps frames per second; fps <= 0 plays at
// 30.
func NewPreview(a morph.Animator, sched anim.Schedule, fps float64) Preview {
	if fps <= 0 {
		fps = 30
	}
	p := Preview{
		animator: a,
		lambdas:  sched.Lambdas(),
		interval: time.Duration(float64(time.Second) / fps),
		cam:      viz.NewCamera(a.Scene().View),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	p.resize()
	p.apply()
	return p
}

func (p *Preview) apply() {
	if err := p.animator.Apply(p.Lambda()); err != nil {
		p.err = err
	}
}

// Err is the Apply failure that stopped the preview, if any.
func (p Preview) Err() error { return p.err }

func (p Preview) Lambda() float64 { return p.lambdas[p.index] }

func (p *Preview) resize() {
	rows := p.height - chromeRows
	if rows < 4 {
		rows = 4
	}
	p.canvas = viz.NewCanvas(max(1, p.width-2), rows)
}

func (p Preview) tick() tea.Cmd {
	return tea.Tick(p.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (p Preview) Init() tea.Cmd {
	return p.tick()
}

func (p Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		p, cmd = p.handleKey(msg)
		p.apply()
		if p.err != nil {
			return p, tea.Quit
		}
		return p, cmd
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.resize()
		return p, nil
	case tickMsg:
		if !p.paused && p.index < len(p.lambdas)-1 {
			p.index++
		}
		if p.index == len(p.lambdas)-1 {
			p.paused = true
		}
		p.apply()
		if p.err != nil {
			return p, tea.Quit
		}
		return p, p.tick()
	}
	return p, nil
}

func (p Preview) handleKey(msg tea.KeyMsg) (Preview, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case " ":
		p.paused = !p.paused
		if !p.paused && p.index == len(p.lambdas)-1 {
			p.index = 0
		}
	case "left", "h":
		p.paused = true
		if p.index > 0 {
			p.index--
		}
	case "right", "l":
		p.paused = true
		if p.index < len(p.lambdas)-1 {
			p.index++
		}
	case "r":
		p.index = 0
		p.paused = false
	case "up", "k":
		p.cam.RotateX(-0.1)
	case "down", "j":
		p.cam.RotateX(0.1)
	case "a":
		p.cam.RotateY(-0.1)
	case "d":
		p.cam.RotateY(0.1)
	case "+", "=":
		p.cam.ZoomIn()
	case "-":
		p.cam.ZoomOut()
	}
	return p, nil
}

func (p Preview) View() string {
	if p.err != nil {
		return viz.Hidden.Render(fmt.Sprintf("error: %v", p.err)) + "\n"
	}
	lam := p.Lambda()
	p.canvas.Clear()
	viz.RenderScene(p.canvas, p.animator.Scene(), p.cam)

	var b strings.Builder
	status := viz.StatusRunning.Render("playing")
	if p.paused {
		status = viz.StatusPaused.Render("paused")
	}
	b.WriteString(viz.GradientText(p.animator.Name()+" topology", scene.Cyan, scene.Red) + "  " + status + "\n")
	b.WriteString(p.canvas.String())
	b.WriteString(fmt.Sprintf("%s %s\n", viz.MetricValue.Render(morph.LambdaText(lam)),
		viz.ProgressBar(float64(p.index)/float64(len(p.lambdas)-1), 40)))
	for _, ch := range p.animator.Channels() {
		b.WriteString(fmt.Sprintf("  %s %s\n", viz.MetricLabel.Render(fmt.Sprintf("%-18s", ch.Name)),
			viz.MetricValue.Render(fmt.Sprintf("%.3f", ch.Value))))
	}
	b.WriteString(viz.KeyHint.Render("space pause  ←/→ step  r restart  ↑/↓ a/d rotate  +/- zoom  q quit"))
	b.WriteString("\n")
	return b.String()
}
