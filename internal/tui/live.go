// Package tui renders a live monitoring view of a running simulation: the
// real-space vorticity field, the E(k=1) convergence trace and the current
// step statistics.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/activeflow/internal/config"
	"github.com/san-kum/activeflow/internal/sim"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const (
	fieldWidth  = 64
	fieldHeight = 22
	fieldChars  = " .:-=+*#%@"
	historyCap  = 120
)

type update struct {
	rec   sim.MonitorRecord
	field [][]float64
}

type doneMsg struct{ err error }

// chanObserver forwards monitor records to the view. The send never blocks:
// if the view is behind, the record is dropped rather than stalling the
// stepping loop.
type chanObserver struct {
	ch chan update
}

func (o *chanObserver) OnMonitor(rec sim.MonitorRecord, vorticity [][]float64) {
	select {
	case o.ch <- update{rec: rec, field: vorticity}:
	default:
	}
}

type model struct {
	scheme  string
	points  int
	ch      chan update
	cancel  context.CancelFunc
	rec     sim.MonitorRecord
	field   [][]float64
	history []float64
	done    bool
	err     error
}

func newModel(cfg *config.Config, ch chan update, cancel context.CancelFunc) model {
	return model{
		scheme:  cfg.Scheme,
		points:  cfg.Points,
		ch:      ch,
		cancel:  cancel,
		history: make([]float64, 0, historyCap),
	}
}

func (m model) waitForUpdate() tea.Cmd {
	return func() tea.Msg { return <-m.ch }
}

func (m model) Init() tea.Cmd { return m.waitForUpdate() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case update:
		m.rec = msg.rec
		m.field = msg.field
		m.history = append(m.history, msg.rec.EnergyK1)
		if len(m.history) > historyCap {
			m.history = m.history[1:]
		}
		return m, m.waitForUpdate()
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render(fmt.Sprintf("activeflow  %s  %dx%d", m.scheme, m.points, m.points)))
	b.WriteString("\n\n")

	b.WriteString(renderField(m.field))
	b.WriteString("\n")

	if len(m.history) > 1 {
		b.WriteString(asciigraph.Plot(m.history,
			asciigraph.Height(7),
			asciigraph.Width(fieldWidth),
			asciigraph.Caption("E(k=1)"),
		))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s\n",
		dim.Render("iter"), white.Render(fmt.Sprintf("%07d", m.rec.Iteration)),
		dim.Render("t"), white.Render(fmt.Sprintf("%.4f", m.rec.Time)),
		dim.Render("tau"), yellow.Render(fmt.Sprintf("%.6f", m.rec.Tau)),
		dim.Render("U_max"), yellow.Render(fmt.Sprintf("%.4f", m.rec.MaxSpeed)),
	))

	if m.done {
		if m.err != nil {
			b.WriteString(yellow.Render(fmt.Sprintf("stopped: %v", m.err)))
		} else {
			b.WriteString(green.Render("run complete"))
		}
		b.WriteString(dim.Render("  press q to exit"))
	} else {
		b.WriteString(dim.Render("q: quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// renderField downsamples the vorticity field onto a character raster,
// mapping amplitude to glyph density.
func renderField(field [][]float64) string {
	if len(field) == 0 {
		return dim.Render("waiting for first monitor record...") + "\n"
	}

	lo, hi := field[0][0], field[0][0]
	for i := range field {
		for j := range field[i] {
			lo = math.Min(lo, field[i][j])
			hi = math.Max(hi, field[i][j])
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	n := len(field)
	glyphs := []rune(fieldChars)
	var b strings.Builder
	for y := 0; y < fieldHeight; y++ {
		for x := 0; x < fieldWidth; x++ {
			i := y * n / fieldHeight
			j := x * n / fieldWidth
			level := (field[i][j] - lo) / span
			idx := int(level * float64(len(glyphs)-1))
			b.WriteRune(glyphs[idx])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RunLive runs the configured simulation in the background and displays the
// live view until the run finishes or the user quits.
func RunLive(cfg *config.Config) error {
	exp, err := sim.NewExperiment(cfg)
	if err != nil {
		return err
	}

	ch := make(chan update, 8)
	exp.Driver.AddObserver(&chanObserver{ch: ch})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(newModel(cfg, ch, cancel))

	go func() {
		_, runErr := exp.Run(ctx)
		p.Send(doneMsg{err: runErr})
	}()

	_, err = p.Run()
	return err
}
