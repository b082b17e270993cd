package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/waveprop/internal/field"
)

type TickMsg time.Time

// Frame is one sampled field snapshot at a propagation coordinate.
type Frame struct {
	P      float64
	Values []float64
}

// FramesFromResult converts a joined rank-2 result field into playback
// frames, one per sampled propagation coordinate.
func FramesFromResult(result *field.Field) ([]Frame, error) {
	if len(result.Dims) != 2 {
		return nil, fmt.Errorf("viz: need a joined rank-2 result, got rank %d", len(result.Dims))
	}
	axis := result.Dims[0]
	inner := result.Dims[1].Size()
	frames := make([]Frame, axis.Size())
	for i := range frames {
		values := make([]float64, inner)
		for j := 0; j < inner; j++ {
			values[j] = real(result.Data.Data[i*inner+j])
		}
		frames[i] = Frame{P: axis.Grid[i], Values: values}
	}
	return frames, nil
}

// Model plays sampled field snapshots back as an animated graph.
type Model struct {
	scenario string
	axisName string
	frames   []Frame
	idx      int
	playing  bool
	showHelp bool
}

func NewModel(scenario, axisName string, frames []Frame) Model {
	return Model{
		scenario: scenario,
		axisName: axisName,
		frames:   frames,
		playing:  true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "left", "h", "[":
			m.playing = false
			m.idx = (m.idx + len(m.frames) - 1) % len(m.frames)
		case "right", "l", "]":
			m.playing = false
			m.idx = (m.idx + 1) % len(m.frames)
		case "r":
			m.idx = 0
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.playing && len(m.frames) > 0 {
			m.idx = (m.idx + 1) % len(m.frames)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.frames) == 0 {
		return "no frames\n"
	}
	frame := m.frames[m.idx]

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("waveprop live · %s", m.scenario)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s = %-8.3f  frame %d/%d", m.axisName, frame.P, m.idx+1, len(m.frames))))
	b.WriteString("\n")
	b.WriteString(graphStyle.Render(asciigraph.Plot(frame.Values,
		asciigraph.Width(graphWidth),
		asciigraph.Height(graphHeight),
	)))
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(helpStyle.Render("space pause · [/] scrub · r rewind · q quit"))
	} else {
		b.WriteString(helpStyle.Render("? help"))
	}
	b.WriteString("\n")
	return b.String()
}
