// Package viz renders fields and sampler traces as terminal graphs.
package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/waveprop/internal/field"
)

const (
	graphWidth  = 72
	graphHeight = 14
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// PlotField graphs the real part of a rank-1 field over its grid.
func PlotField(f *field.Field, caption string) (string, error) {
	if len(f.Dims) != 1 {
		return "", fmt.Errorf("viz: can only plot rank-1 fields, got rank %d", len(f.Dims))
	}
	return plot(f.Data.Real(), caption), nil
}

// PlotTrace graphs one scalar sampler trace against its propagation
// coordinates. The joined result of a scalar sampler is rank-1 with the
// propagation axis leading, so it plots directly.
func PlotTrace(result *field.Field, key string) (string, error) {
	if len(result.Dims) < 1 {
		return "", fmt.Errorf("viz: result for %q has no propagation axis", key)
	}
	axis := result.Dims[0]
	n := axis.Size()
	inner := result.Data.Size() / n
	series := make([]float64, n)
	for i := 0; i < n; i++ {
		series[i] = real(result.Data.Data[i*inner])
	}
	caption := fmt.Sprintf("%s over %s", key, axis.Name)
	return plot(series, caption), nil
}

// PlotRow graphs one transverse slice of a joined result field at the
// given propagation index.
func PlotRow(result *field.Field, idx int) (string, error) {
	if len(result.Dims) != 2 {
		return "", fmt.Errorf("viz: need a joined rank-2 result, got rank %d", len(result.Dims))
	}
	axis := result.Dims[0]
	if idx < 0 || idx >= axis.Size() {
		return "", fmt.Errorf("viz: index %d outside axis of size %d", idx, axis.Size())
	}
	inner := result.Dims[1].Size()
	row := make([]float64, inner)
	for j := 0; j < inner; j++ {
		row[j] = real(result.Data.Data[idx*inner+j])
	}
	caption := fmt.Sprintf("%s = %.3f", axis.Name, axis.Grid[idx])
	return plot(row, caption), nil
}

func plot(series []float64, caption string) string {
	graph := asciigraph.Plot(series,
		asciigraph.Width(graphWidth),
		asciigraph.Height(graphHeight),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(graph)
}
