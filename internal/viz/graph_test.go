package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/waveprop/internal/field"
)

func joinedResult(t *testing.T) *field.Field {
	t.Helper()
	x := field.NewDimension("x", field.Linspace(0, 1, 4))
	p := field.NewPropagationDimension("t")

	a, _ := field.FromReal([]float64{0, 1, 0, -1}, []int{4})
	b, _ := field.FromReal([]float64{1, 0, -1, 0}, []int{4})
	fa, _ := field.NewField("F", a, x)
	fb, _ := field.NewField("F", b, x)

	joined, err := field.JoinFields([]*field.Field{fa, fb}, p, []float64{0, 0.5}, fa)
	if err != nil {
		t.Fatal(err)
	}
	return joined
}

func TestPlotField(t *testing.T) {
	x := field.NewDimension("x", field.Linspace(0, 1, 8))
	arr, _ := field.FromReal([]float64{0, 1, 2, 3, 3, 2, 1, 0}, []int{8})
	f, _ := field.NewField("F", arr, x)

	out, err := PlotField(f, "profile")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "profile") {
		t.Error("expected the caption in the rendered graph")
	}

	scalar, _ := field.AsField(1.0, nil)
	if _, err := PlotField(scalar, "nope"); err == nil {
		t.Error("expected error for a non rank-1 field")
	}
}

func TestPlotRow(t *testing.T) {
	joined := joinedResult(t)

	out, err := PlotRow(joined, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "t = 0.500") {
		t.Errorf("expected the axis coordinate in the caption, got %q", out)
	}

	if _, err := PlotRow(joined, 5); err == nil {
		t.Error("expected error for an index off the axis")
	}
}

func TestFramesFromResult(t *testing.T) {
	frames, err := FramesFromResult(joinedResult(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1].P != 0.5 {
		t.Errorf("expected second frame at 0.5, got %f", frames[1].P)
	}
	if frames[0].Values[1] != 1 {
		t.Errorf("expected first frame values from the first row, got %v", frames[0].Values)
	}
}
