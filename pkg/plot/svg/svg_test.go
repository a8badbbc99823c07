package svg

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/strata/pkg/plot"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

func sampleDrawing() *plot.Drawing {
	d := plot.NewDrawing(2)
	even := d.AddLayer("even", plot.Color{R: 0x70, G: 0x80, B: 0x90})
	even.Filled = true
	even.Polygons = append(even.Polygons, []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}})
	edges := d.AddLayer("edges", plot.Color{})
	edges.Lines = append(edges.Lines, plot.Line{From: v2.Vec{X: 0, Y: 2}, To: v2.Vec{X: 2, Y: 0}})
	pts := d.AddLayer("intersections", plot.Color{R: 0xff, G: 0xd7})
	pts.Markers = append(pts.Markers, v2.Vec{X: 1, Y: 1})
	return d
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Encode(&buf, sampleDrawing()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"<svg", "</svg>", `id="even"`, "fill:#708090", "<polygon", "<line", "<circle", "#ffd700"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPointFlipsY(t *testing.T) {
	b := &SVGBackend{Scale: 10, Margin: 5}
	d := plot.NewDrawing(4)

	tests := []struct {
		p      v2.Vec
		wx, wy int
	}{
		{v2.Vec{X: 0, Y: 0}, 5, 45},
		{v2.Vec{X: 4, Y: 4}, 45, 5},
		{v2.Vec{X: 1.25, Y: 0.75}, 18, 38},
	}
	for _, tt := range tests {
		x, y := b.point(d, tt.p)
		if x != tt.wx || y != tt.wy {
			t.Errorf("point(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}

func TestRenderWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.svg")
	if err := New().Render(sampleDrawing(), path); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("output is not SVG")
	}
}

func TestEncodeNilDrawing(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Encode(&buf, nil); err == nil {
		t.Fatal("expected an error for a nil drawing")
	}
}
