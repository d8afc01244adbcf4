package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/solowirf/internal/dynamo"
)

// PhasePoint is one sample of a phase diagram.
type PhasePoint struct {
	K, DK float64
}

// PhaseDiagram holds dk/dt sampled over a range of k.
type PhaseDiagram struct {
	Points []PhasePoint
}

// GeneratePhaseDiagram samples the law of motion of a one-dimensional
// system at n evenly spaced values of k in [kMin, kMax].
func GeneratePhaseDiagram(sys dynamo.System, kMin, kMax float64, n int) (*PhaseDiagram, error) {
	if sys.StateDim() != 1 {
		return nil, fmt.Errorf("%w: phase diagram needs a 1-D system, got %d", dynamo.ErrDimensionMismatch, sys.StateDim())
	}
	if n < 2 || !(kMax > kMin) {
		return nil, fmt.Errorf("phase diagram: need n >= 2 and kMax > kMin, got n=%d [%g, %g]", n, kMin, kMax)
	}

	d := &PhaseDiagram{Points: make([]PhasePoint, n)}
	step := (kMax - kMin) / float64(n-1)
	for i := range d.Points {
		k := kMin + float64(i)*step
		d.Points[i] = PhasePoint{K: k, DK: sys.Derive(dynamo.State{k}, 0)[0]}
	}
	return d, nil
}

// Crossings returns the values of k where dk/dt changes sign, linearly
// interpolated. For a Solow economy these are the steady states.
func (d *PhaseDiagram) Crossings() []float64 {
	var out []float64
	for i := 1; i < len(d.Points); i++ {
		a, b := d.Points[i-1], d.Points[i]
		switch {
		case a.DK == 0:
			out = append(out, a.K)
		case a.DK*b.DK < 0:
			out = append(out, a.K+(b.K-a.K)*a.DK/(a.DK-b.DK))
		}
	}
	return out
}

// ASCII renders the diagram on a width x height character grid with the
// dk/dt = 0 axis drawn where it is visible.
func (d *PhaseDiagram) ASCII(width, height int) string {
	if d == nil || len(d.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := d.Points[0].K, d.Points[0].K
	minY, maxY := d.Points[0].DK, d.Points[0].DK
	for _, p := range d.Points {
		minX, maxX = min(minX, p.K), max(maxX, p.K)
		minY, maxY = min(minY, p.DK), max(maxY, p.DK)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := range canvas[row] {
			canvas[row][col] = '─'
		}
	}

	for _, p := range d.Points {
		col := int((p.K - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.DK-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
