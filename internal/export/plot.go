package export

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sonic-skyline/horizon-finder/internal/horizon"
)

// GraphSize is the saved plot size.
const (
	graphWidth  = 10 * vg.Inch
	graphHeight = 5 * vg.Inch
)

// Graph builds an XY plot of height versus column for one sequence. Runs of
// Missing columns break the polyline into separate segments so the graph
// never draws through undetected regions. frameHeight fixes the Y axis to the
// frame's pixel range.
func Graph(seq horizon.Sequence, frameHeight int, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Height (px from bottom)"
	p.X.Min, p.X.Max = 0, float64(seq.Width())
	p.Y.Min, p.Y.Max = 0, float64(frameHeight)

	if err := addSequenceLines(p, seq, nil); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveGraph renders one sequence to a PNG (or any extension gonum/plot
// understands) at path.
func SaveGraph(path string, seq horizon.Sequence, frameHeight int, title string) error {
	p, err := Graph(seq, frameHeight, title)
	if err != nil {
		return err
	}
	if err := p.Save(graphWidth, graphHeight, path); err != nil {
		return fmt.Errorf("save graph: %w", err)
	}
	return nil
}

// SaveSeriesGraph overlays every frame's sequence on one plot, one color per
// frame.
func SaveSeriesGraph(path string, frames []horizon.Sequence, frameHeight int, title string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Height (px from bottom)"
	p.Y.Min, p.Y.Max = 0, float64(frameHeight)

	for i, seq := range frames {
		if seq.Width() > 0 && float64(seq.Width()) > p.X.Max {
			p.X.Max = float64(seq.Width())
		}
		hue := 360 * float64(i) / float64(len(frames))
		lineColor := colorful.Hsl(hue, 0.7, 0.5)
		if err := addSequenceLines(p, seq, &lineColor); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	if err := p.Save(graphWidth, graphHeight, path); err != nil {
		return fmt.Errorf("save series graph: %w", err)
	}
	return nil
}

// addSequenceLines adds one plotter.Line per contiguous accepted segment.
// A nil color keeps the plotter default.
func addSequenceLines(p *plot.Plot, seq horizon.Sequence, lineColor *colorful.Color) error {
	pts := make(plotter.XYs, 0, seq.Width())
	flush := func() error {
		if len(pts) == 0 {
			return nil
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot line: %w", err)
		}
		line.Width = vg.Points(1.5)
		if lineColor != nil {
			line.Color = *lineColor
		}
		p.Add(line)
		pts = make(plotter.XYs, 0, seq.Width())
		return nil
	}

	for c, h := range seq {
		if h == horizon.Missing {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		pts = append(pts, plotter.XY{X: float64(c), Y: float64(h)})
	}
	return flush()
}
