package plot

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"pfeifer.dev/motorplan/planner"
)

var ErrNoSamples = errors.New("nothing to plot")

type Size struct {
	WidthCm  float64
	HeightCm float64
}

func linePlot(title, ylabel string, samples []planner.Sample, y func(planner.Sample) float64) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = s.T
		pts[i].Y = y(s)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrapf(err, "could not build %s line", title)
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	return p, nil
}

// Profile draws accel, speed and position over time, stacked top to bottom.
func Profile(samples []planner.Sample, initialPosition float64) ([]*gplot.Plot, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	accel, err := linePlot("Acceleration", "accel", samples, func(s planner.Sample) float64 { return s.Accel })
	if err != nil {
		return nil, err
	}
	speed, err := linePlot("Speed", "speed", samples, func(s planner.Sample) float64 { return s.Speed })
	if err != nil {
		return nil, err
	}
	position, err := linePlot("Position", "position", samples, func(s planner.Sample) float64 { return initialPosition + s.Displacement })
	if err != nil {
		return nil, err
	}
	return []*gplot.Plot{accel, speed, position}, nil
}

// WritePNG renders the profile plots into w as a single PNG.
func WritePNG(w io.Writer, samples []planner.Sample, initialPosition float64, size Size) error {
	plots, err := Profile(samples, initialPosition)
	if err != nil {
		return err
	}

	img := vgimg.New(vg.Length(size.WidthCm)*vg.Centimeter, vg.Length(size.HeightCm)*vg.Centimeter)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadY: vg.Millimeter * 4,
	}

	rows := make([][]*gplot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*gplot.Plot{p}
	}
	canvases := gplot.Align(rows, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return errors.Wrap(err, "could not write png")
	}
	return nil
}

func SavePNG(filename string, samples []planner.Sample, initialPosition float64, size Size) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errors.Wrap(err, "could not create plot directory")
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "could not create png")
	}
	return writeAndClose(f, samples, initialPosition, size)
}

func writeAndClose(wc io.WriteCloser, samples []planner.Sample, initialPosition float64, size Size) (err error) {
	defer multierr.AppendInvoke(&err, multierr.Close(wc))

	bw := bufio.NewWriter(wc)
	if err := WritePNG(bw, samples, initialPosition, size); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "could not flush png")
}
