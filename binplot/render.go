package binplot

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/notargets/foampost/geomimage"
	"github.com/notargets/foampost/types"
	"github.com/notargets/foampost/utils"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// FileName is the development plot name for a set of trials, e.g.
// cd-development_001_002.png
func FileName(coeff types.Coefficient, names []string) string {
	return fmt.Sprintf("%s-development_%s.png", coeff, strings.Join(names, "_"))
}

func Names(trials []*Trial) (names []string) {
	names = make([]string, len(trials))
	for i, tr := range trials {
		names[i] = tr.Name
	}
	return
}

// NewPlot builds the development comparison of coeff. Each geometry image in
// overlays, keyed by trial name, spans the x range of its trial and starts at
// the lowest coefficient of all trials, keeping its aspect ratio.
func NewPlot(trials []*Trial, coeff types.Coefficient, overlays map[string]image.Image) (p *plot.Plot, err error) {
	if len(trials) == 0 {
		return nil, fmt.Errorf("no trials to plot")
	}
	b := NewBounds(trials)
	p = plot.New()
	p.Title.Text = coeff.Title() + " Development"
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = coeff.Title()
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	for _, tr := range trials {
		roi, ok := overlays[tr.Name]
		if !ok || roi == nil {
			continue
		}
		xmin, xmax := floats.Min(tr.X), floats.Max(tr.X)
		ymin := b.Min[coeff]
		p.Add(plotter.NewImage(roi, xmin, ymin, xmax, ymin+(xmax-xmin)*geomimage.Aspect(roi)))
	}
	for i, tr := range trials {
		var l *plotter.Line
		if l, err = plotter.NewLine(xys(tr.X, tr.Values(coeff))); err != nil {
			return nil, fmt.Errorf("trial %s: %w", tr.Name, err)
		}
		l.LineStyle.Color = plotutil.Color(i)
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(tr.Name, l)
	}
	p.X.Min, p.X.Max = b.XMin, b.XMax
	return
}

// Render writes the development plot of coeff as a PNG at the given DPI.
func Render(trials []*Trial, coeff types.Coefficient, overlays map[string]image.Image,
	path string, dpi float64) (err error) {
	var (
		p    *plot.Plot
		file *os.File
	)
	if p, err = NewPlot(trials, coeff, overlays); err != nil {
		return
	}
	c := vgimg.NewWith(vgimg.UseWH(plotWidth, plotHeight), vgimg.UseDPI(int(dpi)))
	p.Draw(draw.New(c))
	if file, err = os.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err = (vgimg.PngCanvas{Canvas: c}).WriteTo(file); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return
}

// Show opens an interactive chart of coeff for all trials.
func Show(trials []*Trial, coeff types.Coefficient) (lc *utils.LineChart, err error) {
	if len(trials) == 0 {
		return nil, fmt.Errorf("no trials to plot")
	}
	b := NewBounds(trials)
	lc = utils.NewLineChart(1920, 1280, b.XMin, b.XMax, b.Min[coeff], b.Max[coeff])
	for i, tr := range trials {
		if err = lc.Plot(time.Duration(0), tr.X, tr.Values(coeff),
			utils.SeriesColor(i, len(trials)), tr.Name); err != nil {
			return
		}
	}
	return
}

func xys(x, f []float64) (pts plotter.XYs) {
	pts = make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], f[i]
	}
	return
}

// LoadOverlays reads the geometry image of every trial. Trials without an
// image, or whose image has no detectable geometry, are skipped.
func LoadOverlays(root string, trials []*Trial, logger *slog.Logger) (overlays map[string]image.Image) {
	overlays = make(map[string]image.Image, len(trials))
	for _, tr := range trials {
		path := geomimage.ImagePath(root, tr.Name)
		if _, err := os.Stat(path); err != nil {
			logger.Info("cannot find geometry image, skipping for this trial", "trial", tr.Name, "path", path)
			continue
		}
		roi, err := geomimage.LoadROI(path)
		if err != nil {
			logger.Warn("unable to use geometry image", "trial", tr.Name, "error", err)
			continue
		}
		overlays[tr.Name] = roi
	}
	return
}
