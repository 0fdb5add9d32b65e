package utils

import (
	"fmt"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

type LineChart struct {
	Chart    *chart2d.Chart2D
	ColorMap *utils2.ColorMap
}

func NewLineChart(width, height int, xmin, xmax, fmin, fmax float64) (lc *LineChart) {
	lc = &LineChart{
		Chart:    chart2d.NewChart2D(width, height, float32(xmin), float32(xmax), float32(fmin), float32(fmax)),
		ColorMap: utils2.NewColorMap(-1, 1, 1),
	}
	go lc.Chart.Plot()
	return
}

func (lc *LineChart) Plot(graphDelay time.Duration, x, f []float64, lineColor float64, lineName string) (err error) {
	/*
		lineColor goes from -1 (red) to 1 (blue)
	*/
	if err = lc.Chart.AddSeries(lineName, x, f,
		chart2d.NoGlyph, chart2d.Solid, lc.ColorMap.GetRGB(float32(lineColor))); err != nil {
		return fmt.Errorf("unable to add graph series %s: %w", lineName, err)
	}
	time.Sleep(graphDelay)
	return
}

// SeriesColor spreads series i of n evenly over the colour map
func SeriesColor(i, n int) float64 {
	if n < 2 {
		return -1
	}
	return -1 + 2*float64(i)/float64(n-1)
}
