package render

import (
	"image/color"
	"math"

	"github.com/cyraxred/contribviolin/internal/smooth"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Violin draws the kernel density of a single sample mirrored around X.
type Violin struct {
	// X is the horizontal position of the body axis.
	X float64
	// Values are the samples, they do not need to be sorted.
	Values []float64
	// Width is the maximal width of the body in data units.
	Width float64
	// Points is the number of density evaluations between the smallest and the largest value.
	Points int
	// BandwidthFactor scales the sample standard deviation into the kernel width.
	BandwidthFactor float64

	// FillColor is the color of the body. Nil disables the filling.
	FillColor color.Color
	// LineStyle is the style of the outline.
	draw.LineStyle
}

// NewViolin creates the body with the default look.
func NewViolin(x float64, values []float64) *Violin {
	return &Violin{
		X:               x,
		Values:          values,
		Width:           BodyWidth,
		Points:          DensityPoints,
		BandwidthFactor: BandwidthFactor,
		FillColor:       Ramp[0],
		LineStyle: draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(1),
		},
	}
}

// Outline returns the Y coordinates of the body and the half-widths at each of them.
// A sample without spread produces a single flat segment.
func (v *Violin) Outline() (ys []float64, halfWidths []float64) {
	if len(v.Values) == 0 {
		return nil, nil
	}
	lo, hi := floats.Min(v.Values), floats.Max(v.Values)
	kde := smooth.NewKDE(v.Values, v.BandwidthFactor)
	if kde == nil {
		return []float64{lo}, []float64{v.Width / 2}
	}
	ys = smooth.Linspace(lo, hi, v.Points)
	density := kde.Evaluate(ys)
	peak := floats.Max(density)
	halfWidths = make([]float64, len(density))
	for i, d := range density {
		halfWidths[i] = v.Width / 2 * d / peak
	}
	return ys, halfWidths
}

// Plot implements the plot.Plotter interface.
func (v *Violin) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	ys, halfWidths := v.Outline()
	if len(ys) == 0 {
		return
	}
	poly := make([]vg.Point, 0, 2*len(ys))
	for i, y := range ys {
		poly = append(poly, vg.Point{X: trX(v.X + halfWidths[i]), Y: trY(y)})
	}
	for i := len(ys) - 1; i >= 0; i-- {
		poly = append(poly, vg.Point{X: trX(v.X - halfWidths[i]), Y: trY(ys[i])})
	}
	if v.FillColor != nil && len(ys) > 1 {
		c.FillPolygon(v.FillColor, c.ClipPolygonXY(poly))
	}
	outline := append(poly, poly[0])
	c.StrokeLines(v.LineStyle, c.ClipLinesXY(outline)...)
}

// DataRange implements the plot.DataRanger interface.
func (v *Violin) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(v.Values) == 0 {
		return math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	}
	return v.X - v.Width/2, v.X + v.Width/2, floats.Min(v.Values), floats.Max(v.Values)
}

// Backdrop fills the whole data area.
type Backdrop struct {
	Color color.Color
}

// Plot implements the plot.Plotter interface.
func (b Backdrop) Plot(c draw.Canvas, _ *plot.Plot) {
	c.FillPolygon(b.Color, []vg.Point{
		c.Min, {X: c.Max.X, Y: c.Min.Y}, c.Max, {X: c.Min.X, Y: c.Max.Y},
	})
}

// Mask hides the data area below Below.
type Mask struct {
	Below float64
	Color color.Color
}

// Plot implements the plot.Plotter interface.
func (m Mask) Plot(c draw.Canvas, plt *plot.Plot) {
	_, trY := plt.Transforms(&c)
	top := trY(m.Below)
	if top <= c.Min.Y {
		return
	}
	if top > c.Max.Y {
		top = c.Max.Y
	}
	c.FillPolygon(m.Color, []vg.Point{
		c.Min, {X: c.Max.X, Y: c.Min.Y}, {X: c.Max.X, Y: top}, {X: c.Min.X, Y: top},
	})
}
