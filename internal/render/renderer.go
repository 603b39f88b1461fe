package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/cyraxred/contribviolin/internal/core"
	"github.com/cyraxred/contribviolin/internal/smooth"
	"github.com/cyraxred/contribviolin/internal/table"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// Width of the figure.
	Width = 5 * vg.Inch
	// Height of the figure.
	Height = 3 * vg.Inch
	// DPI is the resolution of the PNG.
	DPI = 300

	// BodyWidth is the maximal width of a violin in weekday units.
	BodyWidth = 0.5
	// BandwidthFactor is the ratio of the kernel width to the sample standard deviation.
	BandwidthFactor = 0.4
	// DensityPoints is the number of points of each violin outline.
	DensityPoints = 100
	// CurvePoints is the number of samples of the smoothed mean curve.
	CurvePoints = 100

	// SmoothingWindow is the Savitzky-Golay window applied to the means.
	SmoothingWindow = 3
	// SmoothingOrder is the Savitzky-Golay polynomial order applied to the means.
	SmoothingOrder = 2

	// YLabel is the label of the vertical axis.
	YLabel = "contributions"
	// TitleFormat is formatted with the username.
	TitleFormat = "Contributions per day of week (%s)"
)

var (
	// Ramp is the light-to-dark fill of the violins, indexed by the class of the bucket mean.
	Ramp = [...]color.Color{
		color.NRGBA{R: 0xac, G: 0xe7, B: 0xae, A: 0xff},
		color.NRGBA{R: 0x69, G: 0xc1, B: 0x6e, A: 0xff},
		color.NRGBA{R: 0x53, G: 0x9f, B: 0x57, A: 0xff},
		color.NRGBA{R: 0x38, G: 0x6c, B: 0x3e, A: 0xff},
	}
	// Background is the color of the data area.
	Background = color.NRGBA{R: 0xeb, G: 0xed, B: 0xf0, A: 0xff}

	pointFill   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}
	pointEdge   = color.NRGBA{A: 0x40}
	meanFill    = color.NRGBA{R: 0xa9, G: 0xa9, B: 0xa9, A: 0x80}
	meanEdge    = color.NRGBA{A: 0x80}
	curveColor  = color.NRGBA{A: 0xbf}
	frameBorder = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

	textFont = font.Font{Typeface: plot.DefaultFont.Typeface, Variant: "Sans"}
)

// Options tweak the figure.
type Options struct {
	// ShowPoints overlays the individual daily counts.
	ShowPoints bool
}

// ViolinRenderer draws the day-of-week violins with gonum/plot.
type ViolinRenderer struct {
	Options
	l core.Logger
}

// NewViolinRenderer creates the renderer with the raw points enabled.
func NewViolinRenderer(l core.Logger) *ViolinRenderer {
	return &ViolinRenderer{Options: Options{ShowPoints: true}, l: l}
}

// Render draws the figure and writes it as PNG.
func (r *ViolinRenderer) Render(username string, summary *table.Summary, w io.Writer) error {
	p, err := r.Plot(username, summary)
	if err != nil {
		return err
	}
	c := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI))
	dc := draw.New(c)
	p.Draw(dc)
	if summary.Days > 0 {
		drawTimeframe(dc, summary.Start, summary.End)
	}
	_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return errors.Wrap(err, "failed to encode PNG")
}

// Plot composes the layers of the figure.
func (r *ViolinRenderer) Plot(username string, summary *table.Summary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf(TitleFormat, username)
	p.Title.TextStyle.Font = font.From(textFont, vg.Points(9))
	p.Title.Padding = vg.Points(4)
	p.Y.Label.Text = YLabel
	p.Y.Label.TextStyle.Font = font.From(textFont, vg.Points(8))

	step := TickStep(summary.MaxCount)
	p.Add(Backdrop{Color: Background})
	p.Add(Mask{Below: 0, Color: color.White})
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal = draw.LineStyle{Color: color.White, Width: vg.Points(2)}
	p.Add(grid)

	for day, bucket := range summary.Buckets {
		if len(bucket) == 0 {
			continue
		}
		violin := NewViolin(float64(day+1), table.Floats(bucket))
		violin.FillColor = ClassColor(summary.Means[day], summary.Means)
		p.Add(violin)
	}
	if r.ShowPoints {
		if err := addPoints(p, summary); err != nil {
			return nil, err
		}
	}
	if err := r.addMeans(p, summary); err != nil {
		return nil, err
	}
	styleAxes(p, summary.MaxCount, step)
	return p, nil
}

// TickStep is the distance between the horizontal grid lines.
func TickStep(maxCount int) int {
	step := maxCount / 5
	if step < 1 {
		step = 1
	}
	return step
}

// YTicks returns 0, step, 2*step, ... below maxCount.
func YTicks(maxCount, step int) []plot.Tick {
	var ticks []plot.Tick
	for value := 0; value < maxCount; value += step {
		ticks = append(ticks, plot.Tick{Value: float64(value), Label: strconv.Itoa(value)})
	}
	return ticks
}

// ClassColor picks the ramp color of the first of the linearly spaced classes over
// the defined means which is not less than mean.
func ClassColor(mean float64, means [table.Weekdays]float64) color.Color {
	var defined []float64
	for _, m := range means {
		if !math.IsNaN(m) {
			defined = append(defined, m)
		}
	}
	if len(defined) == 0 || math.IsNaN(mean) {
		return Ramp[0]
	}
	classes := smooth.Linspace(floats.Min(defined), floats.Max(defined), len(Ramp))
	for i, class := range classes {
		if mean <= class {
			return Ramp[i]
		}
	}
	return Ramp[len(Ramp)-1]
}

func styleAxes(p *plot.Plot, maxCount, step int) {
	xticks := make([]plot.Tick, table.Weekdays)
	for day, name := range table.WeekdayNames {
		xticks[day] = plot.Tick{Value: float64(day + 1), Label: name}
	}
	p.X.Min, p.X.Max = 0.5, float64(table.Weekdays)+0.5
	p.Y.Min, p.Y.Max = -float64(step)/4, float64(maxCount+step/2)
	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	p.Y.Tick.Marker = plot.ConstantTicks(YTicks(maxCount, step))
	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Width = 0
		axis.Padding = 0
		axis.Tick.Width = 0
		axis.Tick.Length = 0
		axis.Tick.Label.Font = font.From(textFont, vg.Points(7))
	}
}

func addPoints(p *plot.Plot, summary *table.Summary) error {
	var xys plotter.XYs
	for day, bucket := range summary.Buckets {
		for _, count := range bucket {
			xys = append(xys, plotter.XY{X: float64(day + 1), Y: float64(count)})
		}
	}
	if len(xys) == 0 {
		return nil
	}
	return addCircles(p, xys, vg.Points(1.1), pointFill, pointEdge)
}

func (r *ViolinRenderer) addMeans(p *plot.Plot, summary *table.Summary) error {
	var xs, ys []float64
	for day, mean := range summary.Means {
		if math.IsNaN(mean) {
			continue
		}
		xs = append(xs, float64(day+1))
		ys = append(ys, mean)
	}
	if len(xs) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	if err := addCircles(p, xys, vg.Points(2.5), meanFill, meanEdge); err != nil {
		return err
	}
	smoothed := ys
	if len(ys) >= SmoothingWindow {
		var err error
		if smoothed, err = smooth.SavGol(ys, SmoothingWindow, SmoothingOrder); err != nil {
			return errors.Wrap(err, "failed to smooth the means")
		}
	}
	cx, cy, err := smooth.Curve(xs, smoothed, CurvePoints)
	if err != nil {
		if r.l != nil {
			r.l.Warnf("the mean curve is not drawn: %v", err)
		}
		return nil
	}
	curve := make(plotter.XYs, len(cx))
	for i := range cx {
		curve[i] = plotter.XY{X: cx[i], Y: cy[i]}
	}
	line, err := plotter.NewLine(curve)
	if err != nil {
		return errors.Wrap(err, "mean curve")
	}
	line.LineStyle = draw.LineStyle{
		Color:  curveColor,
		Width:  vg.Points(1),
		Dashes: []vg.Length{vg.Points(3.7), vg.Points(1.6)},
	}
	p.Add(line)
	return nil
}

func addCircles(p *plot.Plot, xys plotter.XYs, radius vg.Length, fill, edge color.Color) error {
	body, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Wrap(err, "scatter")
	}
	body.GlyphStyle = draw.GlyphStyle{Color: fill, Radius: radius, Shape: draw.CircleGlyph{}}
	ring, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Wrap(err, "scatter")
	}
	ring.GlyphStyle = draw.GlyphStyle{Color: edge, Radius: radius, Shape: draw.RingGlyph{}}
	p.Add(body, ring)
	return nil
}

// drawTimeframe puts the first and the last date into a rounded box in the bottom left corner.
func drawTimeframe(c draw.Canvas, start, end time.Time) {
	txt := start.Format(table.DateFormat) + "\n" + end.Format(table.DateFormat)
	sty := draw.TextStyle{
		Color:   color.White,
		Font:    font.From(textFont, vg.Points(6)),
		XAlign:  draw.XLeft,
		YAlign:  draw.YBottom,
		Handler: plot.DefaultTextHandler,
	}
	pad := vg.Points(1.2)
	origin := vg.Point{
		X: c.Min.X + (c.Max.X-c.Min.X)*0.01,
		Y: c.Min.Y + (c.Max.Y-c.Min.Y)*0.01,
	}
	box := vg.Rectangle{
		Min: origin,
		Max: vg.Point{
			X: origin.X + sty.Width(txt) + 2*pad,
			Y: origin.Y + sty.Height(txt) + 2*pad,
		},
	}
	path := roundedRect(box, pad)
	c.SetColor(color.Black)
	c.Fill(path)
	c.SetLineStyle(draw.LineStyle{Color: frameBorder, Width: vg.Points(0.5)})
	c.Stroke(path)
	c.FillText(sty, vg.Point{X: origin.X + pad, Y: origin.Y + pad}, txt)
}

func roundedRect(r vg.Rectangle, radius vg.Length) vg.Path {
	var p vg.Path
	p.Move(vg.Point{X: r.Min.X + radius, Y: r.Min.Y})
	p.Line(vg.Point{X: r.Max.X - radius, Y: r.Min.Y})
	p.Arc(vg.Point{X: r.Max.X - radius, Y: r.Min.Y + radius}, radius, -math.Pi/2, math.Pi/2)
	p.Line(vg.Point{X: r.Max.X, Y: r.Max.Y - radius})
	p.Arc(vg.Point{X: r.Max.X - radius, Y: r.Max.Y - radius}, radius, 0, math.Pi/2)
	p.Line(vg.Point{X: r.Min.X + radius, Y: r.Max.Y})
	p.Arc(vg.Point{X: r.Min.X + radius, Y: r.Max.Y - radius}, radius, math.Pi/2, math.Pi/2)
	p.Line(vg.Point{X: r.Min.X, Y: r.Min.Y + radius})
	p.Arc(vg.Point{X: r.Min.X + radius, Y: r.Min.Y + radius}, radius, math.Pi, math.Pi/2)
	p.Close()
	return p
}
