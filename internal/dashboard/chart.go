package dashboard

import "math"

// Palette is cycled over the bars in order
var Palette = []string{"#3498db", "#2ecc71", "#e74c3c", "#f39c12", "#9b59b6"}

const ChartBackground = "#f8f9fa"

// Plot area geometry in SVG user units
const (
	chartWidth        = 720
	chartHeight       = 400
	chartMarginLeft   = 60
	chartMarginRight  = 20
	chartMarginTop    = 50
	chartMarginBottom = 60
	barGapRatio       = 0.2
	maxTicks          = 5
)

// Bar is one bar of the chart with its plot coordinates
type Bar struct {
	Label  string
	Value  int
	Color  string
	X      float64
	Y      float64
	Width  float64
	Height float64
	// LabelX is the centre of the bar, used for the axis label
	LabelX float64
}

// Tick is a y axis gridline
type Tick struct {
	Value int
	Y     float64
}

// ChartView is a bar chart ready to be drawn as SVG
type ChartView struct {
	Title      string
	XLabel     string
	YLabel     string
	Background string

	Width   int
	Height  int
	PlotX   float64
	PlotY   float64
	PlotW   float64
	PlotH   float64
	BaseY   float64
	MaxTick int

	Bars  []Bar
	Ticks []Tick
}

// RenderChart builds the top customers chart. Bars are drawn for the common prefix
// of customers and counts when their lengths differ.
func RenderChart(customers []string, counts []int) ChartView {
	n := len(customers)
	if len(counts) < n {
		n = len(counts)
	}

	view := ChartView{
		Title:      ChartTitle,
		XLabel:     ChartXLabel,
		YLabel:     ChartYLabel,
		Background: ChartBackground,
		Width:      chartWidth,
		Height:     chartHeight,
		PlotX:      chartMarginLeft,
		PlotY:      chartMarginTop,
		PlotW:      chartWidth - chartMarginLeft - chartMarginRight,
		PlotH:      chartHeight - chartMarginTop - chartMarginBottom,
	}
	view.BaseY = view.PlotY + view.PlotH

	maxValue := 0
	for i := 0; i < n; i++ {
		if counts[i] > maxValue {
			maxValue = counts[i]
		}
	}
	step := tickStep(maxValue)
	top := step * int(math.Ceil(float64(maxValue)/float64(step)))
	if top == 0 {
		top = step
	}
	view.MaxTick = top

	for v := 0; v <= top; v += step {
		view.Ticks = append(view.Ticks, Tick{Value: v, Y: view.BaseY - view.PlotH*float64(v)/float64(top)})
	}

	if n == 0 {
		return view
	}
	slot := view.PlotW / float64(n)
	width := slot * (1 - barGapRatio)
	for i := 0; i < n; i++ {
		value := counts[i]
		if value < 0 {
			value = 0
		}
		height := view.PlotH * float64(value) / float64(top)
		x := view.PlotX + slot*float64(i) + (slot-width)/2
		view.Bars = append(view.Bars, Bar{
			Label:  customers[i],
			Value:  counts[i],
			Color:  Palette[i%len(Palette)],
			X:      x,
			Y:      view.BaseY - height,
			Width:  width,
			Height: height,
			LabelX: x + width/2,
		})
	}
	return view
}

// tickStep picks a whole-number gridline step giving at most maxTicks intervals
func tickStep(maxValue int) int {
	if maxValue <= maxTicks {
		return 1
	}
	raw := float64(maxValue) / maxTicks
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * magnitude; step >= raw {
			return int(step)
		}
	}
	return int(10 * magnitude)
}
