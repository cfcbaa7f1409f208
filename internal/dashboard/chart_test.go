package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChart_Layout(t *testing.T) {
	view := RenderChart([]string{"A", "B"}, []int{3, 1})

	assert.Equal(t, ChartTitle, view.Title)
	assert.Equal(t, ChartXLabel, view.XLabel)
	assert.Equal(t, ChartYLabel, view.YLabel)
	assert.Equal(t, "#f8f9fa", view.Background)

	require.Len(t, view.Bars, 2)
	assert.Equal(t, "A", view.Bars[0].Label)
	assert.Equal(t, "#3498db", view.Bars[0].Color)
	assert.Equal(t, "#2ecc71", view.Bars[1].Color)
	assert.InDelta(t, view.PlotH, view.Bars[0].Height, 1e-9)
	assert.InDelta(t, view.PlotH/3, view.Bars[1].Height, 1e-9)
	assert.InDelta(t, view.BaseY, view.Bars[1].Y+view.Bars[1].Height, 1e-9)
	assert.Less(t, view.Bars[0].X+view.Bars[0].Width, view.Bars[1].X)
}

func TestRenderChart_PaletteCycles(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	view := RenderChart(names, []int{7, 6, 5, 4, 3, 2, 1})

	require.Len(t, view.Bars, 7)
	assert.Equal(t, "#9b59b6", view.Bars[4].Color)
	assert.Equal(t, "#3498db", view.Bars[5].Color)
	assert.Equal(t, "#2ecc71", view.Bars[6].Color)
}

func TestRenderChart_MismatchedLengthsUseCommonPrefix(t *testing.T) {
	assert.Len(t, RenderChart([]string{"A", "B", "C"}, []int{1}).Bars, 1)
	assert.Len(t, RenderChart([]string{"A"}, []int{1, 2, 3}).Bars, 1)
	assert.Empty(t, RenderChart(nil, nil).Bars)
}

func TestTickStep(t *testing.T) {
	tests := []struct {
		max  int
		want int
	}{
		{0, 1}, {3, 1}, {5, 1}, {7, 2}, {12, 5}, {40, 10}, {180, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tickStep(tt.max), "max %d", tt.max)
	}
}
