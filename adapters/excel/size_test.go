package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		diameter float64
		height   float64
		ok       bool
	}{
		{name: "millimetres", input: "75 x 90", diameter: 75, height: 90, ok: true},
		{name: "centimetres", input: "7.5 x 9 cm", diameter: 75, height: 90, ok: true},
		{name: "multiplication sign", input: "6 × 7.55 CM", diameter: 60, height: 75.5, ok: true},
		{name: "asterisk", input: "80*100", diameter: 80, height: 100, ok: true},
		{name: "rounding", input: "7.26x9.04", diameter: 7.3, height: 9, ok: true},
		{name: "single number", input: "75", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "unparseable number", input: "1.2.3 x 4", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, h, ok := ParseSize(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.diameter, d, 1e-9)
				assert.InDelta(t, tt.height, h, 1e-9)
			}
		})
	}
}
