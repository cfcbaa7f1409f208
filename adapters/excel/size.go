package excel

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var sizeNumber = regexp.MustCompile(`[\d.]+`)

// ParseSize reads "diameter x height" from a size cell such as "7.5 x 9 cm" or "75*90".
// Values given in centimetres are converted to millimetres; both are rounded to one
// decimal. ok is false when two numbers cannot be read.
func ParseSize(raw string) (diameter, height float64, ok bool) {
	if raw == "" {
		return 0, 0, false
	}
	s := strings.ToLower(raw)
	s = strings.NewReplacer("×", "x", "*", "x", " ", "").Replace(s)

	parts := sizeNumber.FindAllString(s, -1)
	if len(parts) < 2 {
		return 0, 0, false
	}
	d, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	if strings.Contains(s, "cm") {
		d *= 10
		h *= 10
	}
	return roundTenth(d), roundTenth(h), true
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
