package testkit

import (
	"fmt"
	"math/rand"

	"burntest/models"
)

// HeaderStyle selects which accepted header spelling a generated sheet uses
type HeaderStyle int

const (
	HeaderCanonical HeaderStyle = iota
	HeaderEnglish
	HeaderASCII
)

// OrderGeneratorConfig configures the order sheet generator
type OrderGeneratorConfig struct {
	CustomerCount int         `json:"customer_count"`
	OrderCount    int         `json:"order_count"`
	MaxLines      int         `json:"max_lines"`
	HeaderStyle   HeaderStyle `json:"header_style"`
	Seed          int64       `json:"seed"`
}

// DefaultOrderConfig returns a small, deterministic data set
func DefaultOrderConfig() OrderGeneratorConfig {
	return OrderGeneratorConfig{
		CustomerCount: 6,
		OrderCount:    12,
		MaxLines:      4,
		HeaderStyle:   HeaderCanonical,
		Seed:          42,
	}
}

var (
	fragrances = []string{"Lavender", "Vanilla", "Sandalwood", "Citrus", "Rose"}
	colors     = []string{"Trắng", "Đỏ", "Xanh", "Vàng", "Tím"}
	wicks      = []string{"Cotton", "Gỗ", "Hemp"}
	sizes      = []string{"7.5 x 9 cm", "75x90", "8*10cm", "6 × 7.5 cm", "80 x 100"}
)

// OrderDataGenerator produces import sheets of burn-test orders
type OrderDataGenerator struct {
	config OrderGeneratorConfig
	rng    *rand.Rand
}

// NewOrderDataGenerator creates a generator
func NewOrderDataGenerator(config OrderGeneratorConfig) *OrderDataGenerator {
	if config.MaxLines < 1 {
		config.MaxLines = 1
	}
	if config.CustomerCount < 1 {
		config.CustomerCount = 1
	}
	return &OrderDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Headers returns the header row in the configured style
func (g *OrderDataGenerator) Headers() []string {
	columns := []string{
		models.ColCustomer, models.ColOrder, models.ColProductCode, models.ColSize,
		models.ColWick, models.ColColor, models.ColFragrance,
	}
	headers := make([]string, len(columns))
	for i, col := range columns {
		aliases := models.ColumnAliases[col]
		idx := int(g.config.HeaderStyle)
		if idx >= len(aliases) {
			idx = 0
		}
		headers[i] = aliases[idx]
	}
	return headers
}

// Rows returns the data rows, one per order line, with unique (order, product code) pairs
func (g *OrderDataGenerator) Rows() [][]string {
	var rows [][]string
	for o := 0; o < g.config.OrderCount; o++ {
		order := fmt.Sprintf("DH%04d", o+1)
		customer := fmt.Sprintf("Khách %c", 'A'+rune(g.rng.Intn(g.config.CustomerCount)))
		lines := 1 + g.rng.Intn(g.config.MaxLines)
		for l := 0; l < lines; l++ {
			rows = append(rows, []string{
				customer,
				order,
				fmt.Sprintf("MH-%02d-%d", o+1, l+1),
				sizes[g.rng.Intn(len(sizes))],
				wicks[g.rng.Intn(len(wicks))],
				colors[g.rng.Intn(len(colors))],
				fragrances[g.rng.Intn(len(fragrances))],
			})
		}
	}
	return rows
}
