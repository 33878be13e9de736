package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeLineTotal(t *testing.T) {
	cases := []struct {
		name       string
		unitPrice  string
		quantity   int
		configured bool
		packSize   int
		want       string
	}{
		{"configured per unit", "0.18", 5000, true, 0, "900"},
		{"configured ignores pack size", "0.30", 1500, true, 500, "450"},
		{"standard without pack", "2.50", 3, false, 0, "7.5"},
		{"standard whole packs", "10.00", 2000, false, 1000, "20"},
		{"standard partial pack rounds up", "10.00", 1500, false, 1000, "20"},
		{"standard single unit one pack", "10.00", 1, false, 1000, "10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeLineTotal(decimal.RequireFromString(tc.unitPrice), tc.quantity, tc.configured, tc.packSize)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestLineConfigured(t *testing.T) {
	assert.False(t, Line{}.Configured())
	assert.True(t, Line{Configuration: map[string]any{"size": "8oz"}}.Configured())
}
