package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantile(t *testing.T) {
	oneToEight := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"single value", []float64{7}, 0.25, 7},
		{"two values lower quartile", []float64{1, 3}, 0.25, 1.5},
		{"two values median", []float64{1, 3}, 0.5, 2},
		{"two values upper quartile", []float64{1, 3}, 0.75, 2.5},
		{"odd count median is middle value", []float64{1, 2, 10}, 0.5, 2},
		{"interpolates lower quartile", oneToEight, 0.25, 2.75},
		{"interpolates median", oneToEight, 0.5, 4.5},
		{"interpolates upper quartile", oneToEight, 0.75, 6.25},
		{"minimum", oneToEight, 0, 1},
		{"maximum", oneToEight, 1, 8},
		{"exact rank with infinity", []float64{1, 2, math.Inf(1)}, 0.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Quantile(tt.sorted, tt.p), 1e-12)
		})
	}
}

func TestQuantileUndefined(t *testing.T) {
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.True(t, math.IsNaN(Quantile([]float64{1, 2}, -0.1)))
	assert.True(t, math.IsNaN(Quantile([]float64{1, 2}, 1.1)))
}
