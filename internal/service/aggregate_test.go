package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxAmount(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"mixed signs", []float64{5, -2, 10}, 10},
		{"all negative", []float64{-5, -2, -10}, -2},
		{"single", []float64{3.5}, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maxAmount(tt.amounts))
		})
	}
}

func TestMinAmount(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"mixed signs", []float64{5, -2, 10}, -2},
		{"all positive", []float64{5, 2, 10}, 2},
		{"single", []float64{3.5}, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, minAmount(tt.amounts))
		})
	}
}

func TestSumAmounts(t *testing.T) {
	assert.Equal(t, 0.0, sumAmounts(nil))
	assert.Equal(t, 13.0, sumAmounts([]float64{5, 0, -2, 10}))
	assert.Equal(t, -7.0, sumAmounts([]float64{-5, -2}))
}

func TestCountPositive(t *testing.T) {
	assert.Equal(t, 0, countPositive(nil))
	// Zero amounts do not count as positive.
	assert.Equal(t, 2, countPositive([]float64{5, 0, -2, 10}))
	assert.Equal(t, 0, countPositive([]float64{0, -1}))
}
