package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTxSize(t *testing.T) {
	tests := []struct {
		numInputs    int
		numOutputs   int
		expectedSize int
	}{
		{1, 1, 110},
		{1, 2, 141},
		{2, 2, 209},
		{3, 1, 246},
	}
	for _, tt := range tests {
		assert.Equal(
			t, tt.expectedSize, EstimateTxSize(tt.numInputs, tt.numOutputs),
		)
	}
}

func TestEstimateFeeMonotonicity(t *testing.T) {
	for nIn := 1; nIn <= 5; nIn++ {
		for nOut := 1; nOut <= 3; nOut++ {
			for rate := uint64(1); rate <= 50; rate += 7 {
				fee := EstimateFee(nIn, nOut, rate)
				assert.GreaterOrEqual(t, EstimateFee(nIn+1, nOut, rate), fee)
				assert.GreaterOrEqual(t, EstimateFee(nIn, nOut+1, rate), fee)
				assert.GreaterOrEqual(t, EstimateFee(nIn, nOut, rate+1), fee)
			}
		}
	}
}

func TestInputEffectiveValue(t *testing.T) {
	tests := []struct {
		value      uint64
		feeRate    uint64
		expected   uint64
		economical bool
	}{
		{100000, 10, 99320, true},
		{681, 10, 1, true},
		{680, 10, 0, false},
		{100, 10, 0, false},
		{546, 1, 478, true},
	}
	for _, tt := range tests {
		effective, ok := InputEffectiveValue(tt.value, tt.feeRate)
		assert.Equal(t, tt.economical, ok)
		assert.Equal(t, tt.expected, effective)
	}
}
