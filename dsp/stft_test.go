package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFrameAndBinCounts(t *testing.T) {
	signal := make([]float64, 4096)
	stft := NewSTFT()

	result, err := stft.Compute(signal, 1024, 256, 8000, NewHann(1024))
	require.NoError(t, err)

	assert.Equal(t, (4096-1024)/256+1, result.TimeFrames)
	assert.Equal(t, 1024/2+1, result.FreqBins)
	assert.Len(t, result.Magnitude, result.TimeFrames)
	assert.InDelta(t, 8000.0/1024.0, result.FreqResolution, 1e-12)
	assert.InDelta(t, 256.0/8000.0, result.TimeResolution, 1e-12)
}

func TestComputePeakBinTracksInputFrequency(t *testing.T) {
	const sampleRate = 8000
	const windowSize = 1024
	const freq = 1000.0

	signal := make([]float64, 4096)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}

	result, err := NewSTFT().Compute(signal, windowSize, 512, sampleRate, NewHann(windowSize))
	require.NoError(t, err)

	peak := 0
	for bin, mag := range result.Magnitude[0] {
		if mag > result.Magnitude[0][peak] {
			peak = bin
		}
	}
	expected := int(math.Round(freq / result.FreqResolution))
	assert.InDelta(t, float64(expected), float64(peak), 1.0)
}

func TestComputeRejectsBadInput(t *testing.T) {
	stft := NewSTFT()

	_, err := stft.Compute(nil, 1024, 256, 8000, nil)
	assert.Error(t, err)

	_, err = stft.Compute(make([]float64, 100), 0, 256, 8000, nil)
	assert.Error(t, err)

	_, err = stft.Compute(make([]float64, 100), 1024, 256, 8000, nil)
	assert.Error(t, err)
}

func TestHannEndpointsAndSymmetry(t *testing.T) {
	window := NewHann(8)
	coeffs := window.Coefficients()

	assert.InDelta(t, 0.0, coeffs[0], 1e-12)
	assert.InDelta(t, 1.0, coeffs[4], 1e-12)
	assert.InDelta(t, coeffs[1], coeffs[7], 1e-12)
}

func TestHannApplyInPlaceSizeMismatch(t *testing.T) {
	window := NewHann(8)
	assert.Error(t, window.ApplyInPlace(make([]float64, 4)))
}
