package chroma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	v := []float64{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0}
	assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
}

func TestCosineSimilarityOrthogonalVectors(t *testing.T) {
	a := []float64{1, 0, 0, 0}
	b := []float64{0, 1, 0, 0}
	assert.Equal(t, 0.0, CosineSimilarity(a, b))
}

func TestCosineSimilarityZeroVectorIsZeroNotNaN(t *testing.T) {
	a := []float64{0, 0, 0}
	b := []float64{1, 2, 3}
	assert.Equal(t, 0.0, CosineSimilarity(a, b))
}

func TestCosineSimilarityMismatchedLengths(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity([]float64{1}, []float64{1, 2}))
}

func TestMeanAveragesFrames(t *testing.T) {
	frames := [][]float64{
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
		{3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 4},
	}
	mean := Mean(frames)

	assert.InDelta(t, 2.0, mean[0], 1e-12)
	assert.InDelta(t, 3.0, mean[11], 1e-12)
	assert.Equal(t, 0.0, mean[5])
}

func TestMeanEmptyFramesIsZeroVector(t *testing.T) {
	mean := Mean(nil)
	assert.Len(t, mean, NumBins)
	for _, v := range mean {
		assert.Equal(t, 0.0, v)
	}
}

func TestMeanRangeClampsBounds(t *testing.T) {
	frames := [][]float64{
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}
	mean := MeanRange(frames, 0, 100)
	assert.InDelta(t, 1.0, mean[0], 1e-12)
}

func TestL2NormalizeUnitNorm(t *testing.T) {
	v := L2Normalize([]float64{3, 4})
	assert.InDelta(t, 0.6, v[0], 1e-12)
	assert.InDelta(t, 0.8, v[1], 1e-12)
}

func TestRollRotatesRight(t *testing.T) {
	assert.Equal(t, []float64{3, 1, 2}, Roll([]float64{1, 2, 3}, 1))
	assert.Equal(t, []float64{1, 2, 3}, Roll([]float64{1, 2, 3}, 3))
	assert.Equal(t, []float64{2, 3, 1}, Roll([]float64{1, 2, 3}, -1))
}
