package tonal

import (
	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-charts/chroma"
)

// Krumhansl-Schmuckler key profiles
var (
	majorProfile = []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// UnknownKey is returned when no key can be estimated
const UnknownKey = "Unknown"

// KeyEstimator estimates the global key of a song from its chromagram
// by correlating the mean chroma against rotated Krumhansl-Schmuckler
// profiles for all 24 major and minor keys.
type KeyEstimator struct{}

// NewKeyEstimator creates a new key estimator
func NewKeyEstimator() *KeyEstimator {
	return &KeyEstimator{}
}

// EstimateKey returns the best-matching key as "G Major" or "Em", or
// UnknownKey when the chromagram is empty or carries no energy.
//
// For each of the twelve roots the major profile is scored before the
// minor one and a candidate only wins on a strictly higher score, so
// ties resolve to the earliest root and to major over minor.
func (ke *KeyEstimator) EstimateKey(frames [][]float64) string {
	if len(frames) == 0 {
		return UnknownKey
	}

	mean := chroma.L2Normalize(chroma.Mean(frames))
	if isZero(mean) {
		return UnknownKey
	}

	major := chroma.L2Normalize(majorProfile)
	minor := chroma.L2Normalize(minorProfile)

	bestScore := -1.0
	bestKey := UnknownKey

	for root := 0; root < chroma.NumBins; root++ {
		if score := floats.Dot(mean, chroma.Roll(major, root)); score > bestScore {
			bestScore = score
			bestKey = chroma.PitchNames[root] + " Major"
		}
		if score := floats.Dot(mean, chroma.Roll(minor, root)); score > bestScore {
			bestScore = score
			bestKey = chroma.PitchNames[root] + "m"
		}
	}

	return bestKey
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
