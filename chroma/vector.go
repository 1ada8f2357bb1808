package chroma

import (
	"gonum.org/v1/gonum/floats"
)

// NumBins is the number of pitch classes in a chroma vector
const NumBins = 12

// PitchNames maps chroma bin index to pitch class name
var PitchNames = [NumBins]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

const epsilon = 1e-10

// Mean averages the frames into a single chroma vector.
// Returns a zero vector for empty input.
func Mean(frames [][]float64) []float64 {
	return MeanRange(frames, 0, len(frames))
}

// MeanRange averages frames[start:end] into a single chroma vector
func MeanRange(frames [][]float64, start, end int) []float64 {
	mean := make([]float64, NumBins)
	if start < 0 {
		start = 0
	}
	if end > len(frames) {
		end = len(frames)
	}
	if start >= end {
		return mean
	}

	for _, frame := range frames[start:end] {
		floats.Add(mean, frame)
	}
	floats.Scale(1.0/float64(end-start), mean)
	return mean
}

// L2Normalize returns the vector scaled to unit Euclidean norm.
// A near-zero vector is returned unchanged.
func L2Normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	norm := floats.Norm(out, 2)
	if norm > epsilon {
		floats.Scale(1.0/norm, out)
	}
	return out
}

// CosineSimilarity computes dot(a,b) / (|a| * |b|) with an epsilon guard
// in the denominator so zero vectors score 0 instead of dividing by zero.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	dot := floats.Dot(a, b)
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)

	return dot / (normA*normB + epsilon)
}

// Roll rotates the vector right by shift positions, so that
// Roll(v, s)[i] == v[(i-s) mod len(v)]. Rolling a pitch-class profile
// by s retunes its root up by s semitones.
func Roll(v []float64, shift int) []float64 {
	n := len(v)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	shift = ((shift % n) + n) % n
	for i := range v {
		out[(i+shift)%n] = v[i]
	}
	return out
}
