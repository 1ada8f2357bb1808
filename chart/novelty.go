package chart

import (
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-charts/chroma"
)

// NoveltyBoundaries derives candidate section boundary times from a
// chromagram. Frames are mean-pooled into coarse windows, consecutive
// windows are compared by cosine distance, and local novelty peaks more
// than one standard deviation above the mean are reported as boundaries.
//
// This is a secondary signal for the segmenter's edge snapping, not a
// segmentation of its own.
func NoveltyBoundaries(frames [][]float64, frameDuration float64, poolFrames int) []float64 {
	if poolFrames <= 0 {
		poolFrames = 20
	}
	numWindows := len(frames) / poolFrames
	if numWindows < 3 {
		return nil
	}

	pooled := make([][]float64, numWindows)
	for w := 0; w < numWindows; w++ {
		pooled[w] = chroma.MeanRange(frames, w*poolFrames, (w+1)*poolFrames)
	}

	novelty := make([]float64, numWindows-1)
	for w := 0; w+1 < numWindows; w++ {
		novelty[w] = 1.0 - chroma.CosineSimilarity(pooled[w], pooled[w+1])
	}

	mean, std := stat.MeanStdDev(novelty, nil)
	threshold := mean + std

	var boundaries []float64
	for w := 1; w+1 < len(novelty); w++ {
		if novelty[w] > threshold && novelty[w] > novelty[w-1] && novelty[w] >= novelty[w+1] {
			boundaries = append(boundaries, float64((w+1)*poolFrames)*frameDuration)
		}
	}
	return boundaries
}
