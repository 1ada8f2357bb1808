package chroma

import (
	"math"

	"github.com/RyanBlaney/sonido-charts/dsp"
)

// Extractor computes chroma frames from audio.
//
// Each frame folds the STFT magnitude spectrum into 12 pitch-class energy
// bins (C, C#, D, D#, E, F, F#, G, G#, A, A#, B), octave-folded so every C
// lands in the same bin, with logarithmic frequency mapping and adjustable
// tuning (default A4=440Hz).
type Extractor struct {
	sampleRate int
	stft       *dsp.STFT
	tuningFreq float64 // A4 frequency (default 440 Hz)
	minFreq    float64 // Minimum frequency to consider
	maxFreq    float64 // Maximum frequency to consider
}

// NewExtractor creates a chroma extractor with the given tuning
func NewExtractor(sampleRate int, tuningFreq float64) *Extractor {
	return &Extractor{
		sampleRate: sampleRate,
		stft:       dsp.NewSTFT(),
		tuningFreq: tuningFreq,
		minFreq:    80.0,   // Approximate E2
		maxFreq:    8000.0, // High enough for harmonics
	}
}

// NewExtractorDefault creates a chroma extractor with standard A4=440Hz tuning
func NewExtractorDefault(sampleRate int) *Extractor {
	return NewExtractor(sampleRate, 440.0)
}

// Frames computes the chromagram of the signal: one NumBins-sized energy
// vector per STFT frame, in time order, each normalized to unit sum.
func (e *Extractor) Frames(signal []float64, windowSize, hopSize int) ([][]float64, error) {
	if len(signal) == 0 {
		return nil, nil
	}

	window := dsp.NewHann(windowSize)
	stftResult, err := e.stft.Compute(signal, windowSize, hopSize, e.sampleRate, window)
	if err != nil {
		return nil, err
	}

	return e.foldToChroma(stftResult), nil
}

// FrameDuration returns the time step between consecutive chroma frames
func (e *Extractor) FrameDuration(hopSize int) float64 {
	return float64(hopSize) / float64(e.sampleRate)
}

func (e *Extractor) foldToChroma(stftResult *dsp.STFTResult) [][]float64 {
	chromagram := make([][]float64, stftResult.TimeFrames)

	mapping := e.chromaMapping(stftResult.FreqBins, stftResult.FreqResolution)

	for t := 0; t < stftResult.TimeFrames; t++ {
		chromagram[t] = make([]float64, NumBins)

		for f := 0; f < stftResult.FreqBins; f++ {
			bin := mapping[f]
			if bin < 0 {
				continue
			}

			// Magnitude squared for energy
			magnitude := stftResult.Magnitude[t][f]
			chromagram[t][bin] += magnitude * magnitude
		}

		normalizeFrame(chromagram[t])
	}

	return chromagram
}

// chromaMapping maps FFT bins to chroma bins, -1 for out-of-range bins
func (e *Extractor) chromaMapping(freqBins int, freqResolution float64) []int {
	mapping := make([]int, freqBins)

	for f := 0; f < freqBins; f++ {
		frequency := float64(f) * freqResolution

		if frequency < e.minFreq || frequency > e.maxFreq {
			mapping[f] = -1
			continue
		}

		midiNote := e.frequencyToMIDI(frequency)
		mapping[f] = ((int(math.Round(midiNote)) % NumBins) + NumBins) % NumBins
	}

	return mapping
}

// frequencyToMIDI converts frequency to MIDI note number.
// A4 (440 Hz) = MIDI note 69.
func (e *Extractor) frequencyToMIDI(frequency float64) float64 {
	if frequency <= 0 {
		return 0
	}
	return 69.0 + 12.0*math.Log2(frequency/e.tuningFreq)
}

func normalizeFrame(frame []float64) {
	totalEnergy := 0.0
	for _, energy := range frame {
		totalEnergy += energy
	}

	if totalEnergy > 1e-10 {
		for i := range frame {
			frame[i] /= totalEnergy
		}
	}
}
