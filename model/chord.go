package model

import (
	"fmt"
	"math"
)

// ChordEvent is a single chord guess on the song timeline
type ChordEvent struct {
	Chord      string  `json:"chord"`
	Time       float64 `json:"time"`
	Confidence float64 `json:"confidence"`
}

// AlignedChord is a chord event resolved against the transcript.
// The pointer fields stay nil when the chord falls outside every
// lyric segment or inside a segment without word timings.
type AlignedChord struct {
	Chord         string  `json:"chord"`
	Time          float64 `json:"time"`
	Word          *string `json:"word"`
	WordIndex     *int    `json:"word_index"`
	LineIndex     *int    `json:"line_index"`
	SegmentIndex  *int    `json:"segment_index"`
	Confidence    float64 `json:"confidence"`
	IsFundamental bool    `json:"is_fundamental"`
}

// ValidateChordEvents rejects events with timestamps no chart can place
func ValidateChordEvents(events []ChordEvent) error {
	for i, e := range events {
		if math.IsNaN(e.Time) {
			return fmt.Errorf("chord event %d (%q): timestamp is NaN", i, e.Chord)
		}
		if e.Time < 0 {
			return fmt.Errorf("chord event %d (%q): negative timestamp %.3f", i, e.Chord, e.Time)
		}
	}
	return nil
}
