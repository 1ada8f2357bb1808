package model

import (
	"fmt"
	"math"
)

// WordTiming is a single transcribed word with its time span
type WordTiming struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscriptSegment is one transcribed lyric line. Words is optional;
// segments without word timings still render, they just carry no
// word-anchored chords.
type TranscriptSegment struct {
	Text  string       `json:"text"`
	Start float64      `json:"start"`
	End   float64      `json:"end"`
	Words []WordTiming `json:"words,omitempty"`
}

// Transcript is the document shape external transcribers hand over
type Transcript struct {
	Text     string              `json:"text,omitempty"`
	Language string              `json:"language,omitempty"`
	Segments []TranscriptSegment `json:"segments"`
}

// ValidateSegments rejects segments with timestamps no timeline can hold
func ValidateSegments(segments []TranscriptSegment) error {
	for i, seg := range segments {
		if math.IsNaN(seg.Start) || math.IsNaN(seg.End) {
			return fmt.Errorf("segment %d: timestamp is NaN", i)
		}
		if seg.Start < 0 || seg.End < 0 {
			return fmt.Errorf("segment %d: negative timestamp [%.3f, %.3f]", i, seg.Start, seg.End)
		}
		for j, w := range seg.Words {
			if math.IsNaN(w.Start) || math.IsNaN(w.End) {
				return fmt.Errorf("segment %d word %d (%q): timestamp is NaN", i, j, w.Word)
			}
			if w.Start < 0 || w.End < 0 {
				return fmt.Errorf("segment %d word %d (%q): negative timestamp", i, j, w.Word)
			}
		}
	}
	return nil
}
