package chart

import (
	"math"

	"github.com/RyanBlaney/sonido-charts/model"
)

// AlignerParams holds lyric/chord alignment parameters
type AlignerParams struct {
	DefaultConfidence float64 `json:"default_confidence"` // Assigned to events that arrive without one
}

// DefaultAlignerParams returns the standard alignment settings
func DefaultAlignerParams() AlignerParams {
	return AlignerParams{
		DefaultConfidence: 0.85,
	}
}

// LyricChordAligner anchors chord events to the transcript: each chord
// gets the lyric segment its timestamp falls in and the word whose start
// time is closest to it.
type LyricChordAligner struct {
	params AlignerParams
}

// NewLyricChordAligner creates an aligner with default parameters
func NewLyricChordAligner() *LyricChordAligner {
	return NewLyricChordAlignerWithParams(DefaultAlignerParams())
}

// NewLyricChordAlignerWithParams creates an aligner with custom parameters
func NewLyricChordAlignerWithParams(params AlignerParams) *LyricChordAligner {
	return &LyricChordAligner{params: params}
}

// Align resolves every chord event against the transcript, preserving
// event order. A chord outside every segment keeps nil word and segment
// fields; a chord inside a segment without word timings keeps nil word
// fields but records the segment. LineIndex stays nil here and is only
// resolved during rendering.
func (a *LyricChordAligner) Align(chords []model.ChordEvent, segments []model.TranscriptSegment) ([]model.AlignedChord, error) {
	if err := model.ValidateChordEvents(chords); err != nil {
		return nil, err
	}
	if err := model.ValidateSegments(segments); err != nil {
		return nil, err
	}

	aligned := make([]model.AlignedChord, 0, len(chords))
	for _, chord := range chords {
		aligned = append(aligned, a.alignOne(chord, segments))
	}
	return aligned, nil
}

func (a *LyricChordAligner) alignOne(chord model.ChordEvent, segments []model.TranscriptSegment) model.AlignedChord {
	out := model.AlignedChord{
		Chord:         chord.Chord,
		Time:          chord.Time,
		Confidence:    chord.Confidence,
		IsFundamental: IsFundamental(chord.Chord),
	}
	if out.Confidence <= 0 {
		out.Confidence = a.params.DefaultConfidence
	}

	segIdx := -1
	for i, seg := range segments {
		if seg.Start <= chord.Time && chord.Time <= seg.End {
			segIdx = i
			break
		}
	}
	if segIdx < 0 {
		return out
	}
	out.SegmentIndex = intPtr(segIdx)

	words := segments[segIdx].Words
	if len(words) == 0 {
		return out
	}

	bestIdx := 0
	bestDist := math.Abs(words[0].Start - chord.Time)
	for i := 1; i < len(words); i++ {
		if d := math.Abs(words[i].Start - chord.Time); d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}

	out.Word = strPtr(words[bestIdx].Word)
	out.WordIndex = intPtr(bestIdx)
	return out
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
