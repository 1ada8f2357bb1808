package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-charts/model"
)

func helloWorldSegment() []model.TranscriptSegment {
	return []model.TranscriptSegment{
		{
			Text:  "hello world",
			Start: 0.0,
			End:   3.0,
			Words: []model.WordTiming{
				{Word: "hello", Start: 0.5, End: 1.0},
				{Word: "world", Start: 1.2, End: 1.8},
			},
		},
	}
}

func TestAlignPicksClosestWordByStartTime(t *testing.T) {
	aligner := NewLyricChordAligner()

	aligned, err := aligner.Align([]model.ChordEvent{
		{Chord: "Am", Time: 1.5, Confidence: 0.9},
	}, helloWorldSegment())
	require.NoError(t, err)
	require.Len(t, aligned, 1)

	got := aligned[0]
	require.NotNil(t, got.Word)
	assert.Equal(t, "world", *got.Word)
	require.NotNil(t, got.WordIndex)
	assert.Equal(t, 1, *got.WordIndex)
	require.NotNil(t, got.SegmentIndex)
	assert.Equal(t, 0, *got.SegmentIndex)
	assert.Nil(t, got.LineIndex)
	assert.Equal(t, 0.9, got.Confidence)
	assert.True(t, got.IsFundamental)
}

func TestAlignChordOutsideEverySegment(t *testing.T) {
	aligner := NewLyricChordAligner()

	aligned, err := aligner.Align([]model.ChordEvent{
		{Chord: "F#m7", Time: 10.0},
	}, helloWorldSegment())
	require.NoError(t, err)
	require.Len(t, aligned, 1)

	got := aligned[0]
	assert.Equal(t, "F#m7", got.Chord)
	assert.Nil(t, got.Word)
	assert.Nil(t, got.WordIndex)
	assert.Nil(t, got.SegmentIndex)
	assert.Equal(t, 0.85, got.Confidence)
	assert.False(t, got.IsFundamental)
}

func TestAlignSegmentWithoutWordTimings(t *testing.T) {
	aligner := NewLyricChordAligner()

	segments := []model.TranscriptSegment{
		{Text: "instrumental hum", Start: 0.0, End: 5.0},
	}

	aligned, err := aligner.Align([]model.ChordEvent{
		{Chord: "G", Time: 2.0, Confidence: 0.7},
	}, segments)
	require.NoError(t, err)
	require.Len(t, aligned, 1)

	got := aligned[0]
	assert.Nil(t, got.Word)
	assert.Nil(t, got.WordIndex)
	require.NotNil(t, got.SegmentIndex)
	assert.Equal(t, 0, *got.SegmentIndex)
}

func TestAlignPreservesChordOrder(t *testing.T) {
	aligner := NewLyricChordAligner()

	aligned, err := aligner.Align([]model.ChordEvent{
		{Chord: "C", Time: 0.5, Confidence: 0.8},
		{Chord: "G", Time: 1.4, Confidence: 0.8},
	}, helloWorldSegment())
	require.NoError(t, err)
	require.Len(t, aligned, 2)
	assert.Equal(t, "C", aligned[0].Chord)
	assert.Equal(t, "G", aligned[1].Chord)
}

func TestAlignEmptyInputs(t *testing.T) {
	aligner := NewLyricChordAligner()

	aligned, err := aligner.Align(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, aligned)
	assert.Empty(t, aligned)
}

func TestAlignRejectsInvalidTimestamps(t *testing.T) {
	aligner := NewLyricChordAligner()

	_, err := aligner.Align([]model.ChordEvent{{Chord: "C", Time: math.NaN()}}, nil)
	assert.Error(t, err)
}

func TestIsFundamental(t *testing.T) {
	assert.True(t, IsFundamental("C"))
	assert.True(t, IsFundamental("B"))
	assert.True(t, IsFundamental("Am"))
	assert.True(t, IsFundamental("Bm"))
	assert.False(t, IsFundamental("C#"))
	assert.False(t, IsFundamental("F#m"))
	assert.False(t, IsFundamental("Am7"))
	assert.False(t, IsFundamental("Csus4"))
	assert.False(t, IsFundamental(""))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "C", NormalizeLabel("C:maj"))
	assert.Equal(t, "Am", NormalizeLabel("A:min"))
	assert.Equal(t, "Dm7", NormalizeLabel("D:min7"))
	assert.Equal(t, "G7", NormalizeLabel("G:7"))
	assert.Equal(t, "Fsus4", NormalizeLabel("F:sus4"))
	assert.Equal(t, "Em", NormalizeLabel("Em"))
	assert.Equal(t, "N", NormalizeLabel("N"))
}
