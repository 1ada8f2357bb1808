package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-charts/model"
)

func TestRenderEmptySectionsIsHeaderOnly(t *testing.T) {
	renderer := NewChartRenderer()

	out := renderer.Render(nil, nil, "My Song", "G Major")

	expected := "Title: My Song\n" +
		"Key: G Major\n" +
		"\n" +
		strings.Repeat("-", 40) + "\n"
	assert.Equal(t, expected, out)
}

func TestRenderPlacesChordAboveItsWord(t *testing.T) {
	renderer := NewChartRenderer()

	sections := []model.Section{
		{
			Type: model.SectionVerse, Number: 1, Start: 0, End: 3,
			Segments: helloWorldSegment(),
		},
	}
	aligned := []model.AlignedChord{
		{Chord: "Am", Time: 1.5, Word: strPtr("world"), WordIndex: intPtr(1), SegmentIndex: intPtr(0), Confidence: 0.9, IsFundamental: true},
	}

	out, annotated := renderer.RenderAnnotated(sections, aligned, "My Song", "C Major")

	assert.Contains(t, out, "[Verse 1]\n      Am\nhello world")

	require.NotNil(t, annotated[0].LineIndex)
	assert.Equal(t, 0, *annotated[0].LineIndex)
}

func TestRenderChordGridRoundTrip(t *testing.T) {
	renderer := NewChartRenderer()

	segments := []model.TranscriptSegment{
		{
			Text:  "take me home tonight",
			Start: 0.0,
			End:   4.0,
			Words: []model.WordTiming{
				{Word: "take", Start: 0.2, End: 0.5},
				{Word: "me", Start: 0.6, End: 0.8},
				{Word: "home", Start: 1.0, End: 1.4},
				{Word: "tonight", Start: 2.0, End: 2.8},
			},
		},
	}
	sections := []model.Section{
		{Type: model.SectionChorus, Number: 1, Start: 0, End: 4, Segments: segments},
	}
	aligned := []model.AlignedChord{
		{Chord: "C", Time: 0.2, Word: strPtr("take"), WordIndex: intPtr(0), SegmentIndex: intPtr(0), Confidence: 0.9},
		{Chord: "G", Time: 1.1, Word: strPtr("home"), WordIndex: intPtr(2), SegmentIndex: intPtr(0), Confidence: 0.9},
	}

	out := renderer.Render(sections, aligned, "Song", "C Major")

	lines := strings.Split(out, "\n")
	var chordLine, lyricLine string
	for i, line := range lines {
		if line == "take me home tonight" {
			chordLine = lines[i-1]
			lyricLine = line
			break
		}
	}
	require.NotEmpty(t, lyricLine)

	// Chords recovered from the grid in order, at their word columns
	assert.Equal(t, []string{"C", "G"}, strings.Fields(chordLine))
	assert.Equal(t, 0, strings.Index(chordLine, "C"))
	assert.Equal(t, strings.Index(lyricLine, "home"), strings.Index(chordLine, "G"))
}

func TestRenderRepeatedWordUsesTimestamps(t *testing.T) {
	renderer := NewChartRenderer()

	segments := []model.TranscriptSegment{
		{
			Text:  "home sweet home",
			Start: 0.0,
			End:   4.0,
			Words: []model.WordTiming{
				{Word: "home", Start: 0.2, End: 0.6},
				{Word: "sweet", Start: 1.0, End: 1.4},
				{Word: "home", Start: 2.0, End: 2.4},
			},
		},
	}
	sections := []model.Section{
		{Type: model.SectionVerse, Number: 1, Start: 0, End: 4, Segments: segments},
	}
	aligned := []model.AlignedChord{
		{Chord: "F", Time: 2.1, Word: strPtr("home"), WordIndex: intPtr(2), SegmentIndex: intPtr(0), Confidence: 0.9},
	}

	out := renderer.Render(sections, aligned, "Song", "C")

	lines := strings.Split(out, "\n")
	var chordLine string
	for i, line := range lines {
		if line == "home sweet home" {
			chordLine = lines[i-1]
		}
	}

	// Second occurrence of "home" starts at column 11
	assert.Equal(t, 11, strings.Index(chordLine, "F"))
}

func TestRenderInstrumentalSectionChordRun(t *testing.T) {
	renderer := NewChartRenderer()

	sections := []model.Section{
		{Type: model.SectionIntro, Start: 0, End: 8, Segments: []model.TranscriptSegment{}},
	}
	aligned := []model.AlignedChord{
		{Chord: "Em", Time: 1.0, Confidence: 0.9},
		{Chord: "C", Time: 3.0, Confidence: 0.9},
		{Chord: "G", Time: 5.0, Confidence: 0.9},
	}

	out := renderer.Render(sections, aligned, "Song", "Em")

	assert.Contains(t, out, "[Intro]\nEm  C  G")
}

func TestRenderSegmentWithoutWordsKeepsLyrics(t *testing.T) {
	renderer := NewChartRenderer()

	segments := []model.TranscriptSegment{
		{Text: "la la la instrumental", Start: 0, End: 4},
	}
	sections := []model.Section{
		{Type: model.SectionVerse, Number: 1, Start: 0, End: 4, Segments: segments},
	}
	aligned := []model.AlignedChord{
		{Chord: "D", Time: 1.0, Confidence: 0.9},
	}

	out := renderer.Render(sections, aligned, "Song", "D Major")

	assert.Contains(t, out, "[Verse 1]\nD\nla la la instrumental")
}

func TestRenderSectionEndsWithThreeExtraBlankLines(t *testing.T) {
	renderer := NewChartRenderer()

	sections := []model.Section{
		{Type: model.SectionVerse, Number: 1, Start: 0, End: 3, Segments: helloWorldSegment()},
	}

	out := renderer.Render(sections, nil, "Song", "C Major")

	// One blank after the lyric line, three more closing the section
	assert.True(t, strings.HasSuffix(out, "hello world\n\n\n\n"))
}

func TestRenderMultibyteLyricsKeepChordColumns(t *testing.T) {
	renderer := NewChartRenderer()

	segments := []model.TranscriptSegment{
		{
			Text:  "café bar",
			Start: 0.0,
			End:   2.0,
			Words: []model.WordTiming{
				{Word: "café", Start: 0.2, End: 0.6},
				{Word: "bar", Start: 1.0, End: 1.4},
			},
		},
	}
	sections := []model.Section{
		{Type: model.SectionVerse, Number: 1, Start: 0, End: 2, Segments: segments},
	}
	aligned := []model.AlignedChord{
		{Chord: "E", Time: 1.0, Word: strPtr("bar"), WordIndex: intPtr(1), SegmentIndex: intPtr(0), Confidence: 0.9},
	}

	out := renderer.Render(sections, aligned, "Song", "E")

	lines := strings.Split(out, "\n")
	var chordLine string
	for i, line := range lines {
		if line == "café bar" {
			chordLine = lines[i-1]
		}
	}

	// "bar" starts at display column 5; the accent is one column wide
	assert.Equal(t, "     E", chordLine)
}

func TestRenderBoundaryChordPrintsInOneSection(t *testing.T) {
	renderer := NewChartRenderer()

	sections := []model.Section{
		{Type: model.SectionIntro, Start: 0, End: 4, Segments: []model.TranscriptSegment{}},
		{
			Type: model.SectionVerse, Number: 1, Start: 4, End: 8,
			Segments: []model.TranscriptSegment{
				{Text: "la la la", Start: 4, End: 8},
			},
		},
	}
	aligned := []model.AlignedChord{
		{Chord: "Em", Time: 4.0, Confidence: 0.9},
	}

	out := renderer.Render(sections, aligned, "Song", "C")

	// The sections share the 4.0 boundary; the chord belongs to the verse
	assert.Equal(t, 1, strings.Count(out, "Em"))
	assert.Contains(t, out, "[Verse 1]\nEm\nla la la")
}

func TestRenderNeverOverwritesPlacedChords(t *testing.T) {
	renderer := NewChartRenderer()

	segments := []model.TranscriptSegment{
		{
			Text:  "go now",
			Start: 0.0,
			End:   2.0,
			Words: []model.WordTiming{
				{Word: "go", Start: 0.1, End: 0.3},
				{Word: "now", Start: 0.4, End: 0.8},
			},
		},
	}
	sections := []model.Section{
		{Type: model.SectionVerse, Number: 1, Start: 0, End: 2, Segments: segments},
	}
	// The first label spills over the second word's column; the later
	// chord must not overwrite the placed characters
	aligned := []model.AlignedChord{
		{Chord: "Gmaj7", Time: 0.1, Word: strPtr("go"), WordIndex: intPtr(0), SegmentIndex: intPtr(0), Confidence: 0.9},
		{Chord: "C", Time: 0.4, Word: strPtr("now"), WordIndex: intPtr(1), SegmentIndex: intPtr(0), Confidence: 0.9},
	}

	out := renderer.Render(sections, aligned, "Song", "C")

	lines := strings.Split(out, "\n")
	var chordLine string
	for i, line := range lines {
		if line == "go now" {
			chordLine = lines[i-1]
		}
	}
	assert.Equal(t, "Gmaj7", chordLine)
}
