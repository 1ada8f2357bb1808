package tonal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func framesOf(pattern []float64, n int) [][]float64 {
	frames := make([][]float64, n)
	for i := range frames {
		frame := make([]float64, len(pattern))
		copy(frame, pattern)
		frames[i] = frame
	}
	return frames
}

func patternOf(label string) []float64 {
	for _, template := range BasicTemplates() {
		if template.Label == label {
			return template.Pattern
		}
	}
	return nil
}

func TestClassifyPerfectTemplateMatch(t *testing.T) {
	classifier := NewClassifier()
	frames := framesOf(patternOf("C"), 20)

	events := classifier.Classify(frames, 0.025)

	require.Len(t, events, 1)
	assert.Equal(t, "C", events[0].Chord)
	assert.Equal(t, 0.0, events[0].Time)
	assert.InDelta(t, 1.0, events[0].Confidence, 1e-6)
}

func TestClassifyMergesConsecutiveDuplicates(t *testing.T) {
	classifier := NewClassifier()
	frames := framesOf(patternOf("G"), 60)

	events := classifier.Classify(frames, 0.025)

	require.Len(t, events, 1)
	assert.Equal(t, "G", events[0].Chord)
	assert.Equal(t, 0.0, events[0].Time)
}

func TestClassifyNoConsecutiveDuplicateLabels(t *testing.T) {
	classifier := NewClassifier()
	frames := framesOf(patternOf("C"), 20)
	frames = append(frames, framesOf(patternOf("G"), 20)...)
	frames = append(frames, framesOf(patternOf("C"), 20)...)

	events := classifier.Classify(frames, 0.05)

	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.NotEqual(t, events[i-1].Chord, events[i].Chord)
		assert.Greater(t, events[i].Time, events[i-1].Time)
	}
}

func TestClassifyAmbiguousWindowEmitsNothing(t *testing.T) {
	classifier := NewClassifier()

	// Uniform chroma scores exactly at the confidence gate against every
	// triad, and the gate is strict
	uniform := make([]float64, 12)
	for i := range uniform {
		uniform[i] = 1.0 / 12.0
	}

	events := classifier.Classify(framesOf(uniform, 40), 0.025)
	assert.Empty(t, events)
}

func TestClassifyDiscardsTrailingPartialWindow(t *testing.T) {
	classifier := NewClassifier()
	frames := framesOf(patternOf("Am"), 30)

	events := classifier.Classify(frames, 0.025)

	require.Len(t, events, 1)
	assert.Equal(t, "Am", events[0].Chord)
}

func TestClassifyEmptyInput(t *testing.T) {
	classifier := NewClassifier()

	events := classifier.Classify(nil, 0.025)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestBasicTemplatesCatalogShape(t *testing.T) {
	templates := BasicTemplates()
	assert.Len(t, templates, 18)

	byLabel := map[string][]float64{}
	for _, template := range templates {
		byLabel[template.Label] = template.Pattern
	}

	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0}, byLabel["C"])
	assert.Equal(t, []float64{1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0}, byLabel["Cm"])
	assert.Contains(t, byLabel, "F#")
	assert.NotContains(t, byLabel, "F#m")
}

func TestExtendedTemplatesOnlyChartableLabels(t *testing.T) {
	templates := ExtendedTemplates()
	assert.Greater(t, len(templates), 18)

	for _, template := range templates {
		assert.LessOrEqual(t, len(template.Label), 5, "label %q too long to chart", template.Label)
	}
}
