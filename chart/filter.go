package chart

import (
	"strings"

	"github.com/RyanBlaney/sonido-charts/model"
)

// FilterParams holds significance filter parameters
type FilterParams struct {
	SuppressWindow float64 `json:"suppress_window"`  // Seconds within which a repeated label is dropped
	MaxLabelLength int     `json:"max_label_length"` // Longest label that fits a chart grid
}

// DefaultFilterParams returns the standard filter settings
func DefaultFilterParams() FilterParams {
	return FilterParams{
		SuppressWindow: 0.5,
		MaxLabelLength: 5,
	}
}

// SignificanceFilter thins a raw chord event stream down to events worth
// charting. Recognizer backends repeat labels frame after frame and emit
// artifact markers; neither belongs on a chart.
type SignificanceFilter struct {
	params FilterParams
}

// NewSignificanceFilter creates a filter with default parameters
func NewSignificanceFilter() *SignificanceFilter {
	return NewSignificanceFilterWithParams(DefaultFilterParams())
}

// NewSignificanceFilterWithParams creates a filter with custom parameters
func NewSignificanceFilterWithParams(params FilterParams) *SignificanceFilter {
	return &SignificanceFilter{params: params}
}

// Filter returns the events that survive, in input order:
//
//   - an event repeating the last kept label within SuppressWindow
//     seconds of it is dropped
//   - malformed labels are dropped: longer than MaxLabelLength or
//     carrying "*" artifact markers
//
// The input is never mutated and the pass is idempotent. Events with
// negative or NaN timestamps are rejected with an error.
func (f *SignificanceFilter) Filter(events []model.ChordEvent) ([]model.ChordEvent, error) {
	if err := model.ValidateChordEvents(events); err != nil {
		return nil, err
	}

	kept := []model.ChordEvent{}
	lastChord := ""
	lastTime := 0.0

	for _, e := range events {
		if len(kept) > 0 && e.Chord == lastChord && e.Time-lastTime < f.params.SuppressWindow {
			continue
		}
		if len(e.Chord) > f.params.MaxLabelLength || strings.Contains(e.Chord, "*") {
			continue
		}

		kept = append(kept, e)
		lastChord = e.Chord
		lastTime = e.Time
	}

	return kept, nil
}
