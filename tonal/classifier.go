package tonal

import (
	"github.com/RyanBlaney/sonido-charts/chroma"
	"github.com/RyanBlaney/sonido-charts/model"
)

// ClassifierParams holds chord classification parameters
type ClassifierParams struct {
	WindowFrames     int     `json:"window_frames"`      // Frames averaged per classification window
	MinConfidence    float64 `json:"min_confidence"`     // Best-match similarity needed to emit an event
	MinChordDuration float64 `json:"min_chord_duration"` // Blip suppression span in seconds, 0 disables
	BlipTolerance    float64 `json:"blip_tolerance"`     // Confidence slack that saves a short event
}

// Classifier matches windows of chroma frames against a chord template
// catalog and produces a timeline of chord events.
type Classifier struct {
	params    ClassifierParams
	templates []ChordTemplate
}

// DefaultClassifierParams returns parameters tuned for the basic catalog
func DefaultClassifierParams() ClassifierParams {
	return ClassifierParams{
		WindowFrames:     20,
		MinConfidence:    0.5,
		MinChordDuration: 0.5,
		BlipTolerance:    0.05,
	}
}

// ExtendedClassifierParams returns parameters tuned for the extended
// catalog, which needs a stricter confidence gate to stay precise.
func ExtendedClassifierParams() ClassifierParams {
	params := DefaultClassifierParams()
	params.MinConfidence = 0.65
	return params
}

// NewClassifier creates a classifier over the basic triad catalog
func NewClassifier() *Classifier {
	return NewClassifierWithParams(BasicTemplates(), DefaultClassifierParams())
}

// NewExtendedClassifier creates a classifier over the extended catalog
func NewExtendedClassifier() *Classifier {
	return NewClassifierWithParams(ExtendedTemplates(), ExtendedClassifierParams())
}

// NewClassifierWithParams creates a classifier with a custom catalog and parameters
func NewClassifierWithParams(templates []ChordTemplate, params ClassifierParams) *Classifier {
	if params.WindowFrames <= 0 {
		params.WindowFrames = 20
	}
	return &Classifier{
		params:    params,
		templates: templates,
	}
}

// Classify walks the chromagram in non-overlapping windows, averages each
// window into one chroma vector, and emits the best-matching template when
// its cosine similarity clears the confidence gate. A trailing partial
// window is discarded. Consecutive duplicate labels are merged and, when
// MinChordDuration is set, low-confidence blips shorter than it are
// suppressed.
func (c *Classifier) Classify(frames [][]float64, frameDuration float64) []model.ChordEvent {
	events := []model.ChordEvent{}
	if len(frames) == 0 {
		return events
	}

	w := c.params.WindowFrames
	for i := 0; i+w <= len(frames); i += w {
		avg := chroma.MeanRange(frames, i, i+w)

		bestLabel := ""
		bestScore := 0.0
		for _, template := range c.templates {
			score := chroma.CosineSimilarity(avg, template.Pattern)
			if score > bestScore {
				bestScore = score
				bestLabel = template.Label
			}
		}

		if bestLabel != "" && bestScore > c.params.MinConfidence {
			events = append(events, model.ChordEvent{
				Chord:      bestLabel,
				Time:       float64(i) * frameDuration,
				Confidence: bestScore,
			})
		}
	}

	events = mergeConsecutive(events)
	if c.params.MinChordDuration > 0 {
		events = mergeConsecutive(c.suppressBlips(events))
	}
	return events
}

// Templates returns the catalog the classifier scores against
func (c *Classifier) Templates() []ChordTemplate {
	return c.templates
}

// mergeConsecutive collapses runs of the same label into one event that
// keeps the earliest timestamp and the highest confidence of the run
func mergeConsecutive(events []model.ChordEvent) []model.ChordEvent {
	if len(events) < 2 {
		return events
	}

	merged := []model.ChordEvent{events[0]}
	for _, e := range events[1:] {
		last := &merged[len(merged)-1]
		if e.Chord == last.Chord {
			if e.Confidence > last.Confidence {
				last.Confidence = e.Confidence
			}
			continue
		}
		merged = append(merged, e)
	}
	return merged
}

// suppressBlips drops events that last less than MinChordDuration before
// the next event, unless their confidence is close to the kept
// predecessor's. The first and last events always survive.
func (c *Classifier) suppressBlips(events []model.ChordEvent) []model.ChordEvent {
	if len(events) < 3 {
		return events
	}

	kept := []model.ChordEvent{events[0]}
	for i := 1; i < len(events); i++ {
		e := events[i]
		if i+1 < len(events) {
			duration := events[i+1].Time - e.Time
			prev := kept[len(kept)-1]
			if duration < c.params.MinChordDuration && e.Confidence < prev.Confidence-c.params.BlipTolerance {
				continue
			}
		}
		kept = append(kept, e)
	}
	return kept
}
