package pipeline

import (
	"context"
	"fmt"

	"github.com/RyanBlaney/sonido-charts/chart"
	"github.com/RyanBlaney/sonido-charts/chroma"
	"github.com/RyanBlaney/sonido-charts/logging"
	"github.com/RyanBlaney/sonido-charts/model"
	"github.com/RyanBlaney/sonido-charts/tonal"
)

// AudioInput carries the audio handed to chord providers. Frames may be
// precomputed so providers sharing the chroma frontend don't recompute it.
type AudioInput struct {
	Samples       []float64
	SampleRate    int
	Frames        [][]float64 // Precomputed chroma frames, optional
	FrameDuration float64     // Seconds per chroma frame when Frames is set
}

// ChordProvider recognizes chords in audio. Implementations may wrap
// external recognizers; their raw output is normalized and filtered
// downstream, so noisy label streams are fine.
type ChordProvider interface {
	Name() string
	DetectChords(ctx context.Context, in AudioInput) ([]model.ChordEvent, error)
}

// TemplateProvider is the built-in provider: chroma extraction plus
// template matching. It never needs the network and serves as the last
// resort of every chain.
type TemplateProvider struct {
	classifier *tonal.Classifier
	extractor  *chroma.Extractor
	windowSize int
	hopSize    int
}

// NewTemplateProvider creates the built-in chroma template provider
func NewTemplateProvider(classifier *tonal.Classifier, extractor *chroma.Extractor, windowSize, hopSize int) *TemplateProvider {
	return &TemplateProvider{
		classifier: classifier,
		extractor:  extractor,
		windowSize: windowSize,
		hopSize:    hopSize,
	}
}

// Name implements ChordProvider
func (p *TemplateProvider) Name() string {
	return "chroma-template"
}

// DetectChords implements ChordProvider
func (p *TemplateProvider) DetectChords(ctx context.Context, in AudioInput) ([]model.ChordEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frames := in.Frames
	frameDuration := in.FrameDuration
	if frames == nil {
		if len(in.Samples) == 0 {
			return nil, fmt.Errorf("no audio to analyze")
		}
		var err error
		frames, err = p.extractor.Frames(in.Samples, p.windowSize, p.hopSize)
		if err != nil {
			return nil, fmt.Errorf("chroma extraction: %w", err)
		}
		frameDuration = p.extractor.FrameDuration(p.hopSize)
	}

	return p.classifier.Classify(frames, frameDuration), nil
}

// ProviderChain tries providers in order and keeps the first usable
// result. A provider that errors or hears nothing just hands over to the
// next; an empty chain result means no provider heard any chords.
type ProviderChain struct {
	providers []ChordProvider
	logger    logging.Logger
}

// NewProviderChain creates a chain over the given providers, tried in order
func NewProviderChain(providers ...ChordProvider) *ProviderChain {
	return &ProviderChain{
		providers: providers,
		logger:    logging.WithFields(logging.Fields{"component": "provider_chain"}),
	}
}

// Providers returns the chain's providers in trial order
func (c *ProviderChain) Providers() []ChordProvider {
	return c.providers
}

// DetectChords runs the chain. Labels in the winning stream are
// normalized to compact notation and no-chord markers are dropped before
// the stream is returned.
func (c *ProviderChain) DetectChords(ctx context.Context, in AudioInput) []model.ChordEvent {
	for _, provider := range c.providers {
		if ctx.Err() != nil {
			break
		}

		events, err := provider.DetectChords(ctx, in)
		if err != nil {
			c.logger.Warn("provider failed, trying next", logging.Fields{
				"provider": provider.Name(),
				"error":    err.Error(),
			})
			continue
		}

		events = normalizeEvents(events)
		if len(events) == 0 {
			c.logger.Debug("provider heard no chords", logging.Fields{
				"provider": provider.Name(),
			})
			continue
		}

		c.logger.Debug("provider succeeded", logging.Fields{
			"provider": provider.Name(),
			"events":   len(events),
		})
		return events
	}

	return []model.ChordEvent{}
}

// normalizeEvents converts recognizer notation to compact labels and
// drops no-chord markers
func normalizeEvents(events []model.ChordEvent) []model.ChordEvent {
	out := make([]model.ChordEvent, 0, len(events))
	for _, e := range events {
		label := chart.NormalizeLabel(e.Chord)
		if label == "" || label == chart.NoChordLabel {
			continue
		}
		e.Chord = label
		out = append(out, e)
	}
	return out
}
