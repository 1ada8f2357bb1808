package pipeline

import (
	"context"

	"github.com/RyanBlaney/sonido-charts/chart"
	"github.com/RyanBlaney/sonido-charts/chroma"
	"github.com/RyanBlaney/sonido-charts/config"
	"github.com/RyanBlaney/sonido-charts/logging"
	"github.com/RyanBlaney/sonido-charts/model"
	"github.com/RyanBlaney/sonido-charts/tonal"
	"github.com/RyanBlaney/sonido-charts/transcode"
)

// Result is the full pipeline output for one song
type Result struct {
	Title    string               `json:"title"`
	Key      string               `json:"key"`
	Chart    string               `json:"chart"`
	Chords   []model.ChordEvent   `json:"chords"`
	Sections []model.Section      `json:"sections"`
	Aligned  []model.AlignedChord `json:"aligned_chords"`
	Duration float64              `json:"duration"`
}

// Pipeline wires the stages of chart generation together. All stages are
// stateless, so one Pipeline is safe to reuse across songs; concurrent
// songs should each run through their own Process call.
type Pipeline struct {
	cfg       *config.Config
	extractor *chroma.Extractor
	keys      *tonal.KeyEstimator
	providers *ProviderChain
	filter    *chart.SignificanceFilter
	segmenter *chart.StructureSegmenter
	aligner   *chart.LyricChordAligner
	renderer  *chart.ChartRenderer
	logger    logging.Logger
}

// New builds a pipeline from configuration. Extra chord providers are
// tried before the built-in template provider, which always terminates
// the chain.
func New(cfg *config.Config, extraProviders ...ChordProvider) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	extractor := chroma.NewExtractor(cfg.Chroma.SampleRate, cfg.Chroma.TuningFreq)
	classifier := buildClassifier(cfg.Classifier)

	providers := append([]ChordProvider{}, extraProviders...)
	providers = append(providers, NewTemplateProvider(classifier, extractor, cfg.Chroma.WindowSize, cfg.Chroma.HopSize))

	return &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		keys:      tonal.NewKeyEstimator(),
		providers: NewProviderChain(providers...),
		filter: chart.NewSignificanceFilterWithParams(chart.FilterParams{
			SuppressWindow: cfg.Filter.SuppressWindow,
			MaxLabelLength: cfg.Filter.MaxLabelLength,
		}),
		segmenter: chart.NewStructureSegmenterWithParams(chart.SegmenterParams{
			MinTextLength:       cfg.Structure.MinTextLength,
			SimilarityThreshold: cfg.Structure.SimilarityThreshold,
			EdgeGap:             cfg.Structure.EdgeGap,
			BoundaryTolerance:   cfg.Structure.BoundaryTolerance,
		}),
		aligner: chart.NewLyricChordAlignerWithParams(chart.AlignerParams{
			DefaultConfidence: cfg.Align.DefaultConfidence,
		}),
		renderer: chart.NewChartRendererWithParams(chart.RenderParams{
			SeparatorWidth: cfg.Render.SeparatorWidth,
			ChordJoin:      "  ",
			WordTimeWindow: cfg.Render.WordTimeWindow,
		}),
		logger: logging.WithFields(logging.Fields{"component": "pipeline"}),
	}
}

func buildClassifier(cfg config.ClassifierConfig) *tonal.Classifier {
	var templates []tonal.ChordTemplate
	var params tonal.ClassifierParams

	if cfg.Catalog == "extended" {
		templates = tonal.ExtendedTemplates()
		params = tonal.ExtendedClassifierParams()
	} else {
		templates = tonal.BasicTemplates()
		params = tonal.DefaultClassifierParams()
	}

	if cfg.WindowFrames > 0 {
		params.WindowFrames = cfg.WindowFrames
	}
	if cfg.MinConfidence > 0 {
		params.MinConfidence = cfg.MinConfidence
	}
	params.MinChordDuration = cfg.MinChordDuration

	return tonal.NewClassifierWithParams(templates, params)
}

// Process turns decoded audio and a transcript into a chart. Audio may
// be empty: the result then carries no chords and an unknown key, but
// the lyric side of the chart still renders. Invalid timestamps in the
// inputs are the only error.
func (p *Pipeline) Process(ctx context.Context, samples []float64, segments []model.TranscriptSegment, title string) (*Result, error) {
	duration := float64(len(samples)) / float64(p.cfg.Chroma.SampleRate)
	if duration == 0 && len(segments) > 0 {
		duration = segments[len(segments)-1].End
	}

	frames, frameDuration := p.extractFrames(samples)

	key := p.keys.EstimateKey(frames)

	raw := p.providers.DetectChords(ctx, AudioInput{
		Samples:       samples,
		SampleRate:    p.cfg.Chroma.SampleRate,
		Frames:        frames,
		FrameDuration: frameDuration,
	})

	filtered, err := p.filter.Filter(raw)
	if err != nil {
		return nil, err
	}

	var boundaries []float64
	if p.cfg.Structure.UseAudioBoundaries && len(frames) > 0 {
		boundaries = chart.NoveltyBoundaries(frames, frameDuration, p.cfg.Classifier.WindowFrames)
	}

	sections, err := p.segmenter.SegmentWithBoundaries(segments, duration, boundaries)
	if err != nil {
		return nil, err
	}

	aligned, err := p.aligner.Align(filtered, segments)
	if err != nil {
		return nil, err
	}

	chartText, annotated := p.renderer.RenderAnnotated(sections, aligned, title, key)

	p.logger.Info("chart generated", logging.Fields{
		"title":    title,
		"key":      key,
		"chords":   len(filtered),
		"sections": len(sections),
		"duration": duration,
	})

	return &Result{
		Title:    title,
		Key:      key,
		Chart:    chartText,
		Chords:   filtered,
		Sections: sections,
		Aligned:  annotated,
		Duration: duration,
	}, nil
}

// ProcessFile decodes an audio file and runs Process. A file that cannot
// be decoded degrades the same way missing audio does instead of failing
// the chart.
func (p *Pipeline) ProcessFile(ctx context.Context, audioPath string, segments []model.TranscriptSegment, title string) (*Result, error) {
	decoderConfig := transcode.DefaultDecoderConfig()
	decoderConfig.TargetSampleRate = p.cfg.Chroma.SampleRate

	var samples []float64
	audio, err := transcode.NewDecoder(decoderConfig).DecodeFile(ctx, audioPath)
	if err != nil {
		p.logger.Warn("audio unreadable, charting lyrics only", logging.Fields{
			"path":  audioPath,
			"error": err.Error(),
		})
	} else {
		samples = audio.PCM
	}

	return p.Process(ctx, samples, segments, title)
}

// extractFrames computes the chromagram, degrading to no frames when the
// audio is empty or too short
func (p *Pipeline) extractFrames(samples []float64) ([][]float64, float64) {
	if len(samples) == 0 {
		return nil, 0
	}

	frames, err := p.extractor.Frames(samples, p.cfg.Chroma.WindowSize, p.cfg.Chroma.HopSize)
	if err != nil {
		p.logger.Warn("chroma extraction failed", logging.Fields{"error": err.Error()})
		return nil, 0
	}
	return frames, p.extractor.FrameDuration(p.cfg.Chroma.HopSize)
}
