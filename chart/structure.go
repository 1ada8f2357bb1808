package chart

import (
	"math"
	"strings"

	"github.com/RyanBlaney/sonido-charts/logging"
	"github.com/RyanBlaney/sonido-charts/model"
)

// SegmenterParams holds structure segmentation parameters
type SegmenterParams struct {
	MinTextLength       int     `json:"min_text_length"`      // Shortest lyric line that can vote on repetition
	SimilarityThreshold float64 `json:"similarity_threshold"` // Text similarity above which two lines are the same chorus
	EdgeGap             float64 `json:"edge_gap"`             // Leading/trailing instrumental span that earns an intro/outro
	BoundaryTolerance   float64 `json:"boundary_tolerance"`   // Max drift when snapping edges to audio boundaries
}

// DefaultSegmenterParams returns the standard segmentation settings
func DefaultSegmenterParams() SegmenterParams {
	return SegmenterParams{
		MinTextLength:       10,
		SimilarityThreshold: 0.7,
		EdgeGap:             3.0,
		BoundaryTolerance:   3.0,
	}
}

// StructureSegmenter groups transcript lines into verse and chorus
// sections by lyric repetition, and frames them with intro and outro
// sections when the audio clearly starts or ends without lyrics.
type StructureSegmenter struct {
	params SegmenterParams
	logger logging.Logger
}

// NewStructureSegmenter creates a segmenter with default parameters
func NewStructureSegmenter() *StructureSegmenter {
	return NewStructureSegmenterWithParams(DefaultSegmenterParams())
}

// NewStructureSegmenterWithParams creates a segmenter with custom parameters
func NewStructureSegmenterWithParams(params SegmenterParams) *StructureSegmenter {
	return &StructureSegmenter{
		params: params,
		logger: logging.WithFields(logging.Fields{"component": "structure_segmenter"}),
	}
}

// Segment partitions [0, audioDuration] into sections. Lines whose
// trimmed text repeats elsewhere in the song (similarity above the
// threshold, both lines at least MinTextLength characters) become
// choruses, everything else verses. Consecutive same-type lines share a
// section. The sections tile the timeline without gaps.
//
// An empty transcript yields no sections. Invalid timestamps are
// rejected with an error.
func (s *StructureSegmenter) Segment(segments []model.TranscriptSegment, audioDuration float64) ([]model.Section, error) {
	return s.SegmentWithBoundaries(segments, audioDuration, nil)
}

// SegmentWithBoundaries is Segment with an optional secondary signal:
// audio novelty boundary times. Lyric grouping alone decides section
// identity; boundaries only refine the intro and outro edges when one
// lands within BoundaryTolerance of the lyric-derived edge.
func (s *StructureSegmenter) SegmentWithBoundaries(segments []model.TranscriptSegment, audioDuration float64, boundaries []float64) ([]model.Section, error) {
	if err := model.ValidateSegments(segments); err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return []model.Section{}, nil
	}

	chorusLines := s.findChorusLines(segments)

	var sections []model.Section
	verseCount, chorusCount := 0, 0
	var current *model.Section

	for i, seg := range segments {
		t := model.SectionVerse
		if chorusLines[i] {
			t = model.SectionChorus
		}

		if current != nil && current.Type == t {
			current.End = seg.End
			current.Segments = append(current.Segments, seg)
			continue
		}

		if current != nil {
			sections = append(sections, *current)
		}

		number := 0
		switch t {
		case model.SectionVerse:
			verseCount++
			number = verseCount
		case model.SectionChorus:
			chorusCount++
			number = chorusCount
		}

		current = &model.Section{
			Type:     t,
			Number:   number,
			Start:    seg.Start,
			End:      seg.End,
			Segments: []model.TranscriptSegment{seg},
		}
	}
	sections = append(sections, *current)

	sections = s.frameWithEdges(sections, audioDuration)
	sections = s.snapEdges(sections, boundaries)
	closeGaps(sections, audioDuration)

	s.logger.Debug("segmented transcript", logging.Fields{
		"segments": len(segments),
		"sections": len(sections),
		"choruses": chorusCount,
	})

	return sections, nil
}

// findChorusLines marks every segment whose text repeats elsewhere
func (s *StructureSegmenter) findChorusLines(segments []model.TranscriptSegment) map[int]bool {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = strings.ToLower(strings.TrimSpace(seg.Text))
	}

	chorus := make(map[int]bool)
	for i := 0; i < len(texts); i++ {
		if len(texts[i]) < s.params.MinTextLength {
			continue
		}
		for j := i + 1; j < len(texts); j++ {
			if len(texts[j]) < s.params.MinTextLength {
				continue
			}
			if similarityRatio(texts[i], texts[j]) > s.params.SimilarityThreshold {
				chorus[i] = true
				chorus[j] = true
			}
		}
	}
	return chorus
}

// frameWithEdges adds intro and outro sections when the song starts or
// ends with a long enough instrumental span
func (s *StructureSegmenter) frameWithEdges(sections []model.Section, audioDuration float64) []model.Section {
	if len(sections) == 0 {
		return sections
	}

	if sections[0].Start > s.params.EdgeGap {
		intro := model.Section{
			Type:     model.SectionIntro,
			Start:    0,
			End:      sections[0].Start,
			Segments: []model.TranscriptSegment{},
		}
		sections = append([]model.Section{intro}, sections...)
	}

	lastEnd := sections[len(sections)-1].End
	if audioDuration-lastEnd > s.params.EdgeGap {
		sections = append(sections, model.Section{
			Type:     model.SectionOutro,
			Start:    lastEnd,
			End:      audioDuration,
			Segments: []model.TranscriptSegment{},
		})
	}

	return sections
}

// snapEdges moves the intro/outro edge to the nearest audio boundary
// within tolerance. Only instrumental edges move; lyric-derived section
// identity is never revisited.
func (s *StructureSegmenter) snapEdges(sections []model.Section, boundaries []float64) []model.Section {
	if len(boundaries) == 0 || len(sections) < 2 {
		return sections
	}

	if sections[0].Type == model.SectionIntro {
		if b, ok := nearestBoundary(boundaries, sections[0].End, s.params.BoundaryTolerance); ok && b > sections[0].Start {
			sections[0].End = b
			sections[1].Start = b
		}
	}

	last := len(sections) - 1
	if sections[last].Type == model.SectionOutro {
		if b, ok := nearestBoundary(boundaries, sections[last].Start, s.params.BoundaryTolerance); ok && b < sections[last].End {
			sections[last].Start = b
			sections[last-1].End = b
		}
	}

	return sections
}

func nearestBoundary(boundaries []float64, t, tolerance float64) (float64, bool) {
	best := 0.0
	bestDist := tolerance
	found := false
	for _, b := range boundaries {
		if d := math.Abs(b - t); d < bestDist {
			best = b
			bestDist = d
			found = true
		}
	}
	return best, found
}

// closeGaps stretches the sections so they tile [0, audioDuration]:
// the first starts at zero, each ends where the next begins, the last
// ends at the song's end.
func closeGaps(sections []model.Section, audioDuration float64) {
	if len(sections) == 0 {
		return
	}

	sections[0].Start = 0
	for i := 0; i < len(sections)-1; i++ {
		sections[i].End = sections[i+1].Start
	}
	if audioDuration > sections[len(sections)-1].End {
		sections[len(sections)-1].End = audioDuration
	}
}
