package chart

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/RyanBlaney/sonido-charts/model"
)

// RenderParams holds chart rendering parameters
type RenderParams struct {
	SeparatorWidth int     `json:"separator_width"` // Width of the header rule
	ChordJoin      string  `json:"chord_join"`      // Separator between chords on instrumental lines
	WordTimeWindow float64 `json:"word_time_window"` // Max chord-to-word time skew for a grid placement
}

// DefaultRenderParams returns the standard rendering settings
func DefaultRenderParams() RenderParams {
	return RenderParams{
		SeparatorWidth: 40,
		ChordJoin:      "  ",
		WordTimeWindow: 1.0,
	}
}

// ChartRenderer lays aligned chords over transcript lines as a
// fixed-width text chart: each lyric line is preceded by a chord line
// whose labels sit at the column of the word they belong to.
type ChartRenderer struct {
	params RenderParams
}

// NewChartRenderer creates a renderer with default parameters
func NewChartRenderer() *ChartRenderer {
	return NewChartRendererWithParams(DefaultRenderParams())
}

// NewChartRendererWithParams creates a renderer with custom parameters
func NewChartRendererWithParams(params RenderParams) *ChartRenderer {
	return &ChartRenderer{params: params}
}

// Render produces the chart text
func (r *ChartRenderer) Render(sections []model.Section, aligned []model.AlignedChord, title, key string) string {
	text, _ := r.RenderAnnotated(sections, aligned, title, key)
	return text
}

// RenderAnnotated produces the chart text plus a copy of the aligned
// chords in which every chord placed on a chord line carries the index
// of its lyric line. With no sections at all the output is just the
// header block.
func (r *ChartRenderer) RenderAnnotated(sections []model.Section, aligned []model.AlignedChord, title, key string) (string, []model.AlignedChord) {
	annotated := make([]model.AlignedChord, len(aligned))
	copy(annotated, aligned)

	lines := []string{
		"Title: " + title,
		"Key: " + key,
		"",
		strings.Repeat("-", r.params.SeparatorWidth),
		"",
	}

	lineNo := 0
	for si, section := range sections {
		lastSection := si == len(sections)-1
		lines = append(lines, section.Label())

		if len(section.Segments) == 0 {
			if idxs := chordsInRange(annotated, section.Start, section.End, lastSection); len(idxs) > 0 {
				lines = append(lines, r.chordRun(annotated, idxs))
			}
			lines = append(lines, "", "", "")
			continue
		}

		for gi, seg := range section.Segments {
			includeEnd := lastSection && gi == len(section.Segments)-1
			idxs := chordsInRange(annotated, seg.Start, seg.End, includeEnd)
			text := strings.TrimSpace(seg.Text)

			if len(seg.Words) == 0 || len(idxs) == 0 {
				if len(idxs) > 0 {
					lines = append(lines, r.chordRun(annotated, idxs))
				}
				lines = append(lines, text)
			} else {
				lines = append(lines, r.chordGrid(text, seg.Words, annotated, idxs, lineNo), text)
			}
			lineNo++
			lines = append(lines, "")
		}
		lines = append(lines, "", "", "")
	}

	return strings.Join(lines, "\n"), annotated
}

// chordsInRange returns the indices of chords whose time falls in
// [start, end), or [start, end] when includeEnd is set. Sections tile
// the timeline with shared boundaries, so only the final range may
// claim its end point.
func chordsInRange(aligned []model.AlignedChord, start, end float64, includeEnd bool) []int {
	var idxs []int
	for i, c := range aligned {
		if c.Time >= start && (c.Time < end || (includeEnd && c.Time == end)) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// chordRun renders chords without lyric anchors as a plain sequence
func (r *ChartRenderer) chordRun(aligned []model.AlignedChord, idxs []int) string {
	labels := make([]string, 0, len(idxs))
	for _, i := range idxs {
		if label := formatChord(aligned[i].Chord); label != "" {
			labels = append(labels, label)
		}
	}
	return strings.Join(labels, r.params.ChordJoin)
}

// wordPosition is a word's resolved column span in its lyric line
type wordPosition struct {
	word     string
	start    float64
	position int
}

// chordGrid builds the chord line for one lyric line. Each chord is
// placed at the column of its matched word; a word position is consumed
// once, placed characters are never overwritten, and trailing spaces are
// trimmed. Columns count runes, not bytes, so multibyte lyrics keep
// chords over their words. Placed chords get lineNo recorded in the
// annotated slice.
func (r *ChartRenderer) chordGrid(text string, words []model.WordTiming, annotated []model.AlignedChord, idxs []int, lineNo int) string {
	positions := locateWords(text, words)
	grid := []rune(strings.Repeat(" ", utf8.RuneCountInString(text)))
	used := make(map[int]bool)

	for _, ci := range idxs {
		chord := annotated[ci]
		if chord.Word == nil || chord.Chord == "" {
			continue
		}
		label := formatChord(chord.Chord)
		if label == "" {
			continue
		}
		target := strings.ToLower(strings.TrimSpace(*chord.Word))

		// Prefer the occurrence of the word nearest in time, fall back
		// to the first unused occurrence
		match := -1
		for pi, wp := range positions {
			if used[pi] || !strings.EqualFold(strings.TrimSpace(wp.word), target) {
				continue
			}
			if math.Abs(wp.start-chord.Time) < r.params.WordTimeWindow {
				match = pi
				break
			}
		}
		if match < 0 {
			for pi, wp := range positions {
				if !used[pi] && strings.EqualFold(strings.TrimSpace(wp.word), target) {
					match = pi
					break
				}
			}
		}
		if match < 0 {
			continue
		}
		used[match] = true
		annotated[ci].LineIndex = intPtr(lineNo)

		for k, c := range []rune(label) {
			p := positions[match].position + k
			if p < len(grid) && grid[p] == ' ' {
				grid[p] = c
			}
		}
	}

	return strings.TrimRight(string(grid), " ")
}

// locateWords resolves each timed word to its rune column in the lyric
// line. The search walks left to right so repeated words land on
// successive occurrences; punctuation-stripped matching runs first
// because transcribed words often carry trailing punctuation the lyric
// line spells differently.
func locateWords(text string, words []model.WordTiming) []wordPosition {
	lower := strings.ToLower(text)
	positions := make([]wordPosition, 0, len(words))
	cursor := 0

	for _, w := range words {
		token := strings.TrimSpace(w.Word)
		if token == "" || cursor > len(lower) {
			continue
		}
		lowerToken := strings.ToLower(token)
		clean := strings.Trim(lowerToken, ".,!?;:\"'-")

		search := lower[cursor:]
		pos := -1
		if clean != "" {
			pos = strings.Index(search, clean)
		}
		if pos < 0 {
			pos = strings.Index(search, lowerToken)
		}
		if pos < 0 {
			continue
		}

		actual := cursor + pos
		positions = append(positions, wordPosition{
			word:     token,
			start:    w.Start,
			position: utf8.RuneCountInString(lower[:actual]),
		})
		cursor = actual + len(token)
	}

	return positions
}

// formatChord strips recognizer artifact markers from a label
func formatChord(chord string) string {
	return strings.ReplaceAll(chord, "*", "")
}
