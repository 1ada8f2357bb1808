package tonal

// ChordTemplate represents an ideal chroma pattern for one chord
type ChordTemplate struct {
	Label   string    `json:"label"`
	Pattern []float64 `json:"pattern"` // 12-element binary chroma pattern
}

// maxLabelLength matches the significance filter's label budget; extended
// catalog entries whose names exceed it can never reach a chart, so they
// are not generated.
const maxLabelLength = 5

var rootNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var qualityIntervals = []struct {
	suffix    string
	intervals []int
}{
	{"", []int{0, 4, 7}},       // major
	{"m", []int{0, 3, 7}},      // minor
	{"7", []int{0, 4, 7, 10}},  // dominant 7th
	{"m7", []int{0, 3, 7, 10}}, // minor 7th
	{"sus4", []int{0, 5, 7}},
	{"dim", []int{0, 3, 6}},
}

// BasicTemplates returns the small catalog used by default: all twelve
// major triads plus the six minor triads common in popular keys.
func BasicTemplates() []ChordTemplate {
	templates := make([]ChordTemplate, 0, 18)

	for root, name := range rootNames {
		templates = append(templates, ChordTemplate{
			Label:   name,
			Pattern: patternFor(root, []int{0, 4, 7}),
		})
	}

	for _, name := range []string{"C", "D", "E", "F", "G", "A"} {
		root := rootIndex(name)
		templates = append(templates, ChordTemplate{
			Label:   name + "m",
			Pattern: patternFor(root, []int{0, 3, 7}),
		})
	}

	return templates
}

// ExtendedTemplates returns the larger catalog: major, minor, dominant
// 7th, minor 7th, sus4 and diminished qualities over every root.
func ExtendedTemplates() []ChordTemplate {
	templates := make([]ChordTemplate, 0, len(rootNames)*len(qualityIntervals))

	for _, quality := range qualityIntervals {
		for root, name := range rootNames {
			label := name + quality.suffix
			if len(label) > maxLabelLength {
				continue
			}
			templates = append(templates, ChordTemplate{
				Label:   label,
				Pattern: patternFor(root, quality.intervals),
			})
		}
	}

	return templates
}

func patternFor(root int, intervals []int) []float64 {
	pattern := make([]float64, 12)
	for _, interval := range intervals {
		pattern[(root+interval)%12] = 1.0
	}
	return pattern
}

func rootIndex(name string) int {
	for i, n := range rootNames {
		if n == name {
			return i
		}
	}
	return 0
}
