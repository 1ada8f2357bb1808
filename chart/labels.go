package chart

import "strings"

// NoChordLabel marks spans where a recognizer heard no harmony
const NoChordLabel = "N"

var fundamentalChords = map[string]bool{
	"C": true, "D": true, "E": true, "F": true, "G": true, "A": true, "B": true,
	"Cm": true, "Dm": true, "Em": true, "Fm": true, "Gm": true, "Am": true, "Bm": true,
}

// IsFundamental reports whether the label is a plain natural-root major
// or minor triad. Accidentals are not fundamental.
func IsFundamental(chord string) bool {
	return fundamentalChords[chord]
}

// NormalizeLabel converts recognizer "root:quality" notation to the
// compact notation the rest of the pipeline uses: "C:maj" becomes "C",
// "A:min" becomes "Am", "D:min7" becomes "Dm7", "G:7" becomes "G7".
// Labels without a colon pass through untouched.
func NormalizeLabel(label string) string {
	label = strings.TrimSpace(label)

	root, quality, found := strings.Cut(label, ":")
	if !found {
		return label
	}

	switch quality {
	case "maj", "major", "":
		return root
	case "min", "minor":
		return root + "m"
	case "min7", "minor7":
		return root + "m7"
	case "maj7", "major7":
		return root + "maj7"
	default:
		return root + quality
	}
}
