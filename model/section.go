package model

import "fmt"

// SectionType classifies a span of the song
type SectionType string

const (
	SectionIntro  SectionType = "intro"
	SectionVerse  SectionType = "verse"
	SectionChorus SectionType = "chorus"
	SectionBridge SectionType = "bridge"
	SectionOutro  SectionType = "outro"
)

// Section is a contiguous span of the song timeline. Segments holds the
// transcript lines the span covers; intro and outro spans have none.
type Section struct {
	Type     SectionType         `json:"type"`
	Number   int                 `json:"number,omitempty"`
	Start    float64             `json:"start"`
	End      float64             `json:"end"`
	Segments []TranscriptSegment `json:"segments"`
}

// Label renders the section heading. Verses always carry their ordinal,
// a repeated chorus carries one from the second occurrence on.
func (s Section) Label() string {
	switch s.Type {
	case SectionVerse:
		return fmt.Sprintf("[Verse %d]", s.Number)
	case SectionChorus:
		if s.Number > 1 {
			return fmt.Sprintf("[Chorus %d]", s.Number)
		}
		return "[Chorus]"
	case SectionIntro:
		return "[Intro]"
	case SectionBridge:
		return "[Bridge]"
	case SectionOutro:
		return "[Outro]"
	default:
		return fmt.Sprintf("[%s]", s.Type)
	}
}
