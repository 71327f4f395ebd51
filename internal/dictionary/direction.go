package dictionary

import (
	"fmt"
	"strings"
)

// Direction selects which of the two supported language pairs a translation
// request targets.
type Direction int

const (
	MizoToEnglish Direction = iota
	EnglishToMizo
)

// ISO 639 codes used by the upstream provider. Mizo is "lus" (Lushai).
const (
	englishCode = "en"
	mizoCode    = "lus"
)

// String returns the short wire form used by the batch API.
func (d Direction) String() string {
	if d == EnglishToMizo {
		return "en-to-mizo"
	}
	return "mizo-to-en"
}

// Label returns the long form used by the single-word endpoints.
func (d Direction) Label() string {
	if d == EnglishToMizo {
		return "english-to-mizo"
	}
	return "mizo-to-english"
}

// Codes resolves the source and target language codes for the upstream call.
func (d Direction) Codes() (source, target string) {
	if d == EnglishToMizo {
		return englishCode, mizoCode
	}
	return mizoCode, englishCode
}

// ParseDirection accepts both the short and the long wire forms.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mizo-to-en", "mizo-to-english":
		return MizoToEnglish, nil
	case "en-to-mizo", "english-to-mizo":
		return EnglishToMizo, nil
	default:
		return MizoToEnglish, fmt.Errorf("unknown direction: %q", raw)
	}
}
