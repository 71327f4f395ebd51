package langdetect

import (
	"strings"
	"sync"

	lingua "github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// LooksEnglish reports whether text is more plausibly English than anything
// else lingua knows about. Mizo has no lingua model, so Mizo input comes back
// as some other language (or nothing) and the caller treats it as Mizo. Very
// short inputs are too ambiguous to call and report false.
func LooksEnglish(text string) bool {
	sample := strings.TrimSpace(text)
	if len(sample) < 3 {
		return false
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return false
	}
	return language == lingua.English
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithPreloadedLanguageModels().
			Build()
	})
	return detector
}
