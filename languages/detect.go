package languages

import (
	"fmt"
	"strings"

	"cmscore/models"

	lingua "github.com/pemistahl/lingua-go"
	log "github.com/sirupsen/logrus"
)

// Detector guesses which catalog language a text is written in
type Detector struct {
	detector  lingua.LanguageDetector
	targets   map[lingua.Language]*models.Language
	threshold float64
}

// NewDetector builds a detector restricted to the catalog languages lingua
// knows about. Catalog languages without a matching ISO code are skipped.
func NewDetector(catalog *Catalog, threshold float64) *Detector {
	supported := getSupportedLanguages()
	targets := make(map[lingua.Language]*models.Language)

	for _, lang := range catalog.List() {
		if linguaLang, ok := isoToLingua(lang.Iso, supported); ok {
			targets[linguaLang] = lang
		}
	}

	candidates := make([]lingua.Language, 0, len(targets))
	for linguaLang := range targets {
		candidates = append(candidates, linguaLang)
	}
	// lingua needs at least two languages to choose between
	if len(candidates) < 2 {
		candidates = lingua.AllLanguages()
	}

	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			WithMinimumRelativeDistance(0.25).
			Build(),
		targets:   targets,
		threshold: threshold,
	}
}

// Detect returns the catalog language with the highest confidence, provided
// it reaches the threshold.
func (d *Detector) Detect(text string) (*models.Language, float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, 0, fmt.Errorf("%w: no text to detect", models.ErrValidation)
	}

	var highestConf float64
	var detected *models.Language

	for linguaLang, lang := range d.targets {
		conf := d.detector.ComputeLanguageConfidence(text, linguaLang)
		if conf > highestConf {
			highestConf = conf
			detected = lang
		}
	}

	if detected == nil || highestConf < d.threshold {
		return nil, highestConf, fmt.Errorf("%w: no language above %.2f confidence", models.ErrNotFound, d.threshold)
	}

	log.WithFields(log.Fields{
		"language":   detected.Code,
		"confidence": highestConf,
		"threshold":  d.threshold,
	}).Debug("Detected language")

	return detected, highestConf, nil
}

// Map every lingua language to its lower case ISO 639-1 code
func getSupportedLanguages() map[lingua.Language]string {
	languages := make(map[lingua.Language]string)
	for _, lang := range lingua.AllLanguages() {
		languages[lang] = strings.ToLower(lang.IsoCode639_1().String())
	}
	return languages
}

func isoToLingua(code string, languages map[lingua.Language]string) (lingua.Language, bool) {
	for lang, isoCode := range languages {
		if isoCode == code {
			return lang, true
		}
	}
	return lingua.Unknown, false
}
