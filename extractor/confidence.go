package extractor

import (
	"github.com/surejsai/GenericProductFluxer/cleaner"
	"github.com/surejsai/GenericProductFluxer/models"
)

// defaultBase applies to methods without their own bucket.
const defaultBase = 0.50

var baseConfidence = map[string]float64{
	models.MethodJSONLD:     0.95,
	models.MethodJavaScript: 0.90,
	models.MethodSemantic:   0.85,
	models.MethodMeta:       0.60,
	models.MethodBestBlock:  0.50,
}

// Confidence scores a description by the method that found it and its
// length, clamped to [0, 1].
func Confidence(method, text string) float64 {
	score, ok := baseConfidence[method]
	if !ok {
		score = defaultBase
	}
	n := cleaner.RuneLen(text)
	if n >= 200 {
		score += 0.05
	}
	if n >= 500 {
		score += 0.05
	}
	switch {
	case score > 1:
		return 1
	case score < 0:
		return 0
	}
	return score
}
