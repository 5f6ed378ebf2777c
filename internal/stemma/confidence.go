package stemma

import (
	"math"

	"github.com/eggphy/eggphy-cli/internal/model"
)

// Assessment is the resolved analysis confidence of a witness. Score is
// clamped to [0,1]; Assessed reports whether any confidence data exists at
// all, independent of its value.
type Assessment struct {
	Score    float64 `json:"score"`
	Assessed bool    `json:"assessed"`
}

// Confidence resolves a witness's confidence score. The witness-level
// confidence field wins when present and positive; otherwise the analysis
// overall_confidence is used. Malformed input yields {0, false}, never an
// error.
func Confidence(w *model.Witness) Assessment {
	if w == nil {
		return Assessment{}
	}

	var score float64
	if v := w.Confidence; v != nil && finite(*v) && *v > 0 {
		score = *v
	} else if ac := w.AnalysisConfidence; ac != nil && ac.OverallConfidence != nil && finite(*ac.OverallConfidence) {
		score = *ac.OverallConfidence
	}

	return Assessment{
		Score:    clamp01(score),
		Assessed: hasConfidenceData(w),
	}
}

// hasConfidenceData reports whether any confidence source field is present,
// counting the per-component sub-scores even when no overall value exists.
func hasConfidenceData(w *model.Witness) bool {
	if w.Confidence != nil {
		return true
	}
	ac := w.AnalysisConfidence
	if ac == nil {
		return false
	}
	if ac.OverallConfidence != nil {
		return true
	}
	for _, v := range []*float64{
		ac.TextCompleteness,
		ac.ExtractionReliability,
		ac.RelationshipIndicators,
		ac.LinguisticAnalysis,
	} {
		if v != nil && finite(*v) {
			return true
		}
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
