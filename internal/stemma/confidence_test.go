package stemma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eggphy/eggphy-cli/internal/model"
)

func f64(v float64) *float64 { return &v }

func TestConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		witness      *model.Witness
		wantScore    float64
		wantAssessed bool
	}{
		{
			name:         "nil witness",
			witness:      nil,
			wantScore:    0,
			wantAssessed: false,
		},
		{
			name:         "empty witness",
			witness:      &model.Witness{},
			wantScore:    0,
			wantAssessed: false,
		},
		{
			name:         "primary confidence used when positive",
			witness:      &model.Witness{Confidence: f64(0.85)},
			wantScore:    0.85,
			wantAssessed: true,
		},
		{
			name:         "score above one clamps to one",
			witness:      &model.Witness{Confidence: f64(5)},
			wantScore:    1,
			wantAssessed: true,
		},
		{
			name:         "negative overall clamps to zero",
			witness:      &model.Witness{AnalysisConfidence: &model.AnalysisConfidence{OverallConfidence: f64(-0.3)}},
			wantScore:    0,
			wantAssessed: true,
		},
		{
			name: "zero primary falls back to overall",
			witness: &model.Witness{
				Confidence:         f64(0),
				AnalysisConfidence: &model.AnalysisConfidence{OverallConfidence: f64(0.6)},
			},
			wantScore:    0.6,
			wantAssessed: true,
		},
		{
			name:         "zero primary alone still counts as assessed",
			witness:      &model.Witness{Confidence: f64(0)},
			wantScore:    0,
			wantAssessed: true,
		},
		{
			name: "sub-score alone marks assessed without a score",
			witness: &model.Witness{
				AnalysisConfidence: &model.AnalysisConfidence{TextCompleteness: f64(0.7)},
			},
			wantScore:    0,
			wantAssessed: true,
		},
		{
			name: "non-finite overall is ignored",
			witness: &model.Witness{
				AnalysisConfidence: &model.AnalysisConfidence{OverallConfidence: f64(math.NaN())},
			},
			wantScore:    0,
			wantAssessed: true,
		},
		{
			name: "primary beats overall when both present",
			witness: &model.Witness{
				Confidence:         f64(0.9),
				AnalysisConfidence: &model.AnalysisConfidence{OverallConfidence: f64(0.2)},
			},
			wantScore:    0.9,
			wantAssessed: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Confidence(tt.witness)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantAssessed, got.Assessed)
		})
	}
}
