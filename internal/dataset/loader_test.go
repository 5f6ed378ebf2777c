package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eggphy/eggphy-cli/internal/config"
	"github.com/eggphy/eggphy-cli/internal/model"
)

const collectionJSON = `[
	{"metadata": {"witness_id": "W01", "date": 1000, "language": "Greek"}},
	{"metadata": {"witness_id": "W02", "date": 1652, "language": "German"}},
	{"metadata": {"witness_id": "W01", "date": 9999, "language": "Duplicate"}}
]`

func TestDecode(t *testing.T) {
	t.Parallel()

	witnesses, err := Decode([]byte(collectionJSON))
	require.NoError(t, err)
	require.Len(t, witnesses, 2, "duplicate ids drop, first occurrence wins")
	assert.Equal(t, "W01", witnesses[0].ID())
	assert.Equal(t, 1000, witnesses[0].DateYear())
	assert.Equal(t, "W02", witnesses[1].ID())
}

func TestDecode_RejectsNonArray(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"metadata": {"witness_id": "W01"}}`))
	assert.Error(t, err)
}

func TestDecode_SkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	witnesses, err := Decode([]byte(`[
		{"metadata": {"witness_id": "W01"}},
		"not an object",
		{"metadata": {"witness_id": "W03"}}
	]`))
	require.NoError(t, err)
	require.Len(t, witnesses, 2)
	assert.Equal(t, "W03", witnesses[1].ID())
}

func TestNormalize_LiftsNestedConfidence(t *testing.T) {
	t.Parallel()

	w, err := model.DecodeWitness([]byte(`{
		"metadata": {"witness_id": "W11"},
		"linguistic_analysis": {
			"analysis_confidence": {
				"overall_confidence": 0.85,
				"text_completeness": 0.9
			}
		}
	}`))
	require.NoError(t, err)
	require.Nil(t, w.AnalysisConfidence)

	Normalize(&w)
	require.NotNil(t, w.AnalysisConfidence)
	require.NotNil(t, w.AnalysisConfidence.OverallConfidence)
	assert.InDelta(t, 0.85, *w.AnalysisConfidence.OverallConfidence, 1e-9)
	require.NotNil(t, w.AnalysisConfidence.TextCompleteness)
	assert.InDelta(t, 0.9, *w.AnalysisConfidence.TextCompleteness, 1e-9)
}

func TestNormalize_BackfillsOverallFromComponents(t *testing.T) {
	t.Parallel()

	f := func(v float64) *float64 { return &v }
	w := model.Witness{
		WitnessID: "W12",
		AnalysisConfidence: &model.AnalysisConfidence{
			TextCompleteness:      f(0.8),
			ExtractionReliability: f(0.4),
		},
	}

	Normalize(&w)
	require.NotNil(t, w.AnalysisConfidence.OverallConfidence)
	assert.InDelta(t, 0.6, *w.AnalysisConfidence.OverallConfidence, 1e-9)
}

func TestNormalize_KeepsExistingOverall(t *testing.T) {
	t.Parallel()

	f := func(v float64) *float64 { return &v }
	w := model.Witness{
		WitnessID: "W13",
		AnalysisConfidence: &model.AnalysisConfidence{
			OverallConfidence: f(0.3),
			TextCompleteness:  f(0.9),
		},
	}

	Normalize(&w)
	assert.InDelta(t, 0.3, *w.AnalysisConfidence.OverallConfidence, 1e-9)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "witnesses.json")
	require.NoError(t, os.WriteFile(path, []byte(collectionJSON), 0o644))

	witnesses, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, witnesses, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoad_FallsBackToEndpoint(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(collectionJSON))
	}))
	defer srv.Close()

	loader := New(config.DataConfig{
		Path:        filepath.Join(t.TempDir(), "missing.json"),
		FallbackURL: srv.URL,
		RatePerSec:  100,
	})

	witnesses := loader.Load(context.Background())
	assert.Len(t, witnesses, 2)
}

func TestLoad_RetriesEndpoint(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(collectionJSON))
	}))
	defer srv.Close()

	loader := New(config.DataConfig{
		Path:        filepath.Join(t.TempDir(), "missing.json"),
		FallbackURL: srv.URL,
		MaxRetries:  2,
		RatePerSec:  100,
	})

	witnesses := loader.Load(context.Background())
	assert.Len(t, witnesses, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoad_SampleIsLastResort(t *testing.T) {
	t.Parallel()

	loader := New(config.DataConfig{
		Path: filepath.Join(t.TempDir(), "missing.json"),
	})

	witnesses := loader.Load(context.Background())
	require.Len(t, witnesses, 1)
	assert.Equal(t, "W01", witnesses[0].ID())
	assert.Equal(t, "Greek", witnesses[0].LanguageName())
}
