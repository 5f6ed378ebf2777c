// Package dataset loads the witness collection: a static JSON file first,
// a legacy HTTP endpoint as best-effort fallback, and a built-in sample as
// the last resort. Loading never fails; at worst the caller gets the sample
// or an empty collection.
package dataset

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eggphy/eggphy-cli/internal/config"
	"github.com/eggphy/eggphy-cli/internal/model"
)

// Loader resolves the witness collection from its configured sources.
type Loader struct {
	path        string
	fallbackURL string
	maxRetries  int
	client      *http.Client
	limiter     *rate.Limiter
}

// New builds a Loader from the data configuration.
func New(cfg config.DataConfig) *Loader {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 1
	}
	return &Loader{
		path:        cfg.Path,
		fallbackURL: cfg.FallbackURL,
		maxRetries:  cfg.MaxRetries,
		client:      &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(rate.Limit(perSec), 1),
	}
}

// Load returns the witness collection. Source failures are logged and the
// next source tried; the built-in sample is the final fallback.
func (l *Loader) Load(ctx context.Context) []model.Witness {
	if l.path != "" {
		witnesses, err := LoadFile(l.path)
		if err == nil {
			zap.L().Info("loaded witness dataset",
				zap.String("path", l.path),
				zap.Int("count", len(witnesses)),
			)
			return witnesses
		}
		zap.L().Warn("dataset file unavailable", zap.String("path", l.path), zap.Error(err))
	}

	if l.fallbackURL != "" {
		witnesses, err := l.fetch(ctx)
		if err == nil {
			zap.L().Info("loaded witness dataset from fallback endpoint",
				zap.String("url", l.fallbackURL),
				zap.Int("count", len(witnesses)),
			)
			return witnesses
		}
		zap.L().Warn("fallback endpoint unavailable", zap.String("url", l.fallbackURL), zap.Error(err))
	}

	zap.L().Warn("no dataset source available, using built-in sample")
	return Sample()
}

// LoadFile reads and decodes a witness JSON file.
func LoadFile(path string) ([]model.Witness, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read file")
	}
	return Decode(data)
}

// fetch performs the best-effort legacy HTTP GET, rate limited and retried.
func (l *Loader) fetch(ctx context.Context) ([]model.Witness, error) {
	var lastErr error
	attempts := l.maxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "dataset: rate limit wait")
		}
		witnesses, err := l.fetchOnce(ctx)
		if err == nil {
			return witnesses, nil
		}
		lastErr = err
		zap.L().Debug("dataset fetch attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return nil, lastErr
}

func (l *Loader) fetchOnce(ctx context.Context) ([]model.Witness, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.fallbackURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: build request")
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: fetch")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("dataset: fetch status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read body")
	}
	return Decode(data)
}

// Decode parses a JSON array of witness objects, normalizes each record, and
// drops duplicate witness ids (first occurrence wins).
func Decode(data []byte) ([]model.Witness, error) {
	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		return nil, eris.Wrap(err, "dataset: decode collection")
	}

	witnesses := make([]model.Witness, 0, len(rawRecords))
	seen := make(map[string]struct{}, len(rawRecords))
	for i, raw := range rawRecords {
		w, err := model.DecodeWitness(raw)
		if err != nil {
			zap.L().Warn("skipping malformed witness record", zap.Int("index", i), zap.Error(err))
			continue
		}
		Normalize(&w)
		if id := w.ID(); id != "" {
			if _, dup := seen[id]; dup {
				zap.L().Warn("dropping duplicate witness id", zap.String("witness_id", id))
				continue
			}
			seen[id] = struct{}{}
		}
		witnesses = append(witnesses, w)
	}
	return witnesses, nil
}

// Normalize repairs known dataset irregularities: some witnesses nest their
// analysis_confidence under linguistic_analysis, and some carry component
// scores without an overall value.
func Normalize(w *model.Witness) {
	if w == nil {
		return
	}
	if !usable(w.AnalysisConfidence) {
		if nested := nestedConfidence(w.LinguisticAnalysis); usable(nested) {
			w.AnalysisConfidence = nested
		}
	}
	backfillOverall(w.AnalysisConfidence)
}

// usable reports whether an analysis confidence record carries any numeric
// field.
func usable(ac *model.AnalysisConfidence) bool {
	if ac == nil {
		return false
	}
	return ac.OverallConfidence != nil ||
		ac.TextCompleteness != nil ||
		ac.ExtractionReliability != nil ||
		ac.RelationshipIndicators != nil ||
		ac.LinguisticAnalysis != nil
}

// nestedConfidence extracts linguistic_analysis.analysis_confidence when the
// dataset misplaced it there.
func nestedConfidence(la map[string]any) *model.AnalysisConfidence {
	if la == nil {
		return nil
	}
	nested, ok := la["analysis_confidence"].(map[string]any)
	if !ok {
		return nil
	}
	return &model.AnalysisConfidence{
		OverallConfidence:      numField(nested, "overall_confidence"),
		TextCompleteness:       numField(nested, "text_completeness"),
		ExtractionReliability:  numField(nested, "extraction_reliability"),
		RelationshipIndicators: numField(nested, "relationship_indicators"),
		LinguisticAnalysis:     numField(nested, "linguistic_analysis"),
	}
}

func numField(m map[string]any, key string) *float64 {
	if v, ok := m[key].(float64); ok {
		return &v
	}
	return nil
}

// backfillOverall computes overall_confidence as the mean of the component
// scores when it is absent.
func backfillOverall(ac *model.AnalysisConfidence) {
	if ac == nil || ac.OverallConfidence != nil {
		return
	}
	var sum float64
	var n int
	for _, v := range []*float64{
		ac.TextCompleteness,
		ac.ExtractionReliability,
		ac.RelationshipIndicators,
		ac.LinguisticAnalysis,
	} {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return
	}
	mean := sum / float64(n)
	ac.OverallConfidence = &mean
}

// Sample is the built-in single-witness fallback shown when no dataset can
// be loaded.
func Sample() []model.Witness {
	conf := 0.96
	return []model.Witness{
		{
			WitnessID:  "W01",
			Date:       1000,
			Author:     "Constantinus VII, Cassianus Bassus",
			Language:   "Greek",
			Genre:      "Agriculture / House Economy",
			SourceWork: "Laur. Plut. 59.32, Geoponikon",
			Ingredients: &model.Ingredients{
				Simple: []string{"galls", "alum", "vinegar", "wax"},
			},
			Confidence:     &conf,
			ProcessSummary: "Grind galls and alum with vinegar, write on egg, dry in sun, soak in brine, boil",
			Attribution:    "Africanus",
		},
	}
}
