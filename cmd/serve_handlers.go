package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eggphy/eggphy-cli/internal/facet"
	"github.com/eggphy/eggphy-cli/internal/model"
	"github.com/eggphy/eggphy-cli/internal/stemma"
	"github.com/eggphy/eggphy-cli/internal/store"
)

// apiHandler serves the witness JSON API over the session's read-only
// collection.
type apiHandler struct {
	witnesses []model.Witness
	store     store.Store
}

// witnessSummary is the card-level projection of a witness plus its derived
// fields, matching what the grid and family views render.
type witnessSummary struct {
	WitnessID        string            `json:"witness_id"`
	Date             int               `json:"date"`
	Author           string            `json:"author"`
	Language         string            `json:"language"`
	Genre            string            `json:"genre"`
	SourceWork       string            `json:"source_work"`
	Ingredients      []string          `json:"ingredients,omitempty"`
	ProcessSummary   string            `json:"process_summary,omitempty"`
	Family           model.FamilyLabel `json:"family"`
	FamilyName       string            `json:"family_name"`
	FamilySymbol     string            `json:"family_symbol"`
	IngredientFamily string            `json:"ingredient_family"`
	Confidence       float64           `json:"confidence"`
	Assessed         bool              `json:"assessed"`
}

func summarize(w *model.Witness) witnessSummary {
	family := stemma.Classify(w)
	info := model.Family(family)
	assessment := stemma.Confidence(w)
	return witnessSummary{
		WitnessID:        w.ID(),
		Date:             w.DateYear(),
		Author:           w.AuthorName(),
		Language:         w.LanguageName(),
		Genre:            w.GenreName(),
		SourceWork:       w.SourceWorkName(),
		Ingredients:      w.IngredientNames(),
		ProcessSummary:   w.ProcessSummary,
		Family:           family,
		FamilyName:       info.Name,
		FamilySymbol:     info.Symbol,
		IngredientFamily: stemma.IngredientFamily(w),
		Confidence:       assessment.Score,
		Assessed:         assessment.Assessed,
	}
}

func summarizeAll(witnesses []model.Witness) []witnessSummary {
	summaries := make([]witnessSummary, 0, len(witnesses))
	for i := range witnesses {
		summaries = append(summaries, summarize(&witnesses[i]))
	}
	return summaries
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func (h *apiHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// selectionFromQuery maps repeatable facet query parameters onto a
// Selection.
func selectionFromQuery(q url.Values) facet.Selection {
	return facet.Selection{
		Centuries:          facet.NewSet(q["century"]...),
		Languages:          facet.NewSet(q["language"]...),
		Genres:             facet.NewSet(q["genre"]...),
		IngredientFamilies: facet.NewSet(q["ingredient_family"]...),
		Ingredients:        facet.NewSet(q["ingredient"]...),
		BoilingTimings:     facet.NewSet(q["boiling_timing"]...),
		DryingMethods:      facet.NewSet(q["drying_method"]...),
		SoakingMediums:     facet.NewSet(q["soaking_medium"]...),
		SoakingDurations:   facet.NewSet(q["soaking_duration"]...),
	}
}

func (h *apiHandler) listWitnesses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filtered := facet.Apply(h.witnesses, selectionFromQuery(q), q.Get("q"), facet.ParseSortKey(q.Get("sort")))
	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(filtered),
		"witnesses": summarizeAll(filtered),
	})
}

func (h *apiHandler) findWitness(id string) *model.Witness {
	for i := range h.witnesses {
		if h.witnesses[i].ID() == id {
			return &h.witnesses[i]
		}
	}
	return nil
}

func (h *apiHandler) getWitness(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	witness := h.findWitness(id)
	if witness == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "witness not found"})
		return
	}
	family := stemma.Classify(witness)
	writeJSON(w, http.StatusOK, map[string]any{
		"witness":           witness.Document(),
		"family":            family,
		"family_info":       model.Family(family),
		"confidence":        stemma.Confidence(witness),
		"ingredient_family": stemma.IngredientFamily(witness),
	})
}

func (h *apiHandler) relatedWitnesses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	witness := h.findWitness(id)
	if witness == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "witness not found"})
		return
	}
	related := stemma.Related(h.witnesses, witness, stemma.DefaultRelatedLimit)
	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(related),
		"witnesses": summarizeAll(related),
	})
}

func (h *apiHandler) listFamilies(w http.ResponseWriter, r *http.Request) {
	groups := stemma.FamilyGroups(h.witnesses)
	out := make([]map[string]any, 0, len(groups))
	for _, g := range groups {
		out = append(out, map[string]any{
			"info":    g.Info,
			"count":   len(g.Members),
			"members": summarizeAll(g.Members),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"families": out})
}

// prefsBody is the persisted UI state: theme and font scale. Neither ever
// affects classification or filtering.
type prefsBody struct {
	Theme     string  `json:"theme"`
	FontScale float64 `json:"font_scale"`
}

const (
	minFontScale = 0.8
	maxFontScale = 1.6
)

func (h *apiHandler) getPrefs(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "preference store unavailable"})
		return
	}
	theme, err := h.store.GetPref(r.Context(), store.PrefTheme)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "read preferences"})
		return
	}
	scaleStr, err := h.store.GetPref(r.Context(), store.PrefFontScale)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "read preferences"})
		return
	}
	scale := 1.0
	if parsed, err := strconv.ParseFloat(scaleStr, 64); err == nil && parsed != 0 {
		scale = parsed
	}
	writeJSON(w, http.StatusOK, prefsBody{Theme: theme, FontScale: scale})
}

func (h *apiHandler) putPrefs(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "preference store unavailable"})
		return
	}
	var body prefsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	switch body.Theme {
	case "", "light", "dark":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "theme must be light or dark"})
		return
	}
	if body.FontScale != 0 {
		if body.FontScale < minFontScale {
			body.FontScale = minFontScale
		}
		if body.FontScale > maxFontScale {
			body.FontScale = maxFontScale
		}
	}

	if body.Theme != "" {
		if err := h.store.SetPref(r.Context(), store.PrefTheme, body.Theme); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "write preferences"})
			return
		}
	}
	if body.FontScale != 0 {
		if err := h.store.SetPref(r.Context(), store.PrefFontScale, strconv.FormatFloat(body.FontScale, 'f', -1, 64)); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "write preferences"})
			return
		}
	}
	h.getPrefs(w, r)
}
