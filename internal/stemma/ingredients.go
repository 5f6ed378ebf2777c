package stemma

import (
	"strings"

	"github.com/eggphy/eggphy-cli/internal/model"
)

// Ingredient family labels. These are user-facing filter values.
const (
	GallAndAlumFamily = "Gall and Alum Family"
	AlumOnlyFamily    = "Alum Only Family"
	OtherFamily       = "Other"
)

// IngredientFamilies lists the coarse ingredient groupings in presentation
// order.
func IngredientFamilies() []string {
	return []string{GallAndAlumFamily, AlumOnlyFamily, OtherFamily}
}

// IngredientFamily derives the coarse ingredient grouping of a witness,
// unioning evidence from the flat ingredient list, the gall_presence flag,
// and the structured component substances. Gall without alum intentionally
// falls into "Other": the branch order is preserved from the source logic
// even though it looks asymmetric.
func IngredientFamily(w *model.Witness) string {
	if w == nil || w.Ingredients == nil {
		return OtherFamily
	}

	var hasGalls, hasAlum bool
	for _, name := range w.Ingredients.Simple {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "gall") {
			hasGalls = true
		}
		if strings.Contains(lower, "alum") {
			hasAlum = true
		}
	}
	if dv := w.Ingredients.DiagnosticVariants; dv != nil && dv.GallPresence == model.GallPresent {
		hasGalls = true
	}
	for _, comp := range w.Ingredients.PrimaryComponents {
		lower := strings.ToLower(comp.Substance)
		if strings.Contains(lower, "gall") {
			hasGalls = true
		}
		if strings.Contains(lower, "alum") {
			hasAlum = true
		}
	}

	switch {
	case hasGalls && hasAlum:
		return GallAndAlumFamily
	case hasAlum:
		return AlumOnlyFamily
	default:
		return OtherFamily
	}
}
