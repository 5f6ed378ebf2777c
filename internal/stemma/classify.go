// Package stemma implements the shared witness classification logic: the
// family classifier, the confidence and ingredient-family resolvers, and the
// family groupings the stemma views are built from. Everything here is pure
// and total; the five per-page copies of this logic in the legacy interface
// are replaced by this one module.
package stemma

import (
	"strings"

	"github.com/eggphy/eggphy-cli/internal/model"
)

// metaExclusions are known outlier witnesses assigned to the meta family
// regardless of their attributes.
var metaExclusions = map[string]struct{}{
	"W23": {},
	"W27": {},
	"W37": {},
	"W74": {},
	"W87": {},
}

// cepakID is the single quantified long-soak variant that gets its own family.
const cepakID = "W57"

// Classify assigns a witness to exactly one family. The rules run in strict
// precedence order and the first match wins; a witness satisfying both the
// salt-water-boil and classical conditions must resolve to salt-water-boil.
// Classify never panics and never returns anything outside the seven labels:
// malformed input degrades to the meta family.
func Classify(w *model.Witness) (label model.FamilyLabel) {
	defer func() {
		if r := recover(); r != nil {
			label = model.FamilyMeta
		}
	}()

	if w == nil {
		return model.FamilyMeta
	}

	id := w.ID()
	var diag *model.DiagnosticVariants
	if w.Ingredients != nil {
		diag = w.Ingredients.DiagnosticVariants
	}
	crit := w.Variants()

	// Incomplete witnesses cannot be placed in the stemma.
	if id == "" || diag == nil || crit == nil {
		return model.FamilyMeta
	}
	if _, excluded := metaExclusions[id]; excluded {
		return model.FamilyMeta
	}
	if crit.BoilingTiming == model.BoilBeforeWriting {
		return model.FamilyAnomalous
	}
	if id == cepakID {
		return model.FamilyCepak
	}

	if diag.GallPresence == model.GallPresent && crit.SoakingDuration != model.SoakDays && hasSaltWaterBoil(w) {
		return model.FamilySaltWaterBoil
	}
	if diag.GallPresence == model.GallAbsent && crit.SoakingDuration == model.SoakDays {
		return model.FamilyLongSoak
	}
	if diag.GallPresence == model.GallAbsent && crit.SoakingDuration != model.SoakDays {
		return model.FamilyModern
	}
	if diag.GallPresence == model.GallPresent {
		return model.FamilyClassical
	}

	return model.FamilyMeta
}

// hasSaltWaterBoil reports whether any preparation step mentions a salt
// water boil, in English or German.
func hasSaltWaterBoil(w *model.Witness) bool {
	if w.ProcessSteps == nil {
		return false
	}
	for _, step := range w.ProcessSteps.PreparationSequence {
		details := strings.ToLower(step.Details)
		if strings.Contains(details, "salt water") || strings.Contains(details, "salzwasser") {
			return true
		}
	}
	return false
}
