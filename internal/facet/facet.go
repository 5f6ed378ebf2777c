// Package facet implements the filter, search, sort, and navigation engine
// over a witness collection. All state is passed in and out explicitly so
// the engine can be driven by the HTTP API, the CLI, and tests alike.
package facet

import (
	"strconv"

	"github.com/eggphy/eggphy-cli/internal/model"
	"github.com/eggphy/eggphy-cli/internal/stemma"
)

// Set is one facet's accepted values. An empty (or nil) set places no
// restriction; within a set the semantics are OR.
type Set map[string]struct{}

// NewSet builds a Set from its values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Accepts reports whether the set is empty or contains v.
func (s Set) Accepts(v string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[v]
	return ok
}

// AcceptsAny reports whether the set is empty or contains any of the values.
func (s Set) AcceptsAny(values []string) bool {
	if len(s) == 0 {
		return true
	}
	for _, v := range values {
		if _, ok := s[v]; ok {
			return true
		}
	}
	return false
}

// Selection is the active facet state: the nine checkbox groups of the
// browsing interface. Facets are ANDed together.
type Selection struct {
	Centuries          Set
	Languages          Set
	Genres             Set
	IngredientFamilies Set
	Ingredients        Set
	BoilingTimings     Set
	DryingMethods      Set
	SoakingMediums     Set
	SoakingDurations   Set
}

// Matches reports whether a witness passes every active facet.
func (sel Selection) Matches(w *model.Witness) bool {
	if w == nil {
		return false
	}

	// Absent critical variants compare as empty strings, so they only match
	// a facet that explicitly selects "".
	var boil, dry, soakMedium, soakDuration string
	if cv := w.Variants(); cv != nil {
		boil = cv.BoilingTiming
		dry = cv.DryingMethod
		soakMedium = cv.SoakingMedium
		soakDuration = cv.SoakingDuration
	}

	return sel.Centuries.Accepts(strconv.Itoa(w.Century())) &&
		sel.Languages.Accepts(w.LanguageName()) &&
		sel.Genres.Accepts(w.GenreName()) &&
		sel.IngredientFamilies.Accepts(stemma.IngredientFamily(w)) &&
		sel.Ingredients.AcceptsAny(w.IngredientNames()) &&
		sel.BoilingTimings.Accepts(boil) &&
		sel.DryingMethods.Accepts(dry) &&
		sel.SoakingMediums.Accepts(soakMedium) &&
		sel.SoakingDurations.Accepts(soakDuration)
}

// Apply filters the collection by the selection and free-text query, then
// sorts by the given key. The input slice is never mutated; ties keep their
// collection order so paging and prev/next navigation stay reproducible.
func Apply(collection []model.Witness, sel Selection, query string, key SortKey) []model.Witness {
	filtered := make([]model.Witness, 0, len(collection))
	for i := range collection {
		if !sel.Matches(&collection[i]) {
			continue
		}
		if query != "" && !Search(&collection[i], query) {
			continue
		}
		filtered = append(filtered, collection[i])
	}
	Sort(filtered, key)
	return filtered
}

// Navigate moves within a filtered sequence of the given length, wrapping at
// both ends. A current index of -1 means nothing is selected yet and any
// move lands on the first element. Navigating an empty sequence is a no-op
// and returns -1.
func Navigate(length, current, delta int) int {
	if length == 0 {
		return -1
	}
	if current < 0 {
		current = 0
	}
	return ((current+delta)%length + length) % length
}
