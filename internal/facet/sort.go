package facet

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/eggphy/eggphy-cli/internal/model"
	"github.com/eggphy/eggphy-cli/internal/stemma"
)

// SortKey selects the ordering of a filtered collection.
type SortKey string

const (
	SortDateAsc    SortKey = "date_asc"
	SortDateDesc   SortKey = "date_desc"
	SortConfidence SortKey = "confidence"
	SortAuthor     SortKey = "author"
)

// ParseSortKey maps a user-supplied sort name to a SortKey, defaulting to
// date ascending.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortDateDesc, SortConfidence, SortAuthor:
		return SortKey(s)
	default:
		return SortDateAsc
	}
}

// Sort orders witnesses in place by the given key. Every ordering is stable:
// equal keys keep their relative collection order. Author comparison is
// locale-aware, with missing authors sorting as the empty string.
func Sort(witnesses []model.Witness, key SortKey) {
	switch key {
	case SortDateDesc:
		sort.SliceStable(witnesses, func(i, j int) bool {
			return witnesses[i].DateYear() > witnesses[j].DateYear()
		})
	case SortConfidence:
		sort.SliceStable(witnesses, func(i, j int) bool {
			return stemma.Confidence(&witnesses[i]).Score > stemma.Confidence(&witnesses[j]).Score
		})
	case SortAuthor:
		// The dataset does not declare a locale, so collate neutrally.
		coll := collate.New(language.Und)
		sort.SliceStable(witnesses, func(i, j int) bool {
			return coll.CompareString(witnesses[i].AuthorName(), witnesses[j].AuthorName()) < 0
		})
	default:
		sort.SliceStable(witnesses, func(i, j int) bool {
			return witnesses[i].DateYear() < witnesses[j].DateYear()
		})
	}
}
