package stemma

import "github.com/eggphy/eggphy-cli/internal/model"

// relatedYearWindow is the date proximity that makes two witnesses related
// even across families.
const relatedYearWindow = 100

// DefaultRelatedLimit caps the related-witness suggestions shown on a
// detail page.
const DefaultRelatedLimit = 6

// Related returns witnesses related to w: members of the same family, or
// attestations within a century either way. The witness itself is excluded
// and collection order is preserved. A non-positive limit means no cap.
func Related(collection []model.Witness, w *model.Witness, limit int) []model.Witness {
	if w == nil {
		return nil
	}
	family := Classify(w)
	id := w.ID()
	date := w.DateYear()

	var related []model.Witness
	for i := range collection {
		c := &collection[i]
		if c.ID() == id {
			continue
		}
		sameFamily := Classify(c) == family
		delta := c.DateYear() - date
		if delta < 0 {
			delta = -delta
		}
		if !sameFamily && delta > relatedYearWindow {
			continue
		}
		related = append(related, *c)
		if limit > 0 && len(related) >= limit {
			break
		}
	}
	return related
}
