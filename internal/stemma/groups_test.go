package stemma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eggphy/eggphy-cli/internal/model"
)

func dated(w *model.Witness, year int) model.Witness {
	w.Metadata.Date = year
	return *w
}

func TestFamilyGroups(t *testing.T) {
	t.Parallel()

	collection := []model.Witness{
		dated(witness("W03", model.GallPresent, "hours"), 1500),
		dated(witness("W01", model.GallPresent, "hours"), 1000),
		dated(witness("W10", model.GallAbsent, model.SoakDays), 1700),
		dated(witness("W23", model.GallPresent, "hours"), 1600), // excluded outlier
	}

	groups := FamilyGroups(collection)
	require.Len(t, groups, 7)

	// Canonical root order: A, B, G, D, C, F, E.
	labels := make([]model.FamilyLabel, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, g.Info.Label)
	}
	assert.Equal(t, []model.FamilyLabel{
		model.FamilyClassical, model.FamilyLongSoak, model.FamilyCepak,
		model.FamilySaltWaterBoil, model.FamilyModern, model.FamilyAnomalous,
		model.FamilyMeta,
	}, labels)

	classical := groups[0]
	require.Len(t, classical.Members, 2)
	// Members sort by ascending date inside each family.
	assert.Equal(t, "W01", classical.Members[0].ID())
	assert.Equal(t, "W03", classical.Members[1].ID())

	meta := groups[6]
	require.Len(t, meta.Members, 1)
	assert.Equal(t, "W23", meta.Members[0].ID())

	// Empty families are still present.
	assert.Empty(t, groups[2].Members)
}

func TestRelated(t *testing.T) {
	t.Parallel()

	collection := []model.Witness{
		dated(witness("W01", model.GallPresent, "hours"), 1000),
		dated(witness("W02", model.GallPresent, "hours"), 1600),  // same family, far in time
		dated(witness("W03", model.GallAbsent, "days"), 1050),    // other family, within 100y
		dated(witness("W04", model.GallAbsent, "days"), 1400),    // other family, far in time
	}

	current := collection[0]
	related := Related(collection, &current, DefaultRelatedLimit)

	ids := make([]string, 0, len(related))
	for i := range related {
		ids = append(ids, related[i].ID())
	}
	assert.Equal(t, []string{"W02", "W03"}, ids)
}

func TestRelated_Limit(t *testing.T) {
	t.Parallel()

	collection := make([]model.Witness, 0, 10)
	for _, id := range []string{"W01", "W02", "W03", "W04", "W05", "W06", "W07", "W08"} {
		collection = append(collection, dated(witness(id, model.GallPresent, "hours"), 1200))
	}

	current := collection[0]
	related := Related(collection, &current, DefaultRelatedLimit)
	assert.Len(t, related, DefaultRelatedLimit)

	// The witness never relates to itself.
	for i := range related {
		assert.NotEqual(t, "W01", related[i].ID())
	}
}
