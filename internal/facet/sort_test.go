package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eggphy/eggphy-cli/internal/model"
)

func byDate(id string, year int) model.Witness {
	return model.Witness{Metadata: &model.Metadata{WitnessID: id, Date: year}}
}

func TestSort_DateStability(t *testing.T) {
	t.Parallel()

	// Two witnesses share a date; ties keep their collection order.
	witnesses := []model.Witness{
		byDate("W05", 1500),
		byDate("W02", 1400),
		byDate("W03", 1500),
		byDate("W01", 1300),
	}

	Sort(witnesses, SortDateAsc)
	assert.Equal(t, []string{"W01", "W02", "W05", "W03"}, ids(witnesses))

	Sort(witnesses, SortDateDesc)
	assert.Equal(t, []string{"W05", "W03", "W02", "W01"}, ids(witnesses))
}

func TestSort_Confidence(t *testing.T) {
	t.Parallel()

	conf := func(v float64) *float64 { return &v }
	witnesses := []model.Witness{
		{Metadata: &model.Metadata{WitnessID: "W01"}, Confidence: conf(0.2)},
		{Metadata: &model.Metadata{WitnessID: "W02"}, Confidence: conf(0.9)},
		{Metadata: &model.Metadata{WitnessID: "W03"}}, // unassessed scores as zero
	}

	Sort(witnesses, SortConfidence)
	assert.Equal(t, []string{"W02", "W01", "W03"}, ids(witnesses))
}

func TestSort_Author(t *testing.T) {
	t.Parallel()

	byAuthor := func(id, author string) model.Witness {
		return model.Witness{Metadata: &model.Metadata{WitnessID: id, Author: author}}
	}
	witnesses := []model.Witness{
		byAuthor("W01", "Porta"),
		byAuthor("W02", ""), // missing author sorts first as the empty string
		byAuthor("W03", "Bassus"),
	}

	Sort(witnesses, SortAuthor)
	assert.Equal(t, []string{"W02", "W03", "W01"}, ids(witnesses))
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want SortKey
	}{
		{"date_asc", SortDateAsc},
		{"date_desc", SortDateDesc},
		{"confidence", SortConfidence},
		{"author", SortAuthor},
		{"", SortDateAsc},
		{"bogus", SortDateAsc},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSortKey(tt.in), "input %q", tt.in)
	}
}
