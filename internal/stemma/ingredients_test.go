package stemma

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eggphy/eggphy-cli/internal/model"
)

func TestIngredientFamily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		witness *model.Witness
		want    string
	}{
		{
			name:    "nil witness is other",
			witness: nil,
			want:    OtherFamily,
		},
		{
			name:    "no ingredients is other",
			witness: &model.Witness{},
			want:    OtherFamily,
		},
		{
			name: "galls and alum from flat list",
			witness: &model.Witness{Ingredients: &model.Ingredients{
				Simple: []string{"oak galls", "alum", "vinegar"},
			}},
			want: GallAndAlumFamily,
		},
		{
			name: "alum only from flat list",
			witness: &model.Witness{Ingredients: &model.Ingredients{
				Simple: []string{"alum", "water"},
			}},
			want: AlumOnlyFamily,
		},
		{
			name: "neither substance is other",
			witness: &model.Witness{Ingredients: &model.Ingredients{
				Simple: []string{"vinegar", "wax"},
			}},
			want: OtherFamily,
		},
		{
			name: "gall without alum stays other",
			witness: &model.Witness{Ingredients: &model.Ingredients{
				Simple: []string{"oak galls"},
			}},
			want: OtherFamily,
		},
		{
			name: "gall presence flag unions with alum from components",
			witness: &model.Witness{Ingredients: &model.Ingredients{
				DiagnosticVariants: &model.DiagnosticVariants{GallPresence: model.GallPresent},
				PrimaryComponents:  []model.Component{{Substance: "Alum"}},
			}},
			want: GallAndAlumFamily,
		},
		{
			name: "component substances match case-insensitively",
			witness: &model.Witness{Ingredients: &model.Ingredients{
				PrimaryComponents: []model.Component{{Substance: "Gallae"}, {Substance: "ALUM"}},
			}},
			want: GallAndAlumFamily,
		},
		{
			name: "evidence unions across flat and structured forms",
			witness: &model.Witness{Ingredients: &model.Ingredients{
				Simple:            []string{"alum"},
				PrimaryComponents: []model.Component{{Substance: "crushed galls"}},
			}},
			want: GallAndAlumFamily,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IngredientFamily(tt.witness))
		})
	}
}

func TestIngredientFamilies_Order(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{GallAndAlumFamily, AlumOnlyFamily, OtherFamily}, IngredientFamilies())
}
