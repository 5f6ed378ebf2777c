package main

import (
	"github.com/spf13/cobra"

	"github.com/eggphy/eggphy-cli/internal/facet"
)

// filterFlags holds the facet/search/sort flag values shared by list and
// export. Every facet flag is repeatable; values within one facet OR
// together, facets AND together.
type filterFlags struct {
	centuries          []string
	languages          []string
	genres             []string
	ingredientFamilies []string
	ingredients        []string
	boilingTimings     []string
	dryingMethods      []string
	soakingMediums     []string
	soakingDurations   []string
	search             string
	sort               string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.centuries, "century", nil, "century facet, e.g. 17 (repeatable)")
	cmd.Flags().StringSliceVar(&f.languages, "language", nil, "language facet (repeatable)")
	cmd.Flags().StringSliceVar(&f.genres, "genre", nil, "genre facet (repeatable)")
	cmd.Flags().StringSliceVar(&f.ingredientFamilies, "ingredient-family", nil, "ingredient family facet (repeatable)")
	cmd.Flags().StringSliceVar(&f.ingredients, "ingredient", nil, "ingredient facet, matches any (repeatable)")
	cmd.Flags().StringSliceVar(&f.boilingTimings, "boiling-timing", nil, "boiling timing facet (repeatable)")
	cmd.Flags().StringSliceVar(&f.dryingMethods, "drying-method", nil, "drying method facet (repeatable)")
	cmd.Flags().StringSliceVar(&f.soakingMediums, "soaking-medium", nil, "soaking medium facet (repeatable)")
	cmd.Flags().StringSliceVar(&f.soakingDurations, "soaking-duration", nil, "soaking duration facet (repeatable)")
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "free-text search over all witness fields")
	cmd.Flags().StringVar(&f.sort, "sort", "date_asc", "sort key: date_asc, date_desc, confidence, author")
}

func (f *filterFlags) selection() facet.Selection {
	return facet.Selection{
		Centuries:          facet.NewSet(f.centuries...),
		Languages:          facet.NewSet(f.languages...),
		Genres:             facet.NewSet(f.genres...),
		IngredientFamilies: facet.NewSet(f.ingredientFamilies...),
		Ingredients:        facet.NewSet(f.ingredients...),
		BoilingTimings:     facet.NewSet(f.boilingTimings...),
		DryingMethods:      facet.NewSet(f.dryingMethods...),
		SoakingMediums:     facet.NewSet(f.soakingMediums...),
		SoakingDurations:   facet.NewSet(f.soakingDurations...),
	}
}

func (f *filterFlags) sortKey() facet.SortKey {
	return facet.ParseSortKey(f.sort)
}
