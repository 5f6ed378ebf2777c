package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/eggphy/eggphy-cli/internal/dataset"
	"github.com/eggphy/eggphy-cli/internal/facet"
	"github.com/eggphy/eggphy-cli/internal/model"
	"github.com/eggphy/eggphy-cli/internal/stemma"
)

var (
	exportFilters filterFlags
	exportOut     string
	exportFormat  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered witness set to xlsx, json, or yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		witnesses := dataset.New(cfg.Data).Load(cmd.Context())
		filtered := facet.Apply(witnesses, exportFilters.selection(), exportFilters.search, exportFilters.sortKey())

		format := exportFormat
		if format == "" {
			format = strings.TrimPrefix(filepath.Ext(exportOut), ".")
		}

		switch format {
		case "xlsx":
			if err := exportXLSX(filtered, exportOut); err != nil {
				return err
			}
		case "json":
			if err := exportJSON(filtered, exportOut); err != nil {
				return err
			}
		case "yaml", "yml":
			if err := exportYAML(filtered, exportOut); err != nil {
				return err
			}
		default:
			return eris.Errorf("unsupported export format %q", format)
		}

		fmt.Printf("exported %d witnesses to %s\n", len(filtered), exportOut)
		return nil
	},
}

// exportRow is the flat projection written to spreadsheets and yaml.
type exportRow struct {
	WitnessID        string  `yaml:"witness_id"`
	Date             int     `yaml:"date"`
	Author           string  `yaml:"author"`
	Language         string  `yaml:"language"`
	Genre            string  `yaml:"genre"`
	SourceWork       string  `yaml:"source_work"`
	Family           string  `yaml:"family"`
	IngredientFamily string  `yaml:"ingredient_family"`
	Ingredients      string  `yaml:"ingredients"`
	Confidence       float64 `yaml:"confidence"`
	Assessed         bool    `yaml:"assessed"`
}

func exportRows(witnesses []model.Witness) []exportRow {
	rows := make([]exportRow, 0, len(witnesses))
	for i := range witnesses {
		w := &witnesses[i]
		assessment := stemma.Confidence(w)
		rows = append(rows, exportRow{
			WitnessID:        w.ID(),
			Date:             w.DateYear(),
			Author:           w.AuthorName(),
			Language:         w.LanguageName(),
			Genre:            w.GenreName(),
			SourceWork:       w.SourceWorkName(),
			Family:           string(stemma.Classify(w)),
			IngredientFamily: stemma.IngredientFamily(w),
			Ingredients:      strings.Join(w.IngredientNames(), "; "),
			Confidence:       assessment.Score,
			Assessed:         assessment.Assessed,
		})
	}
	return rows
}

func exportXLSX(witnesses []model.Witness, out string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Witnesses")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, name := range []string{
		"Witness ID", "Date", "Author", "Language", "Genre", "Source Work",
		"Family", "Ingredient Family", "Ingredients", "Confidence", "Assessed",
	} {
		header.AddCell().Value = name
	}

	for _, row := range exportRows(witnesses) {
		r := sheet.AddRow()
		r.AddCell().Value = row.WitnessID
		r.AddCell().SetInt(row.Date)
		r.AddCell().Value = row.Author
		r.AddCell().Value = row.Language
		r.AddCell().Value = row.Genre
		r.AddCell().Value = row.SourceWork
		r.AddCell().Value = row.Family
		r.AddCell().Value = row.IngredientFamily
		r.AddCell().Value = row.Ingredients
		r.AddCell().SetFloat(row.Confidence)
		r.AddCell().SetBool(row.Assessed)
	}

	return eris.Wrap(file.Save(out), "export: save xlsx")
}

func exportJSON(witnesses []model.Witness, out string) error {
	docs := make([]map[string]any, 0, len(witnesses))
	for i := range witnesses {
		docs = append(docs, witnesses[i].Document())
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal json")
	}
	return eris.Wrap(os.WriteFile(out, data, 0o644), "export: write json")
}

func exportYAML(witnesses []model.Witness, out string) error {
	data, err := yaml.Marshal(exportRows(witnesses))
	if err != nil {
		return eris.Wrap(err, "export: marshal yaml")
	}
	return eris.Wrap(os.WriteFile(out, data, 0o644), "export: write yaml")
}

func init() {
	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "witnesses.xlsx", "output file path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "export format: xlsx, json, yaml (default from extension)")
	rootCmd.AddCommand(exportCmd)
}
