// Package store persists the local witness catalog and UI preferences in
// sqlite. The dataset itself stays read-only: imports replace the catalog
// wholesale, they never edit individual witnesses.
package store

import (
	"context"
	"time"

	"github.com/eggphy/eggphy-cli/internal/model"
)

// Pref names persisted for the web interface. Preferences never affect
// classification or filtering.
const (
	PrefTheme     = "theme"
	PrefFontScale = "fontScale"
)

// ImportRun records one dataset import into the catalog.
type ImportRun struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Count      int       `json:"count"`
	ImportedAt time.Time `json:"imported_at"`
}

// Store defines the persistence interface for the witness catalog.
type Store interface {
	// Catalog
	ReplaceWitnesses(ctx context.Context, witnesses []model.Witness, source string) (*ImportRun, error)
	ListWitnesses(ctx context.Context) ([]model.Witness, error)
	GetWitness(ctx context.Context, id string) (*model.Witness, error)
	ListImports(ctx context.Context, limit int) ([]ImportRun, error)

	// Preferences
	GetPref(ctx context.Context, name string) (string, error)
	SetPref(ctx context.Context, name, value string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
