package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eggphy/eggphy-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "eggphy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testWitnesses() []model.Witness {
	return []model.Witness{
		{Metadata: &model.Metadata{WitnessID: "W01", Date: 1000, Author: "Bassus", Language: "Greek"}},
		{Metadata: &model.Metadata{WitnessID: "W02", Date: 1652, Author: "Anonymus", Language: "German"}},
	}
}

func TestSQLiteStore_ReplaceAndList(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.ReplaceWitnesses(ctx, testWitnesses(), "data/witnesses.json")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2, run.Count)
	assert.Equal(t, "data/witnesses.json", run.Source)

	witnesses, err := st.ListWitnesses(ctx)
	require.NoError(t, err)
	require.Len(t, witnesses, 2)
	assert.Equal(t, "W01", witnesses[0].ID())
	assert.Equal(t, "W02", witnesses[1].ID())

	// A second import replaces the catalog wholesale.
	_, err = st.ReplaceWitnesses(ctx, testWitnesses()[:1], "refresh")
	require.NoError(t, err)
	witnesses, err = st.ListWitnesses(ctx)
	require.NoError(t, err)
	assert.Len(t, witnesses, 1)
}

func TestSQLiteStore_GetWitness(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.ReplaceWitnesses(ctx, testWitnesses(), "seed")
	require.NoError(t, err)

	w, err := st.GetWitness(ctx, "W02")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "Anonymus", w.AuthorName())
	assert.Equal(t, 1652, w.DateYear())

	missing, err := st.GetWitness(ctx, "W99")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLiteStore_ListImports(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.ReplaceWitnesses(ctx, testWitnesses(), "first")
	require.NoError(t, err)
	_, err = st.ReplaceWitnesses(ctx, testWitnesses(), "second")
	require.NoError(t, err)

	runs, err := st.ListImports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	runs, err = st.ListImports(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteStore_Prefs(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	value, err := st.GetPref(ctx, PrefTheme)
	require.NoError(t, err)
	assert.Empty(t, value, "unset prefs read as empty")

	require.NoError(t, st.SetPref(ctx, PrefTheme, "dark"))
	require.NoError(t, st.SetPref(ctx, PrefFontScale, "1.2"))

	value, err = st.GetPref(ctx, PrefTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	// Upsert overwrites.
	require.NoError(t, st.SetPref(ctx, PrefTheme, "light"))
	value, err = st.GetPref(ctx, PrefTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", value)
}

func TestSQLiteStore_SkipsWitnessesWithoutID(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	witnesses := append(testWitnesses(), model.Witness{})
	run, err := st.ReplaceWitnesses(ctx, witnesses, "seed")
	require.NoError(t, err)
	assert.Equal(t, 3, run.Count)

	stored, err := st.ListWitnesses(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}
