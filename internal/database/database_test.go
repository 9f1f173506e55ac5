package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/ticktimer/internal/config"
	"github.com/jask/ticktimer/internal/database/repository"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(dbPath))
	require.NoError(t, RunMigrations(dbPath))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	v, dirty, err := Version(db)
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(2), v)

	for _, table := range []string{"presets", "sessions"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&n))
		require.Equal(t, 1, n, "table %s", table)
	}
}

func TestRunMigrationsWithDBKeepsHandleOpen(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrationsWithDB(db))
	require.NoError(t, db.Ping())
	require.NoError(t, RunMigrationsWithDB(db))
}

func TestSeedPresets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrationsWithDB(db))

	presets := []config.Preset{
		{Name: "long-break", Duration: 15 * time.Minute},
		{Name: "pomodoro", Duration: 25 * time.Minute},
	}
	require.NoError(t, SeedPresets(ctx, db, presets))
	presets[1].Duration = 30 * time.Minute
	require.NoError(t, SeedPresets(ctx, db, presets))

	list, err := repository.NewPresetRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "long-break", list[0].Name)
	require.Equal(t, "pomodoro", list[1].Name)
	require.Equal(t, 1800.0, list[1].Seconds)
	require.Equal(t, PresetID("POMODORO"), list[1].ID)

	require.NoError(t, SeedPresets(ctx, db, presets[1:]))
	list, err = repository.NewPresetRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "presets dropped from the config are removed")
	require.Equal(t, "pomodoro", list[0].Name)
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrationsWithDB(db))

	boom := context.Canceled
	err = WithTx(context.Background(), db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO presets(id, name, seconds) VALUES ('x', 'x', 1)`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM presets`).Scan(&n))
	require.Zero(t, n)
}

func TestNowTruncated(t *testing.T) {
	now := Now()
	require.Equal(t, time.UTC, now.Location())
	require.Zero(t, now.Nanosecond())
}
