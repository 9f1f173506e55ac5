package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/ticktimer/internal/config"
	"github.com/jask/ticktimer/internal/database/repository"
)

// PresetID derives the stable row id for a preset name.
func PresetID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("preset:"+strings.ToLower(name))).String()
}

// SeedPresets makes the presets table match the configured presets, keeping
// their order. Rows for presets no longer configured are removed. It is
// idempotent and safe to run on every startup.
func SeedPresets(ctx context.Context, db *sql.DB, presets []config.Preset) error {
	repo := repository.NewPresetRepo(db)
	want := make(map[string]bool, len(presets))
	for _, p := range presets {
		want[PresetID(p.Name)] = true
	}
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	for _, row := range existing {
		if want[row.ID] {
			continue
		}
		if err := repo.Delete(ctx, row.ID); err != nil {
			return err
		}
	}
	for idx, p := range presets {
		row := repository.Preset{
			ID:        PresetID(p.Name),
			Name:      p.Name,
			Seconds:   p.Duration.Seconds(),
			SortOrder: idx,
		}
		if err := repo.Upsert(ctx, row); err != nil {
			return err
		}
	}
	return nil
}
