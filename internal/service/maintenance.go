package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/ticktimer/internal/database"
)

// MaintenanceService houses destructive/ops actions surfaced through the TUI.
type MaintenanceService struct {
	DB *sql.DB
}

// ClearHistory wipes recorded sessions. Presets are kept.
func (s *MaintenanceService) ClearHistory(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return fmt.Errorf("maintenance: %w", ErrNotConfigured)
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
			return fmt.Errorf("clear sessions: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
