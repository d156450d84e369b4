package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trouvetonpro/dalil/internal/database"
)

// MaintenanceService houses destructive actions exposed as CLI flags.
type MaintenanceService struct {
	DB *sql.DB
}

// ClearFavorites removes every bookmark and returns how many were dropped.
func (s *MaintenanceService) ClearFavorites(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	var n int64
	err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM favorites")
		if err != nil {
			return fmt.Errorf("clear favorites: %w", err)
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return n, nil
}
