package db

import (
	"fmt"

	types "github.com/christianrafael21/hoopscout/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return err
	}
	return EnsureScoutingIndexes(db)
}

// EnsureScoutingIndexes adds read-path indexes that gorm tags cannot express.
// The statements are portable between postgres and sqlite.
func EnsureScoutingIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_evaluation_evaluated_at_desc",
			sql:  `CREATE INDEX IF NOT EXISTS idx_evaluation_evaluated_at_desc ON evaluation (evaluated_at DESC);`,
		},
		{
			name: "idx_history_entry_recorded_at_desc",
			sql:  `CREATE INDEX IF NOT EXISTS idx_history_entry_recorded_at_desc ON history_entry (recorded_at DESC);`,
		},
		{
			name: "idx_report_athlete_created",
			sql:  `CREATE INDEX IF NOT EXISTS idx_report_athlete_created ON report (athlete_id, created_at DESC);`,
		},
	}
	for _, st := range stmts {
		if err := db.Exec(st.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", st.name, err)
		}
	}
	return nil
}
