package database

import (
	"fmt"

	"github.com/Abeltade/derese/internal/models"
	"gorm.io/gorm"
)

// AddIndexes creates the indexes backing the list filters. AutoMigrate
// already covers the unique indexes declared on the models.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		name    string
		columns string
		table   string
	}{
		// Kebele listing is always scoped to a parent Woreda
		{&models.Kebele{}, "idx_kebeles_woreda_id", "woreda_id", "kebeles"},

		// Farmer listing filters on the snapshot string and sorts by
		// registration time
		{&models.Farmer{}, "idx_farmers_woreda", "woreda", "farmers"},
		{&models.Farmer{}, "idx_farmers_timestamp", "timestamp", "farmers"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
