package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// OpenMemory opens a migrated, private in-memory SQLite store. It backs
// `DB_DRIVER=sqlite DB_URL=:memory:` and the test suites.
func OpenMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// One connection keeps the shared-cache database alive and serialises writers.
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
