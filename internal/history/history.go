// Package history records a local audit log of xs-check CLI runs using the
// same gorm/sqlite stack the teacher project used for its own persistence
// layer. This is additive telemetry: it is never consulted by the analyzer
// and has no effect on diagnostic output.
package history

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AnalysisRun is one row per CLI invocation of xs-check.
type AnalysisRun struct {
	gorm.Model
	FilePath     string
	StartedAt    time.Time
	DurationMs   int64
	ErrorCount   int
	WarningCount int
}

// Store wraps the gorm DB handle backing the run-history log.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the sqlite database at dbPath and runs
// its migration.
func Open(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&AnalysisRun{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Record appends one run to the history log.
func (s *Store) Record(run AnalysisRun) error {
	return s.db.Create(&run).Error
}

// Recent returns the most recent n runs, newest first.
func (s *Store) Recent(n int) ([]AnalysisRun, error) {
	var runs []AnalysisRun
	err := s.db.Order("created_at desc").Limit(n).Find(&runs).Error
	return runs, err
}

// DefaultPath resolves the history database path, preferring
// $XDG_STATE_HOME and falling back to the OS temp directory.
func DefaultPath(xdgStateHome, tempDir string) string {
	base := xdgStateHome
	if base == "" {
		base = tempDir
	}
	return base + "/xs-check/history.db"
}
