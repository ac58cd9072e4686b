package highscore

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// highScoreID is the primary key of the only row in the table.
const highScoreID = 1

// HighScore is the persisted row.
type HighScore struct {
	ID        uint `gorm:"primaryKey"`
	Score     int  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// SQLiteStore keeps the high score in a SQLite database file.
// It is safe for concurrent use by several sessions.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open high score database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// SQLite serialises writers; a single connection avoids "database is locked"
	// and keeps ":memory:" databases from splitting per connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&HighScore{}); err != nil {
		return nil, fmt.Errorf("failed to migrate high score table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns the stored score, or 0 when nothing has been saved yet.
func (s *SQLiteStore) Load() (int, error) {
	var row HighScore
	err := s.db.First(&row, highScoreID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load high score: %w", err)
	}
	return row.Score, nil
}

// Save upserts the single high score row, keeping the larger score.
func (s *SQLiteStore) Save(score int) error {
	row := HighScore{ID: highScoreID, Score: score, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"score":      gorm.Expr("MAX(score, excluded.score)"),
			"updated_at": gorm.Expr("CASE WHEN excluded.score > score THEN excluded.updated_at ELSE updated_at END"),
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
