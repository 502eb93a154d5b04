// Package storage persists the action audit journal in SQLite.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"fx_orders/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Journal is an append-only audit log of dispatched actions. It is a
// write-path sink only: board state is never rebuilt from it.
type Journal struct {
	db *gorm.DB
}

// NewJournal opens (or creates) the journal database at path
func NewJournal(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	// Pure Go SQLite
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.AutoMigrate(&domain.ActionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal database: %w", err)
	}

	return &Journal{db: db}, nil
}

// Append writes one action record
func (j *Journal) Append(rec *domain.ActionRecord) error {
	return j.db.Create(rec).Error
}

// Recent returns the latest n records, newest first
func (j *Journal) Recent(n int) ([]domain.ActionRecord, error) {
	var recs []domain.ActionRecord
	err := j.db.Order("seq desc").Limit(n).Find(&recs).Error
	return recs, err
}

// Count returns the total number of journaled actions
func (j *Journal) Count() (int64, error) {
	var count int64
	err := j.db.Model(&domain.ActionRecord{}).Count(&count).Error
	return count, err
}
