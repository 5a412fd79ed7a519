package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormRunRecorder implements RunRecorder using GORM.
type GormRunRecorder struct {
	db *gorm.DB
}

// NewGormRunRecorder creates a new GormRunRecorder, migrating the
// generation_records table if it does not already exist.
func NewGormRunRecorder(db *gorm.DB) (*GormRunRecorder, error) {
	if err := db.AutoMigrate(&GenerationRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate generation_records: %w", err)
	}
	return &GormRunRecorder{db: db}, nil
}

// RecordGeneration appends one generation's summary.
func (r *GormRunRecorder) RecordGeneration(ctx context.Context, record *GenerationRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// ListGenerations retrieves every recorded generation for a run, ordered
// by generation index.
func (r *GormRunRecorder) ListGenerations(ctx context.Context, runID string) ([]*GenerationRecord, error) {
	var records []*GenerationRecord

	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("generation_index ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}

	return records, nil
}
