// Package repository persists CCGP run history: the best normalized
// makespan and program string produced by each generation of each run.
// Population state is never written here — only the per-generation
// summary a dashboard or later analysis would want to replay.
package repository

import "time"

// GenerationRecord is the row persisted once per generation of a run.
type GenerationRecord struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RunID             string    `gorm:"column:run_id;type:varchar(64);index"`
	GenerationIndex   int       `gorm:"column:generation_index"`
	RoutingFitness    float64   `gorm:"column:routing_fitness"`
	SequencingFitness float64   `gorm:"column:sequencing_fitness"`
	RoutingProgram    string    `gorm:"column:routing_program;type:text"`
	SequencingProgram string    `gorm:"column:sequencing_program;type:text"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GenerationRecord.
func (GenerationRecord) TableName() string {
	return "generation_records"
}
