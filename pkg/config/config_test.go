package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: sqlite
storage:
  type: local
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, 512, cfg.GP.PopulationSize)
	assert.Equal(t, 8, cfg.GP.MaxDepth)
	assert.Equal(t, 2, cfg.GP.ElitismCount)
	assert.Equal(t, 7, cfg.GP.TournamentSize)
	assert.Equal(t, 80, cfg.GP.CrossoverWeight)
	assert.Equal(t, 15, cfg.GP.MutationWeight)
	assert.Equal(t, 5, cfg.GP.ReproductionWeight)
	assert.Equal(t, 8, cfg.Parallel.MaxWorkers)
}

func TestLoad_CustomValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
gp:
  population_size: 200
  max_depth: 6
  elitism_count: 3
problem:
  instance_pattern: "testdata/mt10*"
database:
  type: postgres
  host: db.example.com
  port: 5432
  database: fjss_runs
  user: admin
  password: secret
storage:
  type: local
  local_path: /tmp/storage
parallel:
  max_workers: 4
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.GP.PopulationSize)
	assert.Equal(t, 6, cfg.GP.MaxDepth)
	assert.Equal(t, 3, cfg.GP.ElitismCount)
	assert.Equal(t, "testdata/mt10*", cfg.Problem.InstancePattern)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "fjss_runs", cfg.Database.Database)
	assert.Equal(t, 4, cfg.Parallel.MaxWorkers)
}

func TestLoad_InvalidDatabaseType(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: oracle
storage:
  type: local
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	_, err = Load(configFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestLoad_COSWithCredentials(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: sqlite
storage:
  type: cos
  bucket: test-bucket
  region: ap-guangzhou
  secret_id: test-id
  secret_key: test-key
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "cos", cfg.Storage.Type)
	assert.Equal(t, "test-bucket", cfg.Storage.Bucket)
}

func TestValidate_NonPositivePopulationSize(t *testing.T) {
	cfg := &Config{
		GP:       GPConfig{PopulationSize: 0, MaxDepth: 8, TournamentSize: 7, CrossoverWeight: 80, MutationWeight: 15, ReproductionWeight: 5},
		Database: DatabaseConfig{Type: "sqlite"},
		Parallel: ParallelConfig{MaxWorkers: 1},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "population size must be positive")
}

func TestValidate_ElitismCountNotLessThanPopulation(t *testing.T) {
	cfg := &Config{
		GP:       GPConfig{PopulationSize: 10, MaxDepth: 8, ElitismCount: 10, TournamentSize: 7, CrossoverWeight: 80, MutationWeight: 15, ReproductionWeight: 5},
		Database: DatabaseConfig{Type: "sqlite"},
		Parallel: ParallelConfig{MaxWorkers: 1},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "elitism count")
}

func TestValidate_BreedingWeightsMustSumPositive(t *testing.T) {
	cfg := &Config{
		GP:       GPConfig{PopulationSize: 10, MaxDepth: 8, TournamentSize: 7, CrossoverWeight: 0, MutationWeight: 0, ReproductionWeight: 0},
		Database: DatabaseConfig{Type: "sqlite"},
		Parallel: ParallelConfig{MaxWorkers: 1},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "breeding weights")
}

func TestValidate_InvalidMaxWorkers(t *testing.T) {
	cfg := &Config{
		GP:       GPConfig{PopulationSize: 10, MaxDepth: 8, TournamentSize: 7, CrossoverWeight: 80, MutationWeight: 15, ReproductionWeight: 5},
		Database: DatabaseConfig{Type: "sqlite"},
		Parallel: ParallelConfig{MaxWorkers: 0},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max workers must be at least 1")
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadFromReader(t *testing.T) {
	content := []byte(`
database:
  type: mysql
  host: mysql.local
storage:
  type: local
`)
	cfg, err := LoadFromReader("yaml", content)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "mysql.local", cfg.Database.Host)
}
