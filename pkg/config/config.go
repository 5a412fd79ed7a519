// Package config provides configuration management for the CCGP driver.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	GP         GPConfig         `mapstructure:"gp"`
	Problem    ProblemConfig    `mapstructure:"problem"`
	Parallel   ParallelConfig   `mapstructure:"parallel"`
	LowerBound LowerBoundConfig `mapstructure:"lower_bound"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Log        LogConfig        `mapstructure:"log"`
}

// GPConfig holds population shape, depth bound, and breeding parameters
// shared by both the routing and sequencing populations.
type GPConfig struct {
	PopulationSize     int `mapstructure:"population_size"`
	MaxDepth           int `mapstructure:"max_depth"`
	ElitismCount       int `mapstructure:"elitism_count"`
	TournamentSize     int `mapstructure:"tournament_size"`
	CrossoverWeight    int `mapstructure:"crossover_weight"`
	MutationWeight     int `mapstructure:"mutation_weight"`
	ReproductionWeight int `mapstructure:"reproduction_weight"`
	// Generations is the number of generations to run; 0 means run until
	// the caller stops iterating.
	Generations int   `mapstructure:"generations"`
	Seed        int64 `mapstructure:"seed"`
}

// ProblemConfig selects the instance set a run trains and evaluates
// against.
type ProblemConfig struct {
	InstancePattern string             `mapstructure:"instance_pattern"`
	LowerBounds     map[string]float64 `mapstructure:"lower_bounds"`
}

// ParallelConfig configures the worker pool backing fitness evaluation.
type ParallelConfig struct {
	MaxWorkers int `mapstructure:"max_workers"`
	// TimeoutSeconds is loaded and defaults to 0; the run command does not
	// pass it to the worker pool, so evaluation batches have no time limit.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// LowerBoundConfig selects how instance lower bounds are resolved.
type LowerBoundConfig struct {
	// Source is one of "explicit", "json", or "env".
	Source      string `mapstructure:"source"`
	CatalogPath string `mapstructure:"catalog_path"`
	EnvPrefix   string `mapstructure:"env_prefix"`
}

// StorageConfig holds object storage configuration used to retrieve
// instance files shared across a research cluster.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // cos or local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`     // e.g., "myqcloud.com"
	Scheme    string `mapstructure:"scheme"`     // e.g., "https" or "http"
	LocalPath string `mapstructure:"local_path"` // for local storage
}

// DatabaseConfig holds run-history database connection configuration.
type DatabaseConfig struct {
	Type     string `mapstructure:"type"` // sqlite, postgres, or mysql
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	MaxConns int    `mapstructure:"max_conns"`
}

// TelemetryConfig holds OpenTelemetry tracing configuration.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"` // json or text
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/fjss-ccgp")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Config file not found, using defaults")
		} else if os.IsNotExist(err) {
			fmt.Printf("Config file %s not found, using defaults\n", configPath)
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from an in-memory buffer (useful for
// testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// GP defaults
	v.SetDefault("gp.population_size", 512)
	v.SetDefault("gp.max_depth", 8)
	v.SetDefault("gp.elitism_count", 2)
	v.SetDefault("gp.tournament_size", 7)
	v.SetDefault("gp.crossover_weight", 80)
	v.SetDefault("gp.mutation_weight", 15)
	v.SetDefault("gp.reproduction_weight", 5)
	v.SetDefault("gp.generations", 0)

	// Problem defaults
	v.SetDefault("problem.instance_pattern", "")

	// Parallel defaults
	v.SetDefault("parallel.max_workers", 8)
	v.SetDefault("parallel.timeout_seconds", 0)

	// LowerBound defaults
	v.SetDefault("lower_bound.source", "explicit")

	// Storage defaults
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./storage")

	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.database", "./fjss-ccgp.db")
	v.SetDefault("database.max_conns", 10)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "fjss-ccgp")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "./logs")
	v.SetDefault("log.format", "text")
}

// Validate validates the configuration, mirroring the teacher's
// flat-error-per-field style.
func (c *Config) Validate() error {
	if c.GP.PopulationSize <= 0 {
		return fmt.Errorf("gp population size must be positive")
	}
	if c.GP.MaxDepth <= 0 {
		return fmt.Errorf("gp max depth must be positive")
	}
	if c.GP.ElitismCount < 0 || c.GP.ElitismCount >= c.GP.PopulationSize {
		return fmt.Errorf("gp elitism count must be non-negative and less than population size")
	}
	if c.GP.TournamentSize <= 0 {
		return fmt.Errorf("gp tournament size must be positive")
	}
	weightSum := c.GP.CrossoverWeight + c.GP.MutationWeight + c.GP.ReproductionWeight
	if c.GP.CrossoverWeight < 0 || c.GP.MutationWeight < 0 || c.GP.ReproductionWeight < 0 || weightSum <= 0 {
		return fmt.Errorf("gp breeding weights must be non-negative and sum to a positive number")
	}

	if c.Database.Type != "sqlite" && c.Database.Type != "postgres" && c.Database.Type != "mysql" {
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}

	if c.Parallel.MaxWorkers < 1 {
		return fmt.Errorf("parallel max workers must be at least 1")
	}

	// Storage config validation is delegated to the instancestore package.

	return nil
}
