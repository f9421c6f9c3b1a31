// Package config loads application configuration from config.yaml and the
// environment and wires up the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Paths      PathsConfig       `yaml:"paths" mapstructure:"paths"`
	Collectors []CollectorConfig `yaml:"collectors" mapstructure:"collectors"`
	Engine     EngineConfig      `yaml:"engine" mapstructure:"engine"`
	Store      StoreConfig       `yaml:"store" mapstructure:"store"`
	Sentiment  SentimentConfig   `yaml:"sentiment" mapstructure:"sentiment"`
	Log        LogConfig         `yaml:"log" mapstructure:"log"`
}

// PathsConfig locates the CSV datasets. Defaults mirror the legacy layout so
// existing data directories keep working.
type PathsConfig struct {
	ReviewsBase string `yaml:"reviews_base" mapstructure:"reviews_base"`
	DeltaDir    string `yaml:"delta_dir" mapstructure:"delta_dir"`
	MergedDelta string `yaml:"merged_delta" mapstructure:"merged_delta"`
	SummaryBase string `yaml:"summary_base" mapstructure:"summary_base"`
	// SummaryInputs are the per-platform full summary files fed to the
	// aggregator.
	SummaryInputs []string `yaml:"summary_inputs" mapstructure:"summary_inputs"`
}

// CollectorConfig declares one external platform collector.
type CollectorConfig struct {
	Name     string   `yaml:"name" mapstructure:"name"`
	Platform string   `yaml:"platform" mapstructure:"platform"`
	Command  string   `yaml:"command" mapstructure:"command"`
	Args     []string `yaml:"args" mapstructure:"args"`
	Mode     string   `yaml:"mode" mapstructure:"mode"`
	// DeltaFile is where the collector writes its review batch.
	DeltaFile string `yaml:"delta_file" mapstructure:"delta_file"`
	// SummaryFile is where the collector writes its observed summary.
	SummaryFile string `yaml:"summary_file" mapstructure:"summary_file"`
}

// EngineConfig tunes parallel collector execution.
type EngineConfig struct {
	MaxConcurrent     int     `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	LaunchIntervalSec float64 `yaml:"launch_interval_secs" mapstructure:"launch_interval_secs"`
	TimeoutMins       int     `yaml:"timeout_mins" mapstructure:"timeout_mins"`
}

// StoreConfig configures the run-log backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// SentimentConfig configures the rating-based sentiment labeler.
type SentimentConfig struct {
	PositiveMin float64 `yaml:"positive_min" mapstructure:"positive_min"`
	NegativeMax float64 `yaml:"negative_max" mapstructure:"negative_max"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REVIEWSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("paths.reviews_base", "Csv/Reviews/all_reviews.csv")
	v.SetDefault("paths.delta_dir", "Csv/Reviews/NewReviews")
	v.SetDefault("paths.merged_delta", "Csv/Reviews/NewReviews/all_new_since.csv")
	v.SetDefault("paths.summary_base", "Csv/Summary/merged_summary.csv")
	v.SetDefault("paths.summary_inputs", []string{
		"Csv/Summary/yamaps_summary.csv",
		"Csv/Summary/gmaps_summary.csv",
		"Csv/Summary/2gis_summary.csv",
	})
	v.SetDefault("engine.max_concurrent", 3)
	v.SetDefault("engine.launch_interval_secs", 2.0)
	v.SetDefault("engine.timeout_mins", 60)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "reviewsync.db")
	v.SetDefault("sentiment.positive_min", 4.0)
	v.SetDefault("sentiment.negative_max", 2.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if len(cfg.Collectors) == 0 {
		cfg.Collectors = DefaultCollectors()
	}

	return &cfg, nil
}

// DefaultCollectors returns the stock three-platform collector set, pointing
// at the legacy scraper entry points and output paths.
func DefaultCollectors() []CollectorConfig {
	return []CollectorConfig{
		{
			Name:        "yamaps",
			Platform:    "Yandex Maps",
			Command:     "python3",
			Args:        []string{"Parsers/Incremental/yamaps_reviews_incremental.py"},
			Mode:        "incremental",
			DeltaFile:   "Csv/Reviews/NewReviews/yamaps_new_since.csv",
			SummaryFile: "Csv/Summary/NewSummary/yamaps_summary_new.csv",
		},
		{
			Name:        "gmaps",
			Platform:    "Google Maps",
			Command:     "python3",
			Args:        []string{"Parsers/Incremental/gmaps_reviews_incremental.py"},
			Mode:        "incremental",
			DeltaFile:   "Csv/Reviews/NewReviews/gmaps_new_since.csv",
			SummaryFile: "Csv/Summary/NewSummary/gmaps_summary_new.csv",
		},
		{
			Name:        "2gis",
			Platform:    "2GIS",
			Command:     "python3",
			Args:        []string{"Parsers/Incremental/2gis_reviews_incremental.py"},
			Mode:        "incremental",
			DeltaFile:   "Csv/Reviews/NewReviews/2gis_new_since.csv",
			SummaryFile: "Csv/Summary/NewSummary/2gis_summary_new.csv",
		},
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
