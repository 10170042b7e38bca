package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// CacheConfig controls the optional extraction cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AppConfig holds every tunable of the matching pipeline. Thresholds live
// here rather than in the matcher so a run can be re-tuned without a rebuild.
type AppConfig struct {
	DataDir        string      `mapstructure:"data_dir"`
	ResultsDir     string      `mapstructure:"results_dir"`
	AliasesPath    string      `mapstructure:"aliases_path"`
	MinScore       float64     `mapstructure:"min_score"`
	MaxMatches     int         `mapstructure:"max_matches"`
	TopRatio       float64     `mapstructure:"top_ratio"`
	MergeThreshold float64     `mapstructure:"merge_threshold"`
	Cache          CacheConfig `mapstructure:"cache"`
}

// LoadConfig reads config.yaml from the given directory, layering environment
// variables and defaults underneath. A missing config file is not an error;
// the defaults reproduce the reference pipeline settings.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AutomaticEnv()

	v.SetDefault("data_dir", "data")
	v.SetDefault("results_dir", "results")
	v.SetDefault("aliases_path", "")
	v.SetDefault("min_score", 0.72)
	v.SetDefault("max_matches", 0)
	v.SetDefault("top_ratio", 0.35)
	v.SetDefault("merge_threshold", 0.9)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "./cache")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &cfg, nil
}
