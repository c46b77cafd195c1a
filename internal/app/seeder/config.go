package seeder

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config controls one seeding run. Spacing is the gap between consecutive
// seeded questions; their answers land inside that gap.
type Config struct {
	DataPath string        `yaml:"data_path" env:"SEEDER_DATA_PATH"`
	Reset    bool          `yaml:"reset"     env:"SEEDER_RESET"`
	DryRun   bool          `yaml:"dry_run"   env:"SEEDER_DRY_RUN"`
	Spacing  time.Duration `yaml:"spacing"   env:"SEEDER_SPACING" env-default:"7m"`
}

// LoadConfig reads the YAML file at path, when given, with ENV overrides.
// An empty path reads ENV and defaults only.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("seeder config: read env: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("seeder config: %w", err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
	}
	return &cfg, nil
}
