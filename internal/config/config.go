package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	QuotesCsvPath string `toml:"quotes_csv_path"`

	// trainlog backup cmd reports run stats over this unix socket
	TrainlogUnixSocketAddrDir  string `toml:"trainlog_unix_socket_addr_dir"`
	TrainlogUnixSocketFileName string `toml:"trainlog_unix_socket_file_name"`

	// program generator service
	GeneratorBaseURL        string `toml:"generator_base_url"`
	GeneratorTimeoutSeconds int    `toml:"generator_timeout_seconds"`
	FallbackProgramWeeks    int    `toml:"fallback_program_weeks"`

	// progression advisor thresholds
	CompoundIncrementKilos  float64 `toml:"compound_increment_kilos"`
	IsolationIncrementKilos float64 `toml:"isolation_increment_kilos"`
	MaxEffortForIncrease    int     `toml:"max_effort_for_increase"`
	NearFailureEffort       int     `toml:"near_failure_effort"`
	PlateauMissThreshold    int     `toml:"plateau_miss_threshold"`
	DeloadFactor            float64 `toml:"deload_factor"`
	SummaryLookbackEntries  int     `toml:"summary_lookback_entries"`

	// regeneration eligibility thresholds
	RegenCooldownHours        int `toml:"regen_cooldown_hours"`
	RegenMinProgramAgeDays    int `toml:"regen_min_program_age_days"`
	RegenMinCompletedWorkouts int `toml:"regen_min_completed_workouts"`
	RecommendPlateauCount     int `toml:"recommend_plateau_count"`
	RevertWindowHours         int `toml:"revert_window_hours"`

	RegenerateRateLimitAllowedPerMin int `toml:"regenerate_rate_limit_allowed_per_min"`
}

func (c *Config) GeneratorTimeout() time.Duration {
	return time.Duration(c.GeneratorTimeoutSeconds) * time.Second
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s is empty", env)
	}

	cfg.Environment = env
	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills threshold fields that are not set in the TOML
// file. Values in the config file always win.
func (c *Config) applyDefaults() {
	if c.GeneratorTimeoutSeconds == 0 {
		c.GeneratorTimeoutSeconds = 20
	}
	if c.FallbackProgramWeeks == 0 {
		c.FallbackProgramWeeks = 8
	}
	if c.CompoundIncrementKilos == 0 {
		c.CompoundIncrementKilos = 2.5
	}
	if c.IsolationIncrementKilos == 0 {
		c.IsolationIncrementKilos = 1.0
	}
	if c.MaxEffortForIncrease == 0 {
		c.MaxEffortForIncrease = 8
	}
	if c.NearFailureEffort == 0 {
		c.NearFailureEffort = 9
	}
	if c.PlateauMissThreshold == 0 {
		c.PlateauMissThreshold = 3
	}
	if c.DeloadFactor == 0 {
		c.DeloadFactor = 0.9
	}
	if c.SummaryLookbackEntries == 0 {
		c.SummaryLookbackEntries = 10
	}
	if c.RegenCooldownHours == 0 {
		c.RegenCooldownHours = 24
	}
	if c.RegenMinProgramAgeDays == 0 {
		c.RegenMinProgramAgeDays = 7
	}
	if c.RegenMinCompletedWorkouts == 0 {
		c.RegenMinCompletedWorkouts = 3
	}
	if c.RecommendPlateauCount == 0 {
		c.RecommendPlateauCount = 2
	}
	if c.RevertWindowHours == 0 {
		c.RevertWindowHours = 24
	}
	if c.RegenerateRateLimitAllowedPerMin == 0 {
		c.RegenerateRateLimitAllowedPerMin = 5
	}
}
