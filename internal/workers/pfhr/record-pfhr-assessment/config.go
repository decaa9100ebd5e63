package recordpfhrassessment

import (
	"time"

	"pfhr-workers/internal/common/config"
)

type Config struct {
	Enabled  bool
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(appCfg, TaskType)
	return &Config{
		Enabled:  wcfg.Enabled,
		Timeout:  config.GetDuration(wcfg.Timeout),
		CacheTTL: appCfg.Scoring.CacheTTLDuration(),
	}
}
