package sendpfhrsummary

import (
	"time"

	"pfhr-workers/internal/common/config"
)

type Config struct {
	Enabled      bool
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	Timeout      time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(appCfg, TaskType)
	return &Config{
		Enabled:      wcfg.Enabled,
		EmailEnabled: appCfg.Notifications.Email.Enabled,
		SMSEnabled:   appCfg.Notifications.SMS.Enabled,
		FromEmail:    appCfg.Notifications.Email.FromEmail,
		Timeout:      config.GetDuration(wcfg.Timeout),
	}
}
