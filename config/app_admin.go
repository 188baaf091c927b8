package config

import "github.com/akeren/waitlist-api/pkg/utils"

// AdminConfig guards the operator listing endpoints. An empty token disables
// them.
type AdminConfig struct {
	APIToken string
}

func NewAdminConfig() *AdminConfig {
	return &AdminConfig{
		APIToken: utils.GetEnvTrimmed("ADMIN_API_TOKEN"),
	}
}

func (ac *AdminConfig) Enabled() bool {
	return ac.APIToken != ""
}
