package config

import "fmt"

// APIConfig configures the read-only HTTP API started by the serve command.
type APIConfig struct {
	Addr string `json:"addr"`
	// Token, when set, must be presented as a bearer token.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Validate checks mandatory fields.
func (c APIConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("api addr is required")
	}
	return nil
}
