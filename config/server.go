package config

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	// Addr is the listen address of the API server.
	Addr string `json:"addr"`
	// APIToken guards the logs endpoint when non-empty.
	APIToken string `json:"api_token"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
