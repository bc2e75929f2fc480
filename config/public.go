package config

// safe for API structure
type PublicConfig struct {
	General struct {
		LogLevel    string `json:"logLevel" yaml:"logLevel"`
		Development bool   `json:"development" yaml:"development"`
	} `json:"general" yaml:"general"`

	Watch struct {
		Interval string `json:"interval" yaml:"interval"`
		Paused   bool   `json:"paused" yaml:"paused"`
		Files    int    `json:"files" yaml:"files"`
	} `json:"watch" yaml:"watch"`

	HTTP struct {
		Enabled bool   `json:"enabled" yaml:"enabled"`
		Address string `json:"address" yaml:"address"`
		Port    int    `json:"port" yaml:"port"`
	} `json:"http" yaml:"http"`

	Logging struct {
		Level  string `json:"level" yaml:"level"`
		Format string `json:"format" yaml:"format"`
		Output string `json:"output" yaml:"output"`
	} `json:"logging" yaml:"logging"`
}

// ToPublic returns the subset of the configuration exposed over the API.
// Watched file paths and the log file location are not exposed.
func (c *Config) ToPublic() *PublicConfig {
	p := &PublicConfig{}

	p.General.LogLevel = c.General.LogLevel
	p.General.Development = c.General.Development

	p.Watch.Interval = c.Watch.Interval.String()
	p.Watch.Paused = c.Watch.Paused
	p.Watch.Files = len(c.Watch.Files)

	p.HTTP.Enabled = c.HTTP.Enabled
	p.HTTP.Address = c.HTTP.Address
	p.HTTP.Port = c.HTTP.Port

	p.Logging.Level = c.Logging.Level
	p.Logging.Format = c.Logging.Format
	p.Logging.Output = c.Logging.Output

	return p
}
