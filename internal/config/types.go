package config

// Config is the full application configuration.
//
// The core packages (internal/dns, internal/steg) never read this directly;
// they receive already-validated values. This layer owns defaulting and
// validation so the engine can trust what it is handed.
type Config struct {
	Encoder  EncoderConfig  `json:"encoder"`
	Channel  ChannelConfig  `json:"channel"`
	Logging  LoggingConfig  `json:"logging"`
	API      APIConfig      `json:"api"`
	Database DatabaseConfig `json:"database"`
}

// EncoderConfig mirrors steg.Config in file-friendly form.
type EncoderConfig struct {
	// Strategy is one of "txt-only", "multi-record", "distributed",
	// "http-body".
	Strategy string `json:"strategy"`

	// MaxTXTLength is the base64 budget per TXT chunk (1..255).
	MaxTXTLength int `json:"max_txt_length"`

	// MaxFragments caps the real fragments per payload.
	MaxFragments int `json:"max_fragments"`

	UseCompression bool `json:"use_compression"`
	RandomizeOrder bool `json:"randomize_order"`

	// NoiseRatio in [0,1]: decoy fragments added per real fragment.
	NoiseRatio float64 `json:"noise_ratio"`
}

// ChannelConfig describes the cover traffic itself.
type ChannelConfig struct {
	// BaseDomain is the domain the generated subdomains hang off.
	BaseDomain string `json:"base_domain"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level       string            `json:"level"`
	JSON        bool              `json:"json"`
	IncludePID  bool              `json:"include_pid"`
	ExtraFields map[string]string `json:"extra_fields,omitempty"`
}

// APIConfig configures the local control/status REST server.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
	APIKey  string `json:"api_key,omitempty"`
}

// DatabaseConfig points at the profile store.
type DatabaseConfig struct {
	// Path of the SQLite file; empty disables persistence.
	Path string `json:"path"`
}
