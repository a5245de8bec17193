// Package config assembles runtime settings for the ImageProof client.
// Sources are layered defaults → .env → JSON file → command-line flags,
// later sources overriding earlier ones.
package config

import "time"

// Config holds runtime settings shared by the CLI and the web front end.
//
// Fields:
//   - APIBaseURL: base endpoint of the forensics backend, e.g.
//     "http://127.0.0.1:8000/api".
//   - RequestTimeout: per-request timeout for gateway calls.
//   - OnlineCheckInterval: how often the CLI probes backend reachability.
//   - CacheDSN: SQLite DSN of the local session cache.
//   - WebAddr: listen address of the local web UI.
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	CacheDSN            string
	WebAddr             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.CacheDSN = "imageproof.db"
	c.WebAddr = ":8080"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (.env included), a JSON file (if -c/-config was
// given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
