package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pixvera/imageproof/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are strings in time.ParseDuration notation ("30s", "1m30s").
type JsonConfig struct {
	APIBaseURL          string `json:"api_base_url"`
	RequestTimeout      string `json:"request_timeout"`
	OnlineCheckInterval string `json:"online_check_interval"`
	CacheDSN            string `json:"cache_dsn"`
	WebAddr             string `json:"web_addr"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; without them nothing is loaded.
// Read or unmarshal errors panic; a present but broken config file is a
// startup fault, not something to limp past.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if jc.OnlineCheckInterval != "" {
		d, err := time.ParseDuration(jc.OnlineCheckInterval)
		if err != nil {
			panic(err)
		}
		cfg.OnlineCheckInterval = d
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.WebAddr != "" {
		cfg.WebAddr = jc.WebAddr
	}
}
