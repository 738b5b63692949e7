package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/desirppc/parcelace/internal/flagx"
	"github.com/desirppc/parcelace/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so the file can specify the warning threshold either
// as a string like "30m" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config.
type JsonConfig struct {
	APIBaseURL       string         `json:"api_base_url"`
	StorePath        string         `json:"store_path"`
	RedisAddr        string         `json:"redis_addr"`
	RenewalWarnAfter timex.Duration `json:"renewal_warn_after"`
}

// parseJson overlays Config with values loaded from a JSON file located
// via the -c/-config flags. No flag, no JSON. Read or unmarshal errors
// panic; the intended order is defaults -> parseJson -> parseFlags, with
// later stages overriding earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	if jc.RedisAddr != "" {
		cfg.RedisAddr = jc.RedisAddr
	}
	if jc.RenewalWarnAfter.Duration != 0 {
		cfg.RenewalWarnAfter = time.Duration(jc.RenewalWarnAfter.Duration)
	}
}
