package config

import (
	"gopkg.in/ini.v1"
)

type Config struct {
	Addr          string
	RateLimit     float64
	RateBurst     int
	DefaultNoise  string
	ReportProject string
	ReportAuthor  string
}

// Defaults applied when the file or a key is missing.
var defaults = Config{
	Addr:         ":8080",
	RateLimit:    10,
	RateBurst:    20,
	DefaultNoise: "simplified",
}

// Load reads config.ini, falling back to defaults when the file cannot
// be read. Environment overrides are handled by the caller.
func Load(path string) Config {
	file, err := ini.Load(path)
	if err != nil {
		return defaults
	}
	return Config{
		Addr:          file.Section("server").Key("Addr").MustString(defaults.Addr),
		RateLimit:     file.Section("server").Key("RateLimit").MustFloat64(defaults.RateLimit),
		RateBurst:     file.Section("server").Key("RateBurst").MustInt(defaults.RateBurst),
		DefaultNoise:  file.Section("noise").Key("DefaultMethod").MustString(defaults.DefaultNoise),
		ReportProject: file.Section("report").Key("Project").MustString(""),
		ReportAuthor:  file.Section("report").Key("Author").MustString(""),
	}
}
