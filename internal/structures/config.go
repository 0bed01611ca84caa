package structures

import (
	"net/http"
	"time"
)

type Route struct {
	Url     string
	Handler http.Handler
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type RemoteConfig struct {
	Environment string        `yaml:"environment" validate:"required|in:prod,stage"`
	ProdUrl     string        `yaml:"prodUrl" validate:"required|fullUrl"`
	StageUrl    string        `yaml:"stageUrl" validate:"required|fullUrl"`
	Platform    string        `yaml:"platform" validate:"in:ios,android,none"`
	Timeout     time.Duration `yaml:"timeout"`
	// ForceProd points a stage build at the prod environment.
	// Ignored when Environment is already prod.
	ForceProd bool `yaml:"forceProd"`
}

type SyncConfig struct {
	// Interval between periodic re-syncs. Zero disables the scheduler.
	Interval time.Duration `yaml:"interval"`
}

type PrefsConfig struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Remote    RemoteConfig  `yaml:"remote"`
	Sync      SyncConfig    `yaml:"sync"`
	Prefs     PrefsConfig   `yaml:"prefs"`
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
