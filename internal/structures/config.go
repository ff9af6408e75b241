package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath         string `mapstructure:"filePath" validate:"required|unixPath"`
	CompressionLevel int    `mapstructure:"compressionLevel" validate:"min:1|max:22"`
	SeedOnEmpty      bool   `mapstructure:"seedOnEmpty"`
	SeedDays         int    `mapstructure:"seedDays" validate:"min:1"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode       uint32 `mapstructure:"mode" validate:"required|uint"`
	Dir        string `mapstructure:"dir" validate:"required|unixPath"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Size    int           `mapstructure:"size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DirectoryConfig struct {
	FilePath string `mapstructure:"filePath"`
}

type DashboardConfig struct {
	DefaultWindowDays    int `mapstructure:"defaultWindowDays" validate:"min:1"`
	StatisticsWindowDays int `mapstructure:"statisticsWindowDays" validate:"min:1"`
	TrendSampleSize      int `mapstructure:"trendSampleSize" validate:"min:1"`
	EveningStartHour     int `mapstructure:"eveningStartHour" validate:"min:0|max:23"`
}

type ThresholdConfig struct {
	MoraleFloor        float64 `mapstructure:"moraleFloor"`
	ParticipationFloor float64 `mapstructure:"participationFloor"`
}

type AlertsConfig struct {
	Interval           time.Duration   `mapstructure:"interval"`
	WindowDays         int             `mapstructure:"windowDays" validate:"min:1"`
	NegativeThreshold  int             `mapstructure:"negativeThreshold" validate:"min:1"`
	NegativeWindowDays int             `mapstructure:"negativeWindowDays" validate:"min:1"`
	Team               ThresholdConfig `mapstructure:"team"`
	Department         ThresholdConfig `mapstructure:"department"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server          `mapstructure:"webServer"`
	Persistence Persistence     `mapstructure:"persistence"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
	Directory   DirectoryConfig `mapstructure:"directory"`
	Dashboard   DashboardConfig `mapstructure:"dashboard"`
	Alerts      AlertsConfig    `mapstructure:"alerts"`
}
