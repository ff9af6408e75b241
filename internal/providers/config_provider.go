package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"emotrack/internal/structures"

	"github.com/spf13/viper"
)

const AppName = "EmotionTracker"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8080)

	v.SetDefault("persistence.filePath", "./data/emotions.dat")
	v.SetDefault("persistence.compressionLevel", 3)
	v.SetDefault("persistence.seedOnEmpty", true)
	v.SetDefault("persistence.seedDays", 30)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")
	v.SetDefault("logger.maxSizeMB", 50)
	v.SetDefault("logger.maxBackups", 5)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 16)
	v.SetDefault("cache.ttl", 30*time.Second)

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("dashboard.defaultWindowDays", 7)
	v.SetDefault("dashboard.statisticsWindowDays", 30)
	v.SetDefault("dashboard.trendSampleSize", 7)
	v.SetDefault("dashboard.eveningStartHour", 14)

	v.SetDefault("alerts.interval", 15*time.Minute)
	v.SetDefault("alerts.windowDays", 7)
	v.SetDefault("alerts.negativeThreshold", 2)
	v.SetDefault("alerts.negativeWindowDays", 7)
	v.SetDefault("alerts.team.moraleFloor", -20.0)
	v.SetDefault("alerts.team.participationFloor", 50.0)
	v.SetDefault("alerts.department.moraleFloor", -15.0)
	v.SetDefault("alerts.department.participationFloor", 60.0)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("logger.level", "EMOTRACK_LOG_LEVEL")
	_ = v.BindEnv("persistence.filePath", "EMOTRACK_DATA_FILE")
	_ = v.BindEnv("webServer.port", "EMOTRACK_PORT")
	_ = v.BindEnv("cache.enabled", "EMOTRACK_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "EMOTRACK_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
