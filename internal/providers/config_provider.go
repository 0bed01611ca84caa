package providers

import (
	"abconfig/internal/structures"
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "ABCONFIG_LOG_LEVEL")
	viper.BindEnv("remote.environment", "ABCONFIG_ENVIRONMENT")
	viper.BindEnv("remote.platform", "ABCONFIG_PLATFORM")
	viper.BindEnv("sync.interval", "ABCONFIG_SYNC_INTERVAL")
	viper.BindEnv("cache.enabled", "ABCONFIG_CACHE_ENABLED")
	viper.BindEnv("cache.size", "ABCONFIG_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "OnlineConfigClient"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
