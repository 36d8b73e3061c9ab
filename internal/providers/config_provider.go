package providers

import (
	"fmt"
	"path/filepath"
	"sdd/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("analysis.temperature", 0.7)
	viper.SetDefault("analysis.timeout", 60*time.Second)
	viper.SetDefault("cache.ttl", 10*time.Second)

	viper.BindEnv("logger.level", "SDD_LOG_LEVEL")
	viper.BindEnv("analysis.apiKey", "SDD_API_KEY")
	viper.BindEnv("analysis.endpoint", "SDD_API_ENDPOINT")
	viper.BindEnv("analysis.model", "SDD_MODEL")
	viper.BindEnv("persistence.saveInterval", "SDD_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "SDD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SDD_CACHE_SIZE")

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

	conf.AppName = "SimpleDiaryDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
