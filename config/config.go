package config

import (
	"meeplelog/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion   string `mapstructure:"GENERAL_VERSION"`
	Environment      string `mapstructure:"ENVIRONMENT"`
	ServerPort       int    `mapstructure:"SERVER_PORT"`
	DatabasePath     string `mapstructure:"DB_PATH"`
	CorsAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`
	SchedulerEnabled bool   `mapstructure:"SCHEDULER_ENABLED"`
	BackupDir        string `mapstructure:"BACKUP_DIR"`
	BackupRetention  int    `mapstructure:"BACKUP_RETENTION"`
}

var ConfigInstance Config

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "DB_PATH",
		"CORS_ALLOW_ORIGINS",
		"SCHEDULER_ENABLED", "BACKUP_DIR", "BACKUP_RETENTION",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	if viper.IsSet("SERVER_PORT") {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		}
	}

	viper.SetDefault("SERVER_PORT", 8280)
	viper.SetDefault("DB_PATH", "meeplelog.db")
	viper.SetDefault("BACKUP_RETENTION", 14)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info("Successfully initialized config", "config", config)
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error("Fatal error: invalid server port", "port", config.ServerPort)
	}

	if config.DatabasePath == "" {
		return log.Error("Fatal error: DB_PATH must not be empty")
	}

	if config.SchedulerEnabled && config.BackupDir == "" {
		return log.Error("Fatal error: BACKUP_DIR required when SCHEDULER_ENABLED is set")
	}

	if config.BackupRetention < 1 {
		return log.Error(
			"Fatal error: invalid backup retention",
			"retention", config.BackupRetention,
		)
	}

	ConfigInstance = config
	return nil
}
