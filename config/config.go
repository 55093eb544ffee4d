package config

import (
	"strings"

	"github.com/lshigami/qbank/internal/logger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   Server
	Database Database
	Log      Log
	Stats    Stats
}

type Server struct {
	Port             string
	Env              string
	CORSAllowOrigins []string
}

type Database struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string `json:"-"`
	Name         string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
}

type Log struct {
	Level string
}

type Stats struct {
	DefaultDays int
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "question_bank")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_SQLITE_PATH", "questionbank.db")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("STATS_DEFAULT_DAYS", 30)
}

// NewConfig reads an optional .env file from the working directory and
// overlays the process environment on top of it.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	envErr := v.ReadInConfig()
	config := load(v)

	// Everything logged from here on honors LOG_LEVEL and APP_ENV.
	logger.Init(config.Log.Level, !config.IsProduction())
	if envErr != nil {
		log.Warn().Err(envErr).Msg("No .env file loaded, using environment only")
	}
	log.Info().Interface("config", config).Msg("Config loaded")
	return config, nil
}

func load(v *viper.Viper) *Config {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.Env = strings.ToLower(v.GetString("APP_ENV"))
	config.Server.CORSAllowOrigins = splitList(v.GetString("CORS_ALLOW_ORIGINS"))

	config.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	config.Database.SQLitePath = v.GetString("DATABASE_SQLITE_PATH")
	config.Database.MaxOpenConns = v.GetInt("DATABASE_MAX_OPEN_CONNS")

	config.Log.Level = v.GetString("LOG_LEVEL")

	config.Stats.DefaultDays = v.GetInt("STATS_DEFAULT_DAYS")
	if config.Stats.DefaultDays <= 0 {
		config.Stats.DefaultDays = 30
	}

	return &config
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
