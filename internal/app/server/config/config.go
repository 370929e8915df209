package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = "../../.env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":8080"
	defaultTokenTTL   = 720
	localSecret       = "local-dev-secret"
)

type Config struct {
	Env    string
	DB     db
	Server server
	Auth   auth
	Logger logger
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type auth struct {
	Secret          string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL_HOURS"`
	StrictPasswords bool          `env:"STRICT_PASSWORDS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var ErrNoSecret = errors.New("JWT_SECRET is required outside the local environment")

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("RUN_ADDRESS", defaultRunAddress)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("TOKEN_TTL_HOURS", defaultTokenTTL)

	cfg := &Config{
		Env: viper.GetString("APP_ENV"),
		DB: db{
			DatabaseURI: viper.GetString("DATABASE_URI"),
			Migrations:  viper.GetString("MIGRATIONS_PATH"),
		},
		Server: server{RunAddress: viper.GetString("RUN_ADDRESS")},
		Auth: auth{
			Secret:          viper.GetString("JWT_SECRET"),
			TokenTTL:        time.Duration(viper.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
			StrictPasswords: viper.GetBool("STRICT_PASSWORDS"),
		},
		Logger: logger{LogLevel: viper.GetString("LOG_LEVEL")},
	}

	if cfg.Auth.Secret == "" {
		if cfg.Env != EnvLocal {
			return nil, ErrNoSecret
		}
		cfg.Auth.Secret = localSecret
	}
	if cfg.DB.DatabaseURI == "" {
		return nil, errors.New("DATABASE_URI is required")
	}

	return cfg, nil
}
