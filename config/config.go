package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

type Config struct {
	Environment string        `envconfig:"APP_ENV" default:"development"`
	Port        string        `envconfig:"PORT" default:"5000"`
	MongoURI    string        `envconfig:"MONGO_URI" required:"true"`
	DBName      string        `envconfig:"DB_NAME" default:"echoEstatesDB"`
	JWTSecret   string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"5h"`
	RedisAddr   string        `envconfig:"REDIS_ADDR"`
	RedisPass   string        `envconfig:"REDIS_PASS"`
	StripeKey   string        `envconfig:"STRIPE_SECRET_KEY"`
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.S().Infof("No .env file loaded: %v", err)
	}
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
