package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Auth struct {
		JWTSecret string `env:"JWT_SECRET,required"`
		Issuer    string `env:"JWT_ISSUER" envDefault:"cantine-backend"`
		TokenTTL  int    `env:"JWT_TTL_MINUTES" envDefault:"720"`
	}

	Card struct {
		// Simulated processing delay for recharges, in milliseconds.
		RechargeDelayMs int `env:"RECHARGE_DELAY_MS" envDefault:"1200"`
	}

	// Seed loads the demo menu, accounts and queue data on startup
	// when the keyspace is empty.
	Seed bool `env:"SEED_ON_START" envDefault:"true"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env is optional; in production the variables are set directly
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
