package config // package config loads application configuration from environment variables

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // read .env before parsing
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; required ones stop the process at startup when
// missing or empty.
type Config struct {
	Env  string `env:"APP_ENV" envDefault:"dev"`   // application environment (dev/test/prod)
	Port string `env:"APP_PORT,required,notEmpty"` // HTTP port to listen on

	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`            // mysql | postgres | sqlite
	DBUser     string `env:"DB_USER"`                                 // database username
	DBPass     string `env:"DB_PASS"`                                 // database password (optional)
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`          // database host address
	DBPort     string `env:"DB_PORT"`                                 // empty means the driver default
	DBName     string `env:"DB_NAME" envDefault:"fyyur"`              // database name
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/fyyur.db"` // file used when DB_DRIVER=sqlite

	JWTSecret         string `env:"JWT_SECRET,required,notEmpty"`        // secret used to sign access tokens
	AccessTTLMin      int    `env:"ACCESS_TOKEN_TTL_MIN" envDefault:"60"` // access token lifetime in minutes
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`    // account allowed to edit listings
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`                  // bcrypt hash; empty disables login

	RabbitMQURL     string `env:"RABBITMQ_URL"`                                 // empty disables event publishing
	ConsumerEnabled bool   `env:"LISTING_CONSUMER_ENABLED" envDefault:"false"` // run the listing event consumer in-process
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment. Missing required variables or
// malformed values cause the program to exit with a fatal log message.
func Load() Config {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
