package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Db_conn                     string        `mapstructure:"DB_CONN" validate:"required"`
	Db_driver                   string        `mapstructure:"DB_DRIVER" validate:"oneof=postgres pgx"`
	Db_max_open_conns           int           `mapstructure:"DB_MAX_OPEN_CONNS" validate:"gte=1"`
	Db_max_idle_conns           int           `mapstructure:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
	Db_lock_timeout             time.Duration `mapstructure:"DB_LOCK_TIMEOUT" validate:"gte=0"`
	Jwt_secret                  string        `mapstructure:"JWT_SECRET" validate:"required"`
	Jwt_algorithm               string        `mapstructure:"JWT_ALGORITHM" validate:"oneof=HS256 HS384 HS512"`
	Access_token_expire_minutes int           `mapstructure:"ACCESS_TOKEN_EXPIRE_MINUTES" validate:"gte=1"`
	Max_active_loans            int           `mapstructure:"MAX_ACTIVE_LOANS" validate:"gte=1"`
	Bcrypt_cost                 int           `mapstructure:"BCRYPT_COST" validate:"gte=4,lte=31"`
}

var defaults = map[string]any{
	"DB_CONN":                     "",
	"DB_DRIVER":                   "postgres",
	"DB_MAX_OPEN_CONNS":           10,
	"DB_MAX_IDLE_CONNS":           5,
	"DB_LOCK_TIMEOUT":             "0s",
	"JWT_SECRET":                  "",
	"JWT_ALGORITHM":               "HS256",
	"ACCESS_TOKEN_EXPIRE_MINUTES": 30,
	"MAX_ACTIVE_LOANS":            3,
	"BCRYPT_COST":                 10,
}

// Load reads the configuration once at startup. Environment variables (including
// those from a .env file in the working directory) take precedence over the
// optional config file, which takes precedence over the defaults.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading in config: %v", err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %v", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}

	return &cfg, nil
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.Access_token_expire_minutes) * time.Minute
}
