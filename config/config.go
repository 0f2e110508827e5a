package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Env        string
	Port       string
	DBURL      string
	JWTSecret  string
	BcryptCost int
}

// Load reads configuration from environment variables and an optional config
// file. The JWT secret and database URL have no defaults: a process without
// them must not come up.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LINTRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("bcrypt.cost", 10)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	cfg := &Config{
		Env:        v.GetString("env"),
		Port:       v.GetString("port"),
		DBURL:      v.GetString("db.url"),
		JWTSecret:  v.GetString("jwt.secret"),
		BcryptCost: v.GetInt("bcrypt.cost"),
	}

	if strings.TrimSpace(cfg.DBURL) == "" {
		return nil, fmt.Errorf("missing required configuration: LINTRA_DB_URL")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("missing required configuration: LINTRA_JWT_SECRET")
	}

	return cfg, nil
}
