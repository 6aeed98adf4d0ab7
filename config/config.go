package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Env  string `mapstructure:"APP_ENV"`
	Port string `mapstructure:"PORT"`

	StoreDriver        string `mapstructure:"STORE_DRIVER"`
	MongoURI           string `mapstructure:"MONGODB_URI"`
	MongoName          string `mapstructure:"MONGODB_NAME"`
	FirestoreProjectID string `mapstructure:"FIRESTORE_PROJECT_ID"`

	JWTSecret      string `mapstructure:"JWT_SECRET"`
	AdminSecretKey string `mapstructure:"ADMIN_SECRET_KEY"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	RedisURL             string `mapstructure:"REDIS_URL"`
	CotizacionURL        string `mapstructure:"COTIZACION_URL"`
	CotizacionTTLMinutes int    `mapstructure:"COTIZACION_TTL_MINUTES"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

var keys = []string{
	"APP_ENV", "PORT", "STORE_DRIVER", "MONGODB_URI", "MONGODB_NAME", "FIRESTORE_PROJECT_ID",
	"JWT_SECRET", "ADMIN_SECRET_KEY", "ALLOWED_ORIGINS", "REDIS_URL", "COTIZACION_URL",
	"COTIZACION_TTL_MINUTES", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// Load reads .env.development or .env.production (by APP_ENV) into the
// process environment and then maps the environment onto Config.
func Load() (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := godotenv.Load(".env." + env); err != nil {
		log.Warn().Str("env", env).Msg("No se pudo cargar el archivo .env, usando variables del sistema")
	}

	v := viper.New()
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("APP_ENV", env)
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("MONGODB_NAME", "CeluStock")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:4200")
	v.SetDefault("COTIZACION_URL", "https://dolarapi.com/v1/dolares/blue")
	v.SetDefault("COTIZACION_TTL_MINUTES", 30)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
