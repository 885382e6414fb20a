// Package config reads process settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const defaultUploadMax = 10 << 20

type Config struct {
	HTTPAddr       string
	DatabaseDSN    string
	LogLevel       string
	UploadMaxBytes int64
	// TemplateDir holds {templateID}.docx files overriding the built-in templates.
	TemplateDir string
}

// Load reads the environment. Each dotenv file that exists is loaded first;
// variables already set in the process win over the file.
func Load(dotenv ...string) (*Config, error) {
	for _, path := range dotenv {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, errors.Wrapf(err, "config.godotenv(%s)", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "config.os.Stat(%s)", path)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("HTTP_ADDR", ":3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("UPLOAD_MAX_BYTES", int64(defaultUploadMax))
	v.SetDefault("TEMPLATE_DIR", "")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "rapor")
	v.SetDefault("DB_SSLMODE", "disable")
	v.AutomaticEnv()

	cfg := &Config{
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		DatabaseDSN:    v.GetString("DB_DSN"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		UploadMaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		TemplateDir:    v.GetString("TEMPLATE_DIR"),
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = buildDSN(v)
	}
	if cfg.UploadMaxBytes <= 0 {
		return nil, errors.Errorf("config: UPLOAD_MAX_BYTES must be positive, got %d", cfg.UploadMaxBytes)
	}
	return cfg, nil
}

func buildDSN(v *viper.Viper) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(v.GetString("DB_USER"), v.GetString("DB_PASSWORD")),
		Host:     fmt.Sprintf("%s:%s", v.GetString("DB_HOST"), v.GetString("DB_PORT")),
		Path:     "/" + v.GetString("DB_NAME"),
		RawQuery: "sslmode=" + url.QueryEscape(v.GetString("DB_SSLMODE")),
	}
	return u.String()
}
