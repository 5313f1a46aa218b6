// internal/config/env.go
package config

import (
	"fmt"
	"net"
	"net/url"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// loadDotEnv populates the process environment from ./.env. A missing file is fine.
func loadDotEnv() {
	_ = godotenv.Load()
}

func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// legacyDSN builds a DSN from DB_USER, DB_PASSWORD, DB_HOST, DB_PORT and
// DB_NAME. It returns "" when DB_HOST or DB_NAME is missing.
func legacyDSN() (string, error) {
	var l legacyDB
	if err := parseEnv(&l); err != nil {
		return "", err
	}
	if l.Host == "" || l.Name == "" {
		return "", nil
	}

	host := l.Host
	if l.Port != "" {
		host = net.JoinHostPort(l.Host, l.Port)
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     host,
		Path:     "/" + l.Name,
		RawQuery: "sslmode=disable",
	}
	if l.User != "" {
		u.User = url.UserPassword(l.User, l.Password)
	}

	return u.String(), nil
}
