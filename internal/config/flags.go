// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"time"
)

// parseFlags reads args into a partial config. Unset flags stay zero so
// they never override other sources.
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("customer-service", flag.ContinueOnError)

	var (
		address         string
		databaseDSN     string
		logLevel        string
		autoMigrate     bool
		readTimeout     time.Duration
		writeTimeout    time.Duration
		shutdownTimeout time.Duration
	)

	fs.StringVar(&address, "a", "", "HTTP listen address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&autoMigrate, "migrate", false, "Apply database migrations on startup")
	fs.DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout (e.g. 10s)")
	fs.DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (e.g. 10s)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g. 5s)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Server: Server{
			Address:         address,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN:         databaseDSN,
				AutoMigrate: autoMigrate,
			},
		},
		LogLevel: logLevel,
	}, nil
}
