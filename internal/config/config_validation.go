// internal/config/config_validation.go
package config

import "errors"

var (
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	ErrInvalidServerConfigs  = errors.New("invalid server configuration")
)

func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.Address == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
