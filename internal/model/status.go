// internal/model/status.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	appErrors "github.com/unclebandit/customer-service/internal/errors"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusCanceled Status = "CANCELED"
)

// lookup keys are lower-case; the localized labels come from the first
// version of the API and are still accepted on input.
var statusAliases = map[string]Status{
	"active":    StatusActive,
	"inactive":  StatusInactive,
	"canceled":  StatusCanceled,
	"ativo":     StatusActive,
	"inativo":   StatusInactive,
	"cancelado": StatusCanceled,
}

// ParseStatus resolves s case-insensitively.
func ParseStatus(s string) (Status, error) {
	if st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", appErrors.NewValidation("invalid status: %q", s)
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusCanceled:
		return true
	}
	return false
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return appErrors.NewValidation("status must be a string")
	}
	if raw == nil {
		*s = ""
		return nil
	}
	st, err := ParseStatus(*raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Scan implements sql.Scanner.
func (s *Status) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Status", src)
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return fmt.Errorf("stored status: %w", err)
	}
	*s = st
	return nil
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, appErrors.NewValidation("invalid status: %q", string(s))
	}
	return string(s), nil
}
