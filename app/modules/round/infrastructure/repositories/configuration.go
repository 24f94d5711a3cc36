package rounddb

import (
	"database/sql/driver"
	"errors"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/quiz-host/app/modules/round/domain"
)

// Configuration is a RoundConfiguration stored as one JSON text column. Values
// are validated when scanned, so malformed stored data fails at load time.
type Configuration struct {
	rounddomain.RoundConfiguration
}

// Value implements driver.Valuer.
func (c Configuration) Value() (driver.Value, error) {
	data, err := rounddomain.EncodeConfiguration(c.RoundConfiguration)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (c *Configuration) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case nil:
		return errors.New("stored configuration is null")
	default:
		return fmt.Errorf("unsupported configuration column type %T", src)
	}

	cfg, err := rounddomain.DecodeConfiguration(data)
	if err != nil {
		return fmt.Errorf("stored configuration is invalid: %w", err)
	}
	c.RoundConfiguration = cfg
	return nil
}
