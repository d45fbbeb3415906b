package domain

import (
	"database/sql/driver"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// JSONMap stores loosely structured metadata in a jsonb column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return jsoniter.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return jsoniter.Unmarshal(v, m)
	case string:
		return jsoniter.UnmarshalFromString(v, m)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
