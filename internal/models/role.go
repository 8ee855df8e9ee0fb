package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role: o ID é o próprio nível de acesso.
type Role struct {
	ID          uint        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Label       string      `gorm:"size:60;not null" json:"label"`
	Permissions Permissions `gorm:"type:text;not null" json:"permissions"`
}

// Permissions é gravada como array JSON numa coluna texto.
type Permissions []string

func (p Permissions) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Permissions) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = Permissions{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("permissions: unsupported column type %T", src)
	}

	if len(raw) == 0 {
		*p = Permissions{}
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("permissions: %w", err)
	}
	*p = list
	return nil
}
