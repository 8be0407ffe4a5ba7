package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a string slice as a JSON text column, which keeps the
// document shape of multi-valued fields inside a single SQLite column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}
}

// Ratings holds the two numeric ratings of a potion.
type Ratings struct {
	Strength float64 `json:"strength"`
	Flavor   float64 `json:"flavor"`
}

// Potion 表示一条药水记录
// vendor_id is a plain string identifier, not a foreign key; no referential
// integrity is enforced.
type Potion struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"size:128;index;not null" json:"name"`
	Price       float64    `gorm:"index" json:"price"`
	Score       float64    `json:"score"`
	Ingredients StringList `gorm:"type:text" json:"ingredients"`
	Ratings     Ratings    `gorm:"embedded;embeddedPrefix:rating_" json:"ratings"`
	TryDate     time.Time  `json:"tryDate"`
	Categories  StringList `gorm:"type:text" json:"categories"`
	VendorID    string     `gorm:"size:64;index" json:"vendor_id"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}
