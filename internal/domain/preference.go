package domain

import "time"

// Preference holds per-device identity. Keyed by endpoint only; PairId is a
// loose association with the pairing that most recently wrote it.
type Preference struct {
	ID          int64     `json:"id,string" gorm:"primaryKey"`
	PairId      int64     `json:"pair_id,string" gorm:"index"`
	Endpoint    string    `json:"endpoint" gorm:"uniqueIndex;size:512"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Preference) TableName() string {
	return "preference"
}
