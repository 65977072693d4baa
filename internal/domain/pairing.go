package domain

import "time"

// Pairing is the root aggregate: two devices associate through its 6-digit
// code. BackgroundUrl is shared state owned by the pair, not by a device.
type Pairing struct {
	ID            int64     `json:"id,string" gorm:"primaryKey"`
	PairCode      string    `json:"pair_code" gorm:"uniqueIndex;size:6"`
	BackgroundUrl string    `json:"background_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Pairing) TableName() string {
	return "pairing"
}
