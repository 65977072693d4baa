package domain

import "time"

// Subscription is one push registration per device endpoint. The endpoint is
// globally unique per device+browser installation, so it carries the unique
// index and is the upsert conflict target: a re-registering device updates
// its row instead of duplicating it.
type Subscription struct {
	ID        int64      `json:"id,string" gorm:"primaryKey"`
	PairId    int64      `json:"pair_id,string" gorm:"index"`
	Endpoint  string     `json:"endpoint" gorm:"uniqueIndex;size:512"`
	P256dh    string     `json:"p256dh"`
	Auth      string     `json:"auth"`
	ExpiresAt *time.Time `json:"expires_at"` // expiration hint from the browser, may be nil
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}
