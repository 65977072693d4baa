package domain

import "time"

// SysConfig is a category/name/value settings row seeded at boot and
// adjustable at runtime without a redeploy.
type SysConfig struct {
	ID        int64     `json:"id,string"`
	Sort      int       `json:"sort"`
	Type      string    `json:"type" gorm:"index"`
	Name      string    `json:"name" gorm:"index"`
	Value     string    `json:"value"`
	Remark    string    `json:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SysConfig) TableName() string {
	return "sys_config"
}
