package app

import (
	"errors"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bjo163/pairlink/internal/domain"
)

type settingSchema struct {
	Type    string
	Name    string
	Default string
	Remark  string
}

// defaultSettings are seeded at boot when absent. Values are tunable at
// runtime through the sys_config table without redeploying.
var defaultSettings = []settingSchema{
	{Type: "push", Name: "max_workers", Default: "8", Remark: "Concurrent push deliveries per dispatch"},
	{Type: "history", Name: "max_page_size", Default: "200", Remark: "Upper bound for history page size"},
}

// checkSettings seeds missing settings. Existing values are never touched.
func (a *Application) checkSettings() {
	for sort, schema := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", schema.Type, schema.Name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sort,
				Type:   schema.Type,
				Name:   schema.Name,
				Value:  schema.Default,
				Remark: schema.Remark,
			})
			zap.L().Info("initialized setting",
				zap.String("type", schema.Type),
				zap.String("name", schema.Name),
				zap.String("default", schema.Default))
		}
	}
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	var cfg domain.SysConfig
	err := a.gormDB.Where("type = ? and name = ?", category, key).First(&cfg).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("read setting failed", zap.String("name", key), zap.Error(err))
		}
		return ""
	}
	return cfg.Value
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return cast.ToInt64(a.GetSettingsStringValue(category, key))
}
