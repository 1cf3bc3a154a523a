package data

import (
	"sync"

	"gorm.io/gorm"
)

// Setting is a named configuration value stored in the database. Settings
// override environment defaults so namespace wiring (guilds, channels,
// offsets) can change without a redeploy.
type Setting struct {
	ID     uint8  `gorm:"primaryKey"`
	Name   string `gorm:"size:64;unique;not null"`
	Value  string `gorm:"size:256;not null"`
	Active uint8  `gorm:"not null;default:1"`
}

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings loads all settings from the database into cache.
func LoadSettings(db *gorm.DB) error {
	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string)
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}

	return nil
}

// GetSetting retrieves a setting value from cache (call LoadSettings first).
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}
