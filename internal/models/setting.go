package models

// SettingModel is a generic key-value store for site configuration. Some
// values are upload paths (logo, favicon, ad images), some are '1'/'0'
// flags, some are raw CSS/JS text stored verbatim.
type SettingModel struct {
	ID           uint   `json:"-"             gorm:"primaryKey;autoIncrement"`
	SettingKey   string `json:"setting_key"   gorm:"uniqueIndex;not null"`
	SettingValue string `json:"setting_value" gorm:"type:longtext"`
}

func (SettingModel) TableName() string { return "settings" }
