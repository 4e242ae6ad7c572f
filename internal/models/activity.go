package models

import "time"

// ActivityLogModel is the append-only audit trail. Rows are never mutated
// or deleted by the application.
type ActivityLogModel struct {
	ID          uint      `json:"id"          gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"user_id"     gorm:"type:char(36);index"`
	Action      string    `json:"action"      gorm:"index;not null"`
	EntityType  string    `json:"entity_type" gorm:"index"`
	EntityID    string    `json:"entity_id"   gorm:"index"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ip_address"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ActivityLogModel) TableName() string { return "activity_logs" }
