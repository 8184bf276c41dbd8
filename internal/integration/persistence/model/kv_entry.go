package model

import "time"

// KVEntryModel represents the kv_entries table: one document per key.
type KVEntryModel struct {
	Key       string    `gorm:"type:varchar(255);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the KVEntryModel.
func (KVEntryModel) TableName() string {
	return "kv_entries"
}
