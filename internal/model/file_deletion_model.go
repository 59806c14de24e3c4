package model

import "time"

// FileDeletion is an outbox row: a storage key whose object must be removed
// once the transaction that orphaned it has committed.
type FileDeletion struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	FileKey   string    `gorm:"type:varchar(255);not null;index"`
	Reason    string    `gorm:"type:varchar(100);not null;default:''"`
	Attempts  int       `gorm:"not null;default:0"`
	LastError *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (FileDeletion) TableName() string {
	return "file_deletions"
}
