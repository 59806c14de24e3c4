package model

import "time"

// Upload records a storage key handed out to a user. A key may only be
// attached to rows owned by the user it was issued to.
type Upload struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	UserId      int64     `gorm:"not null;index"`
	FileKey     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ContentType string    `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE"`
}

func (Upload) TableName() string {
	return "uploads"
}
