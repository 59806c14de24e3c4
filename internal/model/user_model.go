package model

import "time"

type User struct {
	Id            int64      `gorm:"primaryKey;autoIncrement"`
	Email         *string    `gorm:"type:varchar(255);uniqueIndex"`
	EmailVerified *time.Time `gorm:"column:email_verified"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

type Account struct {
	Id       int64   `gorm:"primaryKey;autoIncrement"`
	UserId   int64   `gorm:"not null;index:idx_account_user_google"`
	GoogleId *string `gorm:"type:varchar(255);uniqueIndex;index:idx_account_user_google"`
	User     *User   `gorm:"constraint:OnDelete:CASCADE"`
}

func (Account) TableName() string {
	return "accounts"
}

type Profile struct {
	Id          int64   `gorm:"primaryKey;autoIncrement"`
	UserId      int64   `gorm:"not null;uniqueIndex"`
	DisplayName *string `gorm:"type:varchar(255)"`
	ImageId     *string `gorm:"type:varchar(255)"`
	Image       *string `gorm:"type:text"`
	Bio         string  `gorm:"type:text;not null;default:''"`
	User        *User   `gorm:"constraint:OnDelete:CASCADE"`
}

func (Profile) TableName() string {
	return "profiles"
}

type Session struct {
	Id        string    `gorm:"type:varchar(64);primaryKey"`
	UserId    int64     `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return "sessions"
}
