package model

import "time"

type Exercise struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	UserId    int64     `gorm:"not null;index"`
	Exercise  string    `gorm:"type:varchar(255);not null"`
	Weight    float64   `gorm:"not null;default:0"`
	Reps      int       `gorm:"not null;default:0"`
	Sets      int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
}

func (Exercise) TableName() string {
	return "exercises"
}
