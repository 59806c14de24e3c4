package model

import (
	"time"

	"gorm.io/datatypes"
)

type ChartSnapshot struct {
	Id             int64                       `gorm:"primaryKey;autoIncrement"`
	UserId         int64                       `gorm:"not null;index"`
	Symbol         string                      `gorm:"type:varchar(50);not null"`
	Recommendation *string                     `gorm:"type:varchar(10)"`
	Confidence     *int                        `gorm:""`
	Analysis       *string                     `gorm:"type:text"`
	Patterns       datatypes.JSONSlice[string] `gorm:"not null"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime"`
	User           *User                       `gorm:"constraint:OnDelete:CASCADE"`
	Screenshots    []ChartScreenshot           `gorm:"foreignKey:SnapshotId;constraint:OnDelete:CASCADE"`
}

func (ChartSnapshot) TableName() string {
	return "chart_snapshots"
}

type ChartScreenshot struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	SnapshotId int64     `gorm:"not null;index"`
	Timeframe  string    `gorm:"type:varchar(20);not null"`
	FileKey    string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ChartScreenshot) TableName() string {
	return "chart_screenshots"
}
