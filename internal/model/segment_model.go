package model

import "time"

type Segment struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	CourseId  int64     `gorm:"not null;uniqueIndex:idx_segment_course_order"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null;default:''"`
	Order     int       `gorm:"column:order;not null;uniqueIndex:idx_segment_course_order"`
	VideoKey  *string   `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	Course    *Course   `gorm:"constraint:OnDelete:CASCADE"`
}

func (Segment) TableName() string {
	return "segments"
}

type Attachment struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	SegmentId int64     `gorm:"not null;index"`
	FileName  string    `gorm:"type:varchar(255);not null"`
	FileKey   string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	Segment   *Segment  `gorm:"constraint:OnDelete:CASCADE"`
}

func (Attachment) TableName() string {
	return "attachments"
}
