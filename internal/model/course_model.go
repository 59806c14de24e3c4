package model

import "time"

type Course struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	UserId      int64     `gorm:"not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Category    string    `gorm:"type:varchar(100);not null;default:'';index"`
	VideoKey    *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseBookmark is unique per (user, course); inserts rely on ON CONFLICT DO NOTHING.
type CourseBookmark struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	UserId    int64     `gorm:"not null;uniqueIndex:idx_bookmark_user_course"`
	CourseId  int64     `gorm:"not null;uniqueIndex:idx_bookmark_user_course;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	Course    *Course   `gorm:"constraint:OnDelete:CASCADE"`
}

func (CourseBookmark) TableName() string {
	return "course_bookmarks"
}
