package entity

import "time"

type Segment struct {
	Id        int64
	CourseId  int64
	Title     string
	Content   string
	Order     int
	VideoKey  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Attachment struct {
	Id        int64
	SegmentId int64
	FileName  string
	FileKey   string
	CreatedAt time.Time
}
