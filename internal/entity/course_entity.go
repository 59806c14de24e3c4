package entity

import "time"

type Course struct {
	Id          int64
	UserId      int64
	Title       string
	Description string
	Category    string
	VideoKey    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CourseBookmark struct {
	Id        int64
	UserId    int64
	CourseId  int64
	CreatedAt time.Time
}
