package entity

import "time"

type Upload struct {
	Id          int64
	UserId      int64
	FileKey     string
	ContentType string
	CreatedAt   time.Time
}
