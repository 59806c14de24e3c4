package entity

import "time"

type FileDeletion struct {
	Id        int64
	FileKey   string
	Reason    string
	Attempts  int
	LastError *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
