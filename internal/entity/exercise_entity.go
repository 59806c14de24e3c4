package entity

import "time"

type Exercise struct {
	Id        int64
	UserId    int64
	Exercise  string
	Weight    float64
	Reps      int
	Sets      int
	CreatedAt time.Time
}
