package dto

import "time"

type CreateExerciseRequest struct {
	Exercise string  `json:"exercise" validate:"required,max=100"`
	Weight   float64 `json:"weight" validate:"gte=0"`
	Reps     int     `json:"reps" validate:"gte=0"`
	Sets     int     `json:"sets" validate:"gte=0"`
}

type ExerciseResponse struct {
	Id        int64     `json:"id"`
	Exercise  string    `json:"exercise"`
	Weight    float64   `json:"weight"`
	Reps      int       `json:"reps"`
	Sets      int       `json:"sets"`
	CreatedAt time.Time `json:"created_at"`
}
