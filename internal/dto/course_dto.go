package dto

import "time"

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required,max=100"`
	VideoKey    *string `json:"video_key" validate:"omitempty,max=255"`
}

type UpdateCourseRequest struct {
	Id          int64   `json:"-"`
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required,max=100"`
	VideoKey    *string `json:"video_key" validate:"omitempty,max=255"`
}

type GetCoursesRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}

type CourseResponse struct {
	Id          int64     `json:"id"`
	UserId      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	VideoKey    *string   `json:"video_key"`
	VideoUrl    *string   `json:"video_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CourseDetailResponse struct {
	Course       *CourseResponse    `json:"course"`
	Segments     []*SegmentResponse `json:"segments"`
	IsAdmin      bool               `json:"is_admin"`
	IsBookmarked bool               `json:"is_bookmarked"`
}

type CourseAdminResponse struct {
	CourseId int64 `json:"course_id"`
	IsAdmin  bool  `json:"is_admin"`
}

type BookmarkedCourseResponse struct {
	CourseResponse
	TotalSegments int64 `json:"total_segments"`
}

type BookmarkStatusResponse struct {
	CourseId   int64 `json:"course_id"`
	Bookmarked bool  `json:"bookmarked"`
}
