package dto

import "time"

type CreateSegmentRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Content  string  `json:"content"`
	VideoKey *string `json:"video_key" validate:"omitempty,max=255"`
}

type UpdateSegmentRequest struct {
	Id       int64   `json:"-"`
	Title    string  `json:"title" validate:"required,max=255"`
	Content  string  `json:"content"`
	VideoKey *string `json:"video_key" validate:"omitempty,max=255"`
}

type SegmentResponse struct {
	Id        int64     `json:"id"`
	CourseId  int64     `json:"course_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Order     int       `json:"order"`
	VideoKey  *string   `json:"video_key"`
	VideoUrl  *string   `json:"video_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SegmentNavigationResponse holds the neighbours of a segment. Either side is
// nil at the start or end of the course.
type SegmentNavigationResponse struct {
	PrevSegment *SegmentResponse `json:"prev_segment"`
	NextSegment *SegmentResponse `json:"next_segment"`
}

type SegmentViewResponse struct {
	Course      *CourseResponse            `json:"course"`
	Segment     *SegmentResponse           `json:"segment"`
	Attachments []*AttachmentResponse      `json:"attachments"`
	Navigation  *SegmentNavigationResponse `json:"navigation"`
	IsAdmin     bool                       `json:"is_admin"`
}
