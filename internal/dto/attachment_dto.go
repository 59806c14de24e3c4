package dto

import "time"

type CreateAttachmentRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	FileKey  string `json:"file_key" validate:"required,max=255"`
}

type AttachmentResponse struct {
	Id        int64     `json:"id"`
	SegmentId int64     `json:"segment_id"`
	FileName  string    `json:"file_name"`
	FileKey   string    `json:"file_key"`
	Url       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type PresignUploadRequest struct {
	ContentType string `json:"content_type" validate:"required,max=255"`
}

type PresignUploadResponse struct {
	Url    string            `json:"url"`
	Fields map[string]string `json:"fields"`
	Key    string            `json:"key"`
}

// FileDeletionMessage is published after commit for each new outbox row.
type FileDeletionMessage struct {
	Id int64 `json:"id"`
}
