package service

import (
	"context"
	"errors"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/pkg/events"
	"coursehub-be/pkg/storage"
)

// notFoundAs turns a repository miss into a client-facing NotFound.
func notFoundAs(err error, resource string, id interface{}) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NotFound(resource, id)
	}
	return err
}

// eventPublisher publishes domain events best-effort. A nil publisher turns
// every publish into a no-op.
type eventPublisher struct {
	publisher events.Publisher
	logger    logger.ILogger
}

func (p eventPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		p.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func urlFor(store storage.ObjectStorage, key *string) *string {
	if key == nil || *key == "" || store == nil {
		return nil
	}
	u := store.URLFor(*key)
	return &u
}

func toCourseResponse(course *entity.Course, store storage.ObjectStorage) *dto.CourseResponse {
	return &dto.CourseResponse{
		Id:          course.Id,
		UserId:      course.UserId,
		Title:       course.Title,
		Description: course.Description,
		Category:    course.Category,
		VideoKey:    course.VideoKey,
		VideoUrl:    urlFor(store, course.VideoKey),
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}

func toSegmentResponse(segment *entity.Segment, store storage.ObjectStorage) *dto.SegmentResponse {
	if segment == nil {
		return nil
	}
	return &dto.SegmentResponse{
		Id:        segment.Id,
		CourseId:  segment.CourseId,
		Title:     segment.Title,
		Content:   segment.Content,
		Order:     segment.Order,
		VideoKey:  segment.VideoKey,
		VideoUrl:  urlFor(store, segment.VideoKey),
		CreatedAt: segment.CreatedAt,
		UpdatedAt: segment.UpdatedAt,
	}
}

func toAttachmentResponse(attachment *entity.Attachment, store storage.ObjectStorage) *dto.AttachmentResponse {
	res := &dto.AttachmentResponse{
		Id:        attachment.Id,
		SegmentId: attachment.SegmentId,
		FileName:  attachment.FileName,
		FileKey:   attachment.FileKey,
		CreatedAt: attachment.CreatedAt,
	}
	if store != nil {
		res.Url = store.URLFor(attachment.FileKey)
	}
	return res
}

// replacedKey returns the old key when an update swaps it for a different
// one. Clearing a key does not orphan the object until it is replaced.
func replacedKey(old, next *string) string {
	if old == nil || *old == "" || next == nil || *next == "" || *old == *next {
		return ""
	}
	return *old
}
