package contract

import (
	"context"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/repository/specification"
)

type SegmentRepository interface {
	Create(ctx context.Context, segment *entity.Segment) error
	Update(ctx context.Context, segment *entity.Segment) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Segment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Segment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// NextOrder returns max(order)+1 for the course, or 0 when it has no segments.
	NextOrder(ctx context.Context, courseId int64) (int, error)
	CountByCourseIDs(ctx context.Context, courseIds []int64) (map[int64]int64, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error)
}
