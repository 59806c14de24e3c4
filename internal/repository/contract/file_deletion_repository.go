package contract

import (
	"context"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/repository/specification"
)

type FileDeletionRepository interface {
	CreateBatch(ctx context.Context, rows []*entity.FileDeletion) error
	// RecordFailure bumps attempts and stores the last error message.
	RecordFailure(ctx context.Context, id int64, message string) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileDeletion, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileDeletion, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// IsReferenced reports whether a course, segment, attachment or
	// screenshot row still points at key.
	IsReferenced(ctx context.Context, key string) (bool, error)
}
