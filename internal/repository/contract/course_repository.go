package contract

import (
	"context"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/repository/specification"
)

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	Update(ctx context.Context, course *entity.Course) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type BookmarkRepository interface {
	// Create is a no-op when the (user, course) pair already exists.
	Create(ctx context.Context, bookmark *entity.CourseBookmark) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseBookmark, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
