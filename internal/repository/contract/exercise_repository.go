package contract

import (
	"context"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/repository/specification"
)

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *entity.Exercise) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Exercise, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Exercise, error)
}
