package contract

import (
	"context"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/repository/specification"
)

type UploadRepository interface {
	Create(ctx context.Context, upload *entity.Upload) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Upload, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Upload, error)
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
}
