package contract

import (
	"context"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/repository/specification"
)

type ChartSnapshotRepository interface {
	Create(ctx context.Context, snapshot *entity.ChartSnapshot) error
	UpdateAnalysis(ctx context.Context, snapshot *entity.ChartSnapshot) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChartSnapshot, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChartSnapshot, error)
}

type ChartScreenshotRepository interface {
	CreateBatch(ctx context.Context, screenshots []*entity.ChartScreenshot) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChartScreenshot, error)
}
