package service

import (
	"context"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/pkg/storage"
)

type ISnapshotService interface {
	CreateSnapshot(ctx context.Context, userId int64, req *dto.CreateSnapshotRequest) (*dto.SnapshotResponse, error)
	GetSnapshots(ctx context.Context, userId int64) ([]*dto.SnapshotResponse, error)
	GetSnapshot(ctx context.Context, userId, snapshotId int64) (*dto.SnapshotResponse, error)
	DeleteSnapshot(ctx context.Context, userId, snapshotId int64) error
}

type snapshotService struct {
	uowFactory unitofwork.RepositoryFactory
	uploads    UploadAccess
	cleanup    IFileCleanupService
	storage    storage.ObjectStorage
	logger     logger.ILogger
}

func NewSnapshotService(
	uowFactory unitofwork.RepositoryFactory,
	cleanup IFileCleanupService,
	storage storage.ObjectStorage,
	logger logger.ILogger,
) ISnapshotService {
	return &snapshotService{
		uowFactory: uowFactory,
		cleanup:    cleanup,
		storage:    storage,
		logger:     logger,
	}
}

func toSnapshotResponse(snapshot *entity.ChartSnapshot, store storage.ObjectStorage) *dto.SnapshotResponse {
	res := &dto.SnapshotResponse{
		Id:          snapshot.Id,
		Symbol:      snapshot.Symbol,
		Confidence:  snapshot.Confidence,
		Analysis:    snapshot.Analysis,
		Patterns:    snapshot.Patterns,
		Screenshots: make([]*dto.ScreenshotResponse, 0, len(snapshot.Screenshots)),
		CreatedAt:   snapshot.CreatedAt,
	}
	if res.Patterns == nil {
		res.Patterns = []string{}
	}
	if snapshot.Recommendation != nil {
		rec := string(*snapshot.Recommendation)
		res.Recommendation = &rec
	}
	for _, shot := range snapshot.Screenshots {
		res.Screenshots = append(res.Screenshots, &dto.ScreenshotResponse{
			Id:        shot.Id,
			Timeframe: shot.Timeframe,
			FileKey:   shot.FileKey,
			Url:       store.URLFor(shot.FileKey),
			CreatedAt: shot.CreatedAt,
		})
	}
	return res
}

func imageKeys(images []dto.ChartImageRequest) []string {
	keys := make([]string, len(images))
	for i, image := range images {
		keys[i] = image.ImageId
	}
	return keys
}

// applyAnalysis copies an analysis result onto the snapshot.
func applyAnalysis(snapshot *entity.ChartSnapshot, analysis *dto.ChartAnalysis) {
	rec := entity.Recommendation(analysis.Recommendation)
	confidence := analysis.Confidence
	text := analysis.Analysis
	snapshot.Recommendation = &rec
	snapshot.Confidence = &confidence
	snapshot.Analysis = &text
	snapshot.Patterns = analysis.Patterns
	if snapshot.Patterns == nil {
		snapshot.Patterns = []string{}
	}
}

func (c *snapshotService) CreateSnapshot(ctx context.Context, userId int64, req *dto.CreateSnapshotRequest) (*dto.SnapshotResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := c.uploads.AssertOwnedKeys(ctx, uow, userId, imageKeys(req.Images)...); err != nil {
		return nil, err
	}

	snapshot := &entity.ChartSnapshot{
		UserId:   userId,
		Symbol:   req.Symbol,
		Patterns: []string{},
	}
	if req.Analysis != nil {
		applyAnalysis(snapshot, req.Analysis)
	}
	if err := uow.ChartSnapshotRepository().Create(ctx, snapshot); err != nil {
		return nil, err
	}

	screenshots := make([]*entity.ChartScreenshot, 0, len(req.Images))
	for _, image := range req.Images {
		screenshots = append(screenshots, &entity.ChartScreenshot{
			SnapshotId: snapshot.Id,
			Timeframe:  image.Timeframe,
			FileKey:    image.ImageId,
		})
	}
	if err := uow.ChartScreenshotRepository().CreateBatch(ctx, screenshots); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	snapshot.Screenshots = screenshots
	return toSnapshotResponse(snapshot, c.storage), nil
}

func (c *snapshotService) GetSnapshots(ctx context.Context, userId int64) ([]*dto.SnapshotResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	snapshots, err := uow.ChartSnapshotRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.WithScreenshots{},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SnapshotResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		result = append(result, toSnapshotResponse(snapshot, c.storage))
	}
	return result, nil
}

func (c *snapshotService) GetSnapshot(ctx context.Context, userId, snapshotId int64) (*dto.SnapshotResponse, error) {
	snapshot, err := findOwnedSnapshot(ctx, c.uowFactory.NewUnitOfWork(ctx), userId, snapshotId)
	if err != nil {
		return nil, err
	}
	return toSnapshotResponse(snapshot, c.storage), nil
}

func (c *snapshotService) DeleteSnapshot(ctx context.Context, userId, snapshotId int64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	snapshot, err := findOwnedSnapshot(ctx, uow, userId, snapshotId)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(snapshot.Screenshots))
	for _, shot := range snapshot.Screenshots {
		keys = append(keys, shot.FileKey)
	}
	pending, err := c.cleanup.Enqueue(ctx, uow, "snapshot deleted", keys...)
	if err != nil {
		return err
	}

	if err := uow.ChartSnapshotRepository().Delete(ctx, snapshot.Id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}
	c.cleanup.Notify(ctx, pending)
	return nil
}

func findOwnedSnapshot(ctx context.Context, uow unitofwork.UnitOfWork, userId, snapshotId int64) (*entity.ChartSnapshot, error) {
	snapshot, err := uow.ChartSnapshotRepository().FindOne(ctx,
		specification.ByID{ID: snapshotId},
		specification.WithScreenshots{},
	)
	if err != nil {
		return nil, notFoundAs(err, "snapshot", snapshotId)
	}
	if snapshot.UserId != userId {
		return nil, apperror.Forbidden("you do not own this snapshot")
	}
	return snapshot, nil
}
