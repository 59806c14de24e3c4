package implementation

import (
	"context"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/mapper"
	"coursehub-be/internal/model"
	"coursehub-be/internal/repository/contract"
	"coursehub-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChartSnapshotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChartMapper
}

func NewChartSnapshotRepository(db *gorm.DB) contract.ChartSnapshotRepository {
	return &ChartSnapshotRepositoryImpl{
		db:     db,
		mapper: mapper.NewChartMapper(),
	}
}

func (r *ChartSnapshotRepositoryImpl) Create(ctx context.Context, snapshot *entity.ChartSnapshot) error {
	m := r.mapper.ToModel(snapshot)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	snapshot.Id = m.Id
	snapshot.CreatedAt = m.CreatedAt
	return nil
}

func (r *ChartSnapshotRepositoryImpl) UpdateAnalysis(ctx context.Context, snapshot *entity.ChartSnapshot) error {
	m := r.mapper.ToModel(snapshot)
	return r.db.WithContext(ctx).
		Model(&model.ChartSnapshot{Id: snapshot.Id}).
		Select("recommendation", "confidence", "analysis", "patterns").
		Updates(m).Error
}

// Delete removes the screenshots explicitly so the result does not depend on
// the driver enforcing foreign keys.
func (r *ChartSnapshotRepositoryImpl) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("snapshot_id = ?", id).Delete(&model.ChartScreenshot{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.ChartSnapshot{}, id).Error
}

func (r *ChartSnapshotRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChartSnapshot, error) {
	var m model.ChartSnapshot
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChartSnapshotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChartSnapshot, error) {
	var models []*model.ChartSnapshot
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type ChartScreenshotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChartMapper
}

func NewChartScreenshotRepository(db *gorm.DB) contract.ChartScreenshotRepository {
	return &ChartScreenshotRepositoryImpl{
		db:     db,
		mapper: mapper.NewChartMapper(),
	}
}

func (r *ChartScreenshotRepositoryImpl) CreateBatch(ctx context.Context, screenshots []*entity.ChartScreenshot) error {
	if len(screenshots) == 0 {
		return nil
	}
	models := make([]*model.ChartScreenshot, len(screenshots))
	for i, s := range screenshots {
		models[i] = r.mapper.ScreenshotToModel(s)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*screenshots[i] = *r.mapper.ScreenshotToEntity(m)
	}
	return nil
}

func (r *ChartScreenshotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChartScreenshot, error) {
	var models []*model.ChartScreenshot
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.ChartScreenshot, len(models))
	for i, m := range models {
		out[i] = r.mapper.ScreenshotToEntity(m)
	}
	return out, nil
}
