package implementation

import (
	"context"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/mapper"
	"coursehub-be/internal/model"
	"coursehub-be/internal/repository/contract"
	"coursehub-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FileDeletionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileDeletionMapper
}

func NewFileDeletionRepository(db *gorm.DB) contract.FileDeletionRepository {
	return &FileDeletionRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileDeletionMapper(),
	}
}

func (r *FileDeletionRepositoryImpl) CreateBatch(ctx context.Context, rows []*entity.FileDeletion) error {
	if len(rows) == 0 {
		return nil
	}
	models := make([]*model.FileDeletion, len(rows))
	for i, row := range rows {
		models[i] = r.mapper.ToModel(row)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*rows[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *FileDeletionRepositoryImpl) RecordFailure(ctx context.Context, id int64, message string) error {
	return r.db.WithContext(ctx).
		Model(&model.FileDeletion{Id: id}).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": message,
		}).Error
}

func (r *FileDeletionRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.FileDeletion{}, id).Error
}

func (r *FileDeletionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileDeletion, error) {
	var m model.FileDeletion
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FileDeletionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileDeletion, error) {
	var models []*model.FileDeletion
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FileDeletionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.FileDeletion{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *FileDeletionRepositoryImpl) IsReferenced(ctx context.Context, key string) (bool, error) {
	referrers := []struct {
		model  interface{}
		column string
	}{
		{&model.Course{}, "video_key"},
		{&model.Segment{}, "video_key"},
		{&model.Attachment{}, "file_key"},
		{&model.ChartScreenshot{}, "file_key"},
	}
	for _, ref := range referrers {
		var count int64
		err := r.db.WithContext(ctx).Model(ref.model).
			Where(ref.column+" = ?", key).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
