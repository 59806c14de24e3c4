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

type UploadRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UploadMapper
}

func NewUploadRepository(db *gorm.DB) contract.UploadRepository {
	return &UploadRepositoryImpl{
		db:     db,
		mapper: mapper.NewUploadMapper(),
	}
}

func (r *UploadRepositoryImpl) Create(ctx context.Context, upload *entity.Upload) error {
	m := r.mapper.ToModel(upload)
	if err := r.db.WithContext(ctx).Omit("User").Create(m).Error; err != nil {
		return err
	}
	*upload = *r.mapper.ToEntity(m)
	return nil
}

func (r *UploadRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Upload, error) {
	var m model.Upload
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UploadRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Upload, error) {
	var models []*model.Upload
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *UploadRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	result := query.Delete(&model.Upload{})
	return result.RowsAffected, result.Error
}
