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

type AttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AttachmentMapper
}

func NewAttachmentRepository(db *gorm.DB) contract.AttachmentRepository {
	return &AttachmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewAttachmentMapper(),
	}
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *entity.Attachment) error {
	m := r.mapper.ToModel(attachment)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	*attachment = *r.mapper.ToEntity(m)
	return nil
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Attachment{}, id).Error
}

func (r *AttachmentRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	res := query.Delete(&model.Attachment{})
	return res.RowsAffected, res.Error
}

func (r *AttachmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error) {
	var m model.Attachment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AttachmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error) {
	var models []*model.Attachment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
