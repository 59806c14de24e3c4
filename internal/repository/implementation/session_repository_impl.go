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

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.Session) error {
	m := r.mapper.SessionToModel(session)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *SessionRepositoryImpl) Update(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).
		Model(&model.Session{Id: session.Id}).
		Update("expires_at", session.ExpiresAt).Error
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Session{Id: id}).Error
}

func (r *SessionRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	res := query.Delete(&model.Session{})
	return res.RowsAffected, res.Error
}

func (r *SessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	var m model.Session
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.mapper.SessionToEntity(&m), nil
}
