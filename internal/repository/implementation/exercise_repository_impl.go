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

type ExerciseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExerciseMapper
}

func NewExerciseRepository(db *gorm.DB) contract.ExerciseRepository {
	return &ExerciseRepositoryImpl{
		db:     db,
		mapper: mapper.NewExerciseMapper(),
	}
}

func (r *ExerciseRepositoryImpl) Create(ctx context.Context, exercise *entity.Exercise) error {
	m := r.mapper.ToModel(exercise)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	*exercise = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExerciseRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Exercise{}, id).Error
}

func (r *ExerciseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Exercise, error) {
	var m model.Exercise
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ExerciseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Exercise, error) {
	var models []*model.Exercise
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
