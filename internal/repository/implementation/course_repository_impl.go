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

type CourseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseMapper
}

func NewCourseRepository(db *gorm.DB) contract.CourseRepository {
	return &CourseRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseMapper(),
	}
}

func (r *CourseRepositoryImpl) Create(ctx context.Context, course *entity.Course) error {
	m := r.mapper.ToModel(course)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	*course = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseRepositoryImpl) Update(ctx context.Context, course *entity.Course) error {
	m := r.mapper.ToModel(course)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	*course = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	var m model.Course
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CourseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error) {
	var models []*model.Course
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CourseRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Course{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
