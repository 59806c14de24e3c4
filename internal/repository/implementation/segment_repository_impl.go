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

type SegmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SegmentMapper
}

func NewSegmentRepository(db *gorm.DB) contract.SegmentRepository {
	return &SegmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewSegmentMapper(),
	}
}

func (r *SegmentRepositoryImpl) Create(ctx context.Context, segment *entity.Segment) error {
	m := r.mapper.ToModel(segment)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	*segment = *r.mapper.ToEntity(m)
	return nil
}

func (r *SegmentRepositoryImpl) Update(ctx context.Context, segment *entity.Segment) error {
	m := r.mapper.ToModel(segment)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	*segment = *r.mapper.ToEntity(m)
	return nil
}

func (r *SegmentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Segment{}, id).Error
}

func (r *SegmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Segment, error) {
	var m model.Segment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SegmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Segment, error) {
	var models []*model.Segment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SegmentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Segment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SegmentRepositoryImpl) NextOrder(ctx context.Context, courseId int64) (int, error) {
	var next int
	err := r.db.WithContext(ctx).
		Model(&model.Segment{}).
		Where("course_id = ?", courseId).
		Select(`COALESCE(MAX("order"), -1) + 1`).
		Scan(&next).Error
	return next, err
}

func (r *SegmentRepositoryImpl) CountByCourseIDs(ctx context.Context, courseIds []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(courseIds))
	if len(courseIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		CourseId int64
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Segment{}).
		Select("course_id, COUNT(*) AS total").
		Where("course_id IN ?", courseIds).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CourseId] = row.Total
	}
	return counts, nil
}
