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

type BookmarkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseMapper
}

func NewBookmarkRepository(db *gorm.DB) contract.BookmarkRepository {
	return &BookmarkRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseMapper(),
	}
}

func (r *BookmarkRepositoryImpl) Create(ctx context.Context, bookmark *entity.CourseBookmark) error {
	m := r.mapper.BookmarkToModel(bookmark)
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(m).Error
}

func (r *BookmarkRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	res := query.Delete(&model.CourseBookmark{})
	return res.RowsAffected, res.Error
}

func (r *BookmarkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseBookmark, error) {
	var models []*model.CourseBookmark
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.CourseBookmark, len(models))
	for i, m := range models {
		out[i] = r.mapper.BookmarkToEntity(m)
	}
	return out, nil
}

func (r *BookmarkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.CourseBookmark{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
