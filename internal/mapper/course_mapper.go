package mapper

import (
	"coursehub-be/internal/entity"
	"coursehub-be/internal/model"
)

type CourseMapper struct{}

func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func (m *CourseMapper) ToEntity(c *model.Course) *entity.Course {
	if c == nil {
		return nil
	}
	return &entity.Course{
		Id:          c.Id,
		UserId:      c.UserId,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		VideoKey:    c.VideoKey,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *CourseMapper) ToModel(c *entity.Course) *model.Course {
	if c == nil {
		return nil
	}
	return &model.Course{
		Id:          c.Id,
		UserId:      c.UserId,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		VideoKey:    c.VideoKey,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *CourseMapper) ToEntities(courses []*model.Course) []*entity.Course {
	entities := make([]*entity.Course, len(courses))
	for i, c := range courses {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CourseMapper) BookmarkToEntity(b *model.CourseBookmark) *entity.CourseBookmark {
	if b == nil {
		return nil
	}
	return &entity.CourseBookmark{
		Id:        b.Id,
		UserId:    b.UserId,
		CourseId:  b.CourseId,
		CreatedAt: b.CreatedAt,
	}
}

func (m *CourseMapper) BookmarkToModel(b *entity.CourseBookmark) *model.CourseBookmark {
	if b == nil {
		return nil
	}
	return &model.CourseBookmark{
		Id:        b.Id,
		UserId:    b.UserId,
		CourseId:  b.CourseId,
		CreatedAt: b.CreatedAt,
	}
}
