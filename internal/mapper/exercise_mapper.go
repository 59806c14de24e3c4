package mapper

import (
	"coursehub-be/internal/entity"
	"coursehub-be/internal/model"
)

type ExerciseMapper struct{}

func NewExerciseMapper() *ExerciseMapper {
	return &ExerciseMapper{}
}

func (m *ExerciseMapper) ToEntity(e *model.Exercise) *entity.Exercise {
	if e == nil {
		return nil
	}
	return &entity.Exercise{
		Id:        e.Id,
		UserId:    e.UserId,
		Exercise:  e.Exercise,
		Weight:    e.Weight,
		Reps:      e.Reps,
		Sets:      e.Sets,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ExerciseMapper) ToModel(e *entity.Exercise) *model.Exercise {
	if e == nil {
		return nil
	}
	return &model.Exercise{
		Id:        e.Id,
		UserId:    e.UserId,
		Exercise:  e.Exercise,
		Weight:    e.Weight,
		Reps:      e.Reps,
		Sets:      e.Sets,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ExerciseMapper) ToEntities(exercises []*model.Exercise) []*entity.Exercise {
	entities := make([]*entity.Exercise, len(exercises))
	for i, e := range exercises {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
