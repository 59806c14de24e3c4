package mapper

import (
	"coursehub-be/internal/entity"
	"coursehub-be/internal/model"
)

type FileDeletionMapper struct{}

func NewFileDeletionMapper() *FileDeletionMapper {
	return &FileDeletionMapper{}
}

func (m *FileDeletionMapper) ToEntity(f *model.FileDeletion) *entity.FileDeletion {
	if f == nil {
		return nil
	}
	return &entity.FileDeletion{
		Id:        f.Id,
		FileKey:   f.FileKey,
		Reason:    f.Reason,
		Attempts:  f.Attempts,
		LastError: f.LastError,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (m *FileDeletionMapper) ToModel(f *entity.FileDeletion) *model.FileDeletion {
	if f == nil {
		return nil
	}
	return &model.FileDeletion{
		Id:        f.Id,
		FileKey:   f.FileKey,
		Reason:    f.Reason,
		Attempts:  f.Attempts,
		LastError: f.LastError,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (m *FileDeletionMapper) ToEntities(rows []*model.FileDeletion) []*entity.FileDeletion {
	entities := make([]*entity.FileDeletion, len(rows))
	for i, f := range rows {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
