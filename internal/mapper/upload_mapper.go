package mapper

import (
	"coursehub-be/internal/entity"
	"coursehub-be/internal/model"
)

type UploadMapper struct{}

func NewUploadMapper() *UploadMapper {
	return &UploadMapper{}
}

func (m *UploadMapper) ToEntity(u *model.Upload) *entity.Upload {
	if u == nil {
		return nil
	}
	return &entity.Upload{
		Id:          u.Id,
		UserId:      u.UserId,
		FileKey:     u.FileKey,
		ContentType: u.ContentType,
		CreatedAt:   u.CreatedAt,
	}
}

func (m *UploadMapper) ToModel(u *entity.Upload) *model.Upload {
	if u == nil {
		return nil
	}
	return &model.Upload{
		Id:          u.Id,
		UserId:      u.UserId,
		FileKey:     u.FileKey,
		ContentType: u.ContentType,
		CreatedAt:   u.CreatedAt,
	}
}

func (m *UploadMapper) ToEntities(rows []*model.Upload) []*entity.Upload {
	entities := make([]*entity.Upload, len(rows))
	for i, u := range rows {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
