package mapper

import (
	"coursehub-be/internal/entity"
	"coursehub-be/internal/model"
)

type SegmentMapper struct{}

func NewSegmentMapper() *SegmentMapper {
	return &SegmentMapper{}
}

func (m *SegmentMapper) ToEntity(s *model.Segment) *entity.Segment {
	if s == nil {
		return nil
	}
	return &entity.Segment{
		Id:        s.Id,
		CourseId:  s.CourseId,
		Title:     s.Title,
		Content:   s.Content,
		Order:     s.Order,
		VideoKey:  s.VideoKey,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *SegmentMapper) ToModel(s *entity.Segment) *model.Segment {
	if s == nil {
		return nil
	}
	return &model.Segment{
		Id:        s.Id,
		CourseId:  s.CourseId,
		Title:     s.Title,
		Content:   s.Content,
		Order:     s.Order,
		VideoKey:  s.VideoKey,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *SegmentMapper) ToEntities(segments []*model.Segment) []*entity.Segment {
	entities := make([]*entity.Segment, len(segments))
	for i, s := range segments {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

type AttachmentMapper struct{}

func NewAttachmentMapper() *AttachmentMapper {
	return &AttachmentMapper{}
}

func (m *AttachmentMapper) ToEntity(a *model.Attachment) *entity.Attachment {
	if a == nil {
		return nil
	}
	return &entity.Attachment{
		Id:        a.Id,
		SegmentId: a.SegmentId,
		FileName:  a.FileName,
		FileKey:   a.FileKey,
		CreatedAt: a.CreatedAt,
	}
}

func (m *AttachmentMapper) ToModel(a *entity.Attachment) *model.Attachment {
	if a == nil {
		return nil
	}
	return &model.Attachment{
		Id:        a.Id,
		SegmentId: a.SegmentId,
		FileName:  a.FileName,
		FileKey:   a.FileKey,
		CreatedAt: a.CreatedAt,
	}
}

func (m *AttachmentMapper) ToEntities(attachments []*model.Attachment) []*entity.Attachment {
	entities := make([]*entity.Attachment, len(attachments))
	for i, a := range attachments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
