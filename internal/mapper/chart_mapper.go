package mapper

import (
	"coursehub-be/internal/entity"
	"coursehub-be/internal/model"

	"gorm.io/datatypes"
)

type ChartMapper struct{}

func NewChartMapper() *ChartMapper {
	return &ChartMapper{}
}

func (m *ChartMapper) ToEntity(s *model.ChartSnapshot) *entity.ChartSnapshot {
	if s == nil {
		return nil
	}

	var rec *entity.Recommendation
	if s.Recommendation != nil {
		r := entity.Recommendation(*s.Recommendation)
		rec = &r
	}

	patterns := []string(s.Patterns)
	if patterns == nil {
		patterns = []string{}
	}

	screenshots := make([]*entity.ChartScreenshot, 0, len(s.Screenshots))
	for i := range s.Screenshots {
		screenshots = append(screenshots, m.ScreenshotToEntity(&s.Screenshots[i]))
	}

	return &entity.ChartSnapshot{
		Id:             s.Id,
		UserId:         s.UserId,
		Symbol:         s.Symbol,
		Recommendation: rec,
		Confidence:     s.Confidence,
		Analysis:       s.Analysis,
		Patterns:       patterns,
		CreatedAt:      s.CreatedAt,
		Screenshots:    screenshots,
	}
}

// ToModel leaves Screenshots empty; they are written through their own
// repository.
func (m *ChartMapper) ToModel(s *entity.ChartSnapshot) *model.ChartSnapshot {
	if s == nil {
		return nil
	}

	var rec *string
	if s.Recommendation != nil {
		r := string(*s.Recommendation)
		rec = &r
	}

	patterns := datatypes.JSONSlice[string]{}
	if s.Patterns != nil {
		patterns = datatypes.JSONSlice[string](s.Patterns)
	}

	return &model.ChartSnapshot{
		Id:             s.Id,
		UserId:         s.UserId,
		Symbol:         s.Symbol,
		Recommendation: rec,
		Confidence:     s.Confidence,
		Analysis:       s.Analysis,
		Patterns:       patterns,
		CreatedAt:      s.CreatedAt,
	}
}

func (m *ChartMapper) ToEntities(snapshots []*model.ChartSnapshot) []*entity.ChartSnapshot {
	entities := make([]*entity.ChartSnapshot, len(snapshots))
	for i, s := range snapshots {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *ChartMapper) ScreenshotToEntity(s *model.ChartScreenshot) *entity.ChartScreenshot {
	if s == nil {
		return nil
	}
	return &entity.ChartScreenshot{
		Id:         s.Id,
		SnapshotId: s.SnapshotId,
		Timeframe:  s.Timeframe,
		FileKey:    s.FileKey,
		CreatedAt:  s.CreatedAt,
	}
}

func (m *ChartMapper) ScreenshotToModel(s *entity.ChartScreenshot) *model.ChartScreenshot {
	if s == nil {
		return nil
	}
	return &model.ChartScreenshot{
		Id:         s.Id,
		SnapshotId: s.SnapshotId,
		Timeframe:  s.Timeframe,
		FileKey:    s.FileKey,
		CreatedAt:  s.CreatedAt,
	}
}
