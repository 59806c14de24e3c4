package specification

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BySegmentID struct {
	SegmentID int64
}

func (s BySegmentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("segment_id = ?", s.SegmentID)
}

type OrderLessThan struct {
	Order int
}

func (s OrderLessThan) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Lt{Column: clause.Column{Name: "order"}, Value: s.Order})
}

type OrderGreaterThan struct {
	Order int
}

func (s OrderGreaterThan) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Gt{Column: clause.Column{Name: "order"}, Value: s.Order})
}
