package specification

import "gorm.io/gorm"

type BySnapshotID struct {
	SnapshotID int64
}

func (s BySnapshotID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("snapshot_id = ?", s.SnapshotID)
}

// WithScreenshots eager-loads the snapshot's screenshots in insert order.
type WithScreenshots struct{}

func (s WithScreenshots) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Screenshots", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	})
}
