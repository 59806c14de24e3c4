package specification

import "gorm.io/gorm"

// PendingDeletion selects outbox rows that have not exhausted their retries.
type PendingDeletion struct {
	MaxAttempts int
}

func (s PendingDeletion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("attempts < ?", s.MaxAttempts)
}

type ByFileKey struct {
	FileKey string
}

func (s ByFileKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_key = ?", s.FileKey)
}

type ByFileKeys struct {
	FileKeys []string
}

func (s ByFileKeys) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_key IN ?", s.FileKeys)
}
