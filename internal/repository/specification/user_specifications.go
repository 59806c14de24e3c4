package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByGoogleID struct {
	GoogleID string
}

func (s ByGoogleID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("google_id = ?", s.GoogleID)
}

type ExpiresBefore struct {
	Time time.Time
}

func (s ExpiresBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at < ?", s.Time)
}

// BySessionID matches the text primary key of sessions.
type BySessionID struct {
	ID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}
