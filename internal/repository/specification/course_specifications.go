package specification

import (
	"strings"

	"gorm.io/gorm"
)

// CourseSearch matches the term as a case-insensitive substring of either
// the title or the category.
type CourseSearch struct {
	Term string
}

func (s CourseSearch) Apply(db *gorm.DB) *gorm.DB {
	term := strings.TrimSpace(s.Term)
	if term == "" {
		return db
	}
	pattern := "%" + strings.ToLower(term) + "%"
	return db.Where("(LOWER(title) LIKE ? OR LOWER(category) LIKE ?)", pattern, pattern)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	if s.Category == "" {
		return db
	}
	return db.Where("category = ?", s.Category)
}

type ByCourseID struct {
	CourseID int64
}

func (s ByCourseID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("course_id = ?", s.CourseID)
}

// BookmarkedBy restricts courses to those the user has bookmarked.
type BookmarkedBy struct {
	UserID int64
}

func (s BookmarkedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).
			Table("course_bookmarks").
			Select("course_id").
			Where("user_id = ?", s.UserID))
}
