package testutil

import (
	"fmt"
	"testing"

	"coursehub-be/internal/model"

	"gorm.io/gorm"
)

func CreateUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Email: &email}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func CreateCourse(t *testing.T, db *gorm.DB, ownerID int64, title, category string) *model.Course {
	t.Helper()
	c := &model.Course{UserId: ownerID, Title: title, Category: category}
	if err := db.Omit("User").Create(c).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return c
}

func CreateSegment(t *testing.T, db *gorm.DB, courseID int64, order int) *model.Segment {
	t.Helper()
	s := &model.Segment{CourseId: courseID, Title: fmt.Sprintf("Segment %d", order), Order: order}
	if err := db.Omit("Course").Create(s).Error; err != nil {
		t.Fatalf("create segment: %v", err)
	}
	return s
}

func CreateAttachment(t *testing.T, db *gorm.DB, segmentID int64, key string) *model.Attachment {
	t.Helper()
	a := &model.Attachment{SegmentId: segmentID, FileName: key, FileKey: key}
	if err := db.Omit("Segment").Create(a).Error; err != nil {
		t.Fatalf("create attachment: %v", err)
	}
	return a
}

// CreateUpload records key as issued to userID, as PresignUpload would.
func CreateUpload(t *testing.T, db *gorm.DB, userID int64, key string) *model.Upload {
	t.Helper()
	u := &model.Upload{UserId: userID, FileKey: key}
	if err := db.Omit("User").Create(u).Error; err != nil {
		t.Fatalf("create upload: %v", err)
	}
	return u
}
