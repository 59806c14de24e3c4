package unitofwork

import (
	"context"

	"coursehub-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	CourseRepository() contract.CourseRepository
	BookmarkRepository() contract.BookmarkRepository
	SegmentRepository() contract.SegmentRepository
	AttachmentRepository() contract.AttachmentRepository
	ExerciseRepository() contract.ExerciseRepository
	ChartSnapshotRepository() contract.ChartSnapshotRepository
	ChartScreenshotRepository() contract.ChartScreenshotRepository
	UploadRepository() contract.UploadRepository
	FileDeletionRepository() contract.FileDeletionRepository
}
