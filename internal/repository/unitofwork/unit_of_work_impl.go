package unitofwork

import (
	"context"
	"fmt"

	"coursehub-be/internal/repository/contract"
	"coursehub-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // non-nil between Begin and Commit/Rollback
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback is a no-op after Commit, so it can always be deferred.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SessionRepository() contract.SessionRepository {
	return implementation.NewSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CourseRepository() contract.CourseRepository {
	return implementation.NewCourseRepository(u.getDB())
}

func (u *UnitOfWorkImpl) BookmarkRepository() contract.BookmarkRepository {
	return implementation.NewBookmarkRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SegmentRepository() contract.SegmentRepository {
	return implementation.NewSegmentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AttachmentRepository() contract.AttachmentRepository {
	return implementation.NewAttachmentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ExerciseRepository() contract.ExerciseRepository {
	return implementation.NewExerciseRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChartSnapshotRepository() contract.ChartSnapshotRepository {
	return implementation.NewChartSnapshotRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChartScreenshotRepository() contract.ChartScreenshotRepository {
	return implementation.NewChartScreenshotRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UploadRepository() contract.UploadRepository {
	return implementation.NewUploadRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FileDeletionRepository() contract.FileDeletionRepository {
	return implementation.NewFileDeletionRepository(u.getDB())
}
