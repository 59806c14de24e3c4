package service

import (
	"context"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/pkg/events"
	"coursehub-be/pkg/storage"
)

type IBookmarkService interface {
	BookmarkCourse(ctx context.Context, userId, courseId int64) error
	UnbookmarkCourse(ctx context.Context, userId, courseId int64) error
	IsBookmarked(ctx context.Context, userId, courseId int64) (bool, error)
	ToggleBookmark(ctx context.Context, userId, courseId int64) (*dto.BookmarkStatusResponse, error)
	GetBookmarkedCourses(ctx context.Context, userId int64) ([]*dto.BookmarkedCourseResponse, error)
}

type bookmarkService struct {
	uowFactory unitofwork.RepositoryFactory
	storage    storage.ObjectStorage
	events     eventPublisher
}

func NewBookmarkService(
	uowFactory unitofwork.RepositoryFactory,
	storage storage.ObjectStorage,
	publisher events.Publisher,
	logger logger.ILogger,
) IBookmarkService {
	return &bookmarkService{
		uowFactory: uowFactory,
		storage:    storage,
		events:     eventPublisher{publisher: publisher, logger: logger},
	}
}

// BookmarkCourse is idempotent: bookmarking twice leaves one row.
func (c *bookmarkService) BookmarkCourse(ctx context.Context, userId, courseId int64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if _, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId}); err != nil {
		return notFoundAs(err, "course", courseId)
	}

	if err := uow.BookmarkRepository().Create(ctx, &entity.CourseBookmark{UserId: userId, CourseId: courseId}); err != nil {
		return err
	}

	c.events.publish(ctx, events.CourseBookmarked, map[string]interface{}{
		"course_id": courseId,
		"user_id":   userId,
	})
	return nil
}

// UnbookmarkCourse removes every row for the pair.
func (c *bookmarkService) UnbookmarkCourse(ctx context.Context, userId, courseId int64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	removed, err := uow.BookmarkRepository().DeleteAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByCourseID{CourseID: courseId},
	)
	if err != nil {
		return err
	}

	if removed > 0 {
		c.events.publish(ctx, events.CourseUnbookmarked, map[string]interface{}{
			"course_id": courseId,
			"user_id":   userId,
		})
	}
	return nil
}

func (c *bookmarkService) IsBookmarked(ctx context.Context, userId, courseId int64) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.BookmarkRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByCourseID{CourseID: courseId},
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *bookmarkService) ToggleBookmark(ctx context.Context, userId, courseId int64) (*dto.BookmarkStatusResponse, error) {
	bookmarked, err := c.IsBookmarked(ctx, userId, courseId)
	if err != nil {
		return nil, err
	}

	if bookmarked {
		err = c.UnbookmarkCourse(ctx, userId, courseId)
	} else {
		err = c.BookmarkCourse(ctx, userId, courseId)
	}
	if err != nil {
		return nil, err
	}

	return &dto.BookmarkStatusResponse{CourseId: courseId, Bookmarked: !bookmarked}, nil
}

func (c *bookmarkService) GetBookmarkedCourses(ctx context.Context, userId int64) ([]*dto.BookmarkedCourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	courses, err := uow.CourseRepository().FindAll(ctx,
		specification.BookmarkedBy{UserID: userId},
		specification.OrderBy{Field: "title"},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.BookmarkedCourseResponse, 0, len(courses))
	if len(courses) == 0 {
		return result, nil
	}

	ids := make([]int64, len(courses))
	for i, course := range courses {
		ids[i] = course.Id
	}
	counts, err := uow.SegmentRepository().CountByCourseIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, course := range courses {
		result = append(result, &dto.BookmarkedCourseResponse{
			CourseResponse: *toCourseResponse(course, c.storage),
			TotalSegments:  counts[course.Id],
		})
	}
	return result, nil
}
