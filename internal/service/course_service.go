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

type ICourseService interface {
	CreateCourse(ctx context.Context, userId int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, courseId int64) (*dto.CourseResponse, error)
	GetCourses(ctx context.Context, req *dto.GetCoursesRequest) ([]*dto.CourseResponse, error)
	IsCourseAdmin(ctx context.Context, userId, courseId int64) (bool, error)
	UpdateCourse(ctx context.Context, userId int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	GetCourseDetail(ctx context.Context, viewerId *int64, courseId int64) (*dto.CourseDetailResponse, error)
}

type courseService struct {
	uowFactory unitofwork.RepositoryFactory
	access     CourseAccess
	uploads    UploadAccess
	cleanup    IFileCleanupService
	storage    storage.ObjectStorage
	events     eventPublisher
	logger     logger.ILogger
}

func NewCourseService(
	uowFactory unitofwork.RepositoryFactory,
	cleanup IFileCleanupService,
	storage storage.ObjectStorage,
	publisher events.Publisher,
	logger logger.ILogger,
) ICourseService {
	return &courseService{
		uowFactory: uowFactory,
		cleanup:    cleanup,
		storage:    storage,
		events:     eventPublisher{publisher: publisher, logger: logger},
		logger:     logger,
	}
}

func (c *courseService) CreateCourse(ctx context.Context, userId int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if err := c.uploads.AssertOwnedKeys(ctx, uow, userId, changedKey(nil, req.VideoKey)); err != nil {
		return nil, err
	}

	course := &entity.Course{
		UserId:      userId,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		VideoKey:    req.VideoKey,
	}
	if err := uow.CourseRepository().Create(ctx, course); err != nil {
		return nil, err
	}

	c.events.publish(ctx, events.CourseCreated, map[string]interface{}{
		"course_id": course.Id,
		"user_id":   userId,
		"title":     course.Title,
	})

	return toCourseResponse(course, c.storage), nil
}

func (c *courseService) GetCourse(ctx context.Context, courseId int64) (*dto.CourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, notFoundAs(err, "course", courseId)
	}
	return toCourseResponse(course, c.storage), nil
}

func (c *courseService) GetCourses(ctx context.Context, req *dto.GetCoursesRequest) ([]*dto.CourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	courses, err := uow.CourseRepository().FindAll(ctx,
		specification.CourseSearch{Term: req.Search},
		specification.ByCategory{Category: req.Category},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		result = append(result, toCourseResponse(course, c.storage))
	}
	return result, nil
}

func (c *courseService) IsCourseAdmin(ctx context.Context, userId, courseId int64) (bool, error) {
	return c.access.IsCourseAdmin(ctx, c.uowFactory.NewUnitOfWork(ctx), userId, courseId)
}

func (c *courseService) UpdateCourse(ctx context.Context, userId int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	course, err := c.access.AssertCourseAdmin(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if err := c.uploads.AssertOwnedKeys(ctx, uow, userId, changedKey(course.VideoKey, req.VideoKey)); err != nil {
		return nil, err
	}

	oldVideo := replacedKey(course.VideoKey, req.VideoKey)

	course.Title = req.Title
	course.Description = req.Description
	course.Category = req.Category
	if req.VideoKey != nil {
		course.VideoKey = req.VideoKey
	}
	if err := uow.CourseRepository().Update(ctx, course); err != nil {
		return nil, err
	}

	pending, err := c.cleanup.Enqueue(ctx, uow, "course video replaced", oldVideo)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	c.cleanup.Notify(ctx, pending)

	c.events.publish(ctx, events.CourseUpdated, map[string]interface{}{
		"course_id": course.Id,
		"user_id":   userId,
	})

	return toCourseResponse(course, c.storage), nil
}

func (c *courseService) GetCourseDetail(ctx context.Context, viewerId *int64, courseId int64) (*dto.CourseDetailResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, notFoundAs(err, "course", courseId)
	}

	segments, err := uow.SegmentRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "order"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.CourseDetailResponse{
		Course:   toCourseResponse(course, c.storage),
		Segments: make([]*dto.SegmentResponse, 0, len(segments)),
	}
	for _, segment := range segments {
		res.Segments = append(res.Segments, toSegmentResponse(segment, c.storage))
	}

	if viewerId != nil {
		res.IsAdmin = course.UserId == *viewerId
		count, err := uow.BookmarkRepository().Count(ctx,
			specification.UserOwnedBy{UserID: *viewerId},
			specification.ByCourseID{CourseID: courseId},
		)
		if err != nil {
			return nil, err
		}
		res.IsBookmarked = count > 0
	}

	return res, nil
}
