package service

import (
	"context"
	"errors"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/pkg/events"
	"coursehub-be/pkg/storage"

	"gorm.io/gorm"
)

// maxOrderRetries bounds how often AddSegment recomputes the next order after
// losing a race on the (course_id, order) unique index.
const maxOrderRetries = 3

type ISegmentService interface {
	GetSegments(ctx context.Context, courseId int64) ([]*dto.SegmentResponse, error)
	GetSegment(ctx context.Context, segmentId int64) (*dto.SegmentResponse, error)
	AddSegment(ctx context.Context, userId, courseId int64, req *dto.CreateSegmentRequest) (*dto.SegmentResponse, error)
	GetSegmentNavigation(ctx context.Context, courseId int64, currentOrder int) (*dto.SegmentNavigationResponse, error)
	UpdateSegment(ctx context.Context, userId int64, req *dto.UpdateSegmentRequest) (*dto.SegmentResponse, error)
	DeleteSegment(ctx context.Context, userId, segmentId int64) error
	GetSegmentView(ctx context.Context, viewerId *int64, courseId, segmentId int64) (*dto.SegmentViewResponse, error)
}

type segmentService struct {
	uowFactory unitofwork.RepositoryFactory
	access     CourseAccess
	uploads    UploadAccess
	cleanup    IFileCleanupService
	storage    storage.ObjectStorage
	events     eventPublisher
	logger     logger.ILogger
}

func NewSegmentService(
	uowFactory unitofwork.RepositoryFactory,
	cleanup IFileCleanupService,
	storage storage.ObjectStorage,
	publisher events.Publisher,
	logger logger.ILogger,
) ISegmentService {
	return &segmentService{
		uowFactory: uowFactory,
		cleanup:    cleanup,
		storage:    storage,
		events:     eventPublisher{publisher: publisher, logger: logger},
		logger:     logger,
	}
}

func (c *segmentService) GetSegments(ctx context.Context, courseId int64) ([]*dto.SegmentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if _, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId}); err != nil {
		return nil, notFoundAs(err, "course", courseId)
	}

	segments, err := uow.SegmentRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "order"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SegmentResponse, 0, len(segments))
	for _, segment := range segments {
		result = append(result, toSegmentResponse(segment, c.storage))
	}
	return result, nil
}

func (c *segmentService) GetSegment(ctx context.Context, segmentId int64) (*dto.SegmentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	segment, err := uow.SegmentRepository().FindOne(ctx, specification.ByID{ID: segmentId})
	if err != nil {
		return nil, notFoundAs(err, "segment", segmentId)
	}
	return toSegmentResponse(segment, c.storage), nil
}

func (c *segmentService) AddSegment(ctx context.Context, userId, courseId int64, req *dto.CreateSegmentRequest) (*dto.SegmentResponse, error) {
	for attempt := 1; attempt <= maxOrderRetries; attempt++ {
		segment, err := c.insertSegment(ctx, userId, courseId, req)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.logger.Warn("SEGMENT", "Segment order collision, retrying", map[string]interface{}{
				"course_id": courseId,
				"attempt":   attempt,
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		c.events.publish(ctx, events.SegmentCreated, map[string]interface{}{
			"segment_id": segment.Id,
			"course_id":  courseId,
			"order":      segment.Order,
		})
		return toSegmentResponse(segment, c.storage), nil
	}
	return nil, apperror.Conflict("segment order for course", courseId)
}

func (c *segmentService) insertSegment(ctx context.Context, userId, courseId int64, req *dto.CreateSegmentRequest) (*entity.Segment, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := c.access.AssertCourseAdmin(ctx, uow, userId, courseId); err != nil {
		return nil, err
	}
	if err := c.uploads.AssertOwnedKeys(ctx, uow, userId, changedKey(nil, req.VideoKey)); err != nil {
		return nil, err
	}

	order, err := uow.SegmentRepository().NextOrder(ctx, courseId)
	if err != nil {
		return nil, err
	}

	segment := &entity.Segment{
		CourseId: courseId,
		Title:    req.Title,
		Content:  req.Content,
		Order:    order,
		VideoKey: req.VideoKey,
	}
	if err := uow.SegmentRepository().Create(ctx, segment); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return segment, nil
}

func (c *segmentService) GetSegmentNavigation(ctx context.Context, courseId int64, currentOrder int) (*dto.SegmentNavigationResponse, error) {
	return c.navigation(ctx, c.uowFactory.NewUnitOfWork(ctx), courseId, currentOrder)
}

func (c *segmentService) navigation(ctx context.Context, uow unitofwork.UnitOfWork, courseId int64, currentOrder int) (*dto.SegmentNavigationResponse, error) {
	prev, err := uow.SegmentRepository().FindOne(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderLessThan{Order: currentOrder},
		specification.OrderBy{Field: "order", Desc: true},
	)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	next, err := uow.SegmentRepository().FindOne(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderGreaterThan{Order: currentOrder},
		specification.OrderBy{Field: "order"},
	)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	return &dto.SegmentNavigationResponse{
		PrevSegment: toSegmentResponse(prev, c.storage),
		NextSegment: toSegmentResponse(next, c.storage),
	}, nil
}

func (c *segmentService) UpdateSegment(ctx context.Context, userId int64, req *dto.UpdateSegmentRequest) (*dto.SegmentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	segment, err := c.access.AssertAccessToSegment(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if err := c.uploads.AssertOwnedKeys(ctx, uow, userId, changedKey(segment.VideoKey, req.VideoKey)); err != nil {
		return nil, err
	}

	oldVideo := replacedKey(segment.VideoKey, req.VideoKey)

	segment.Title = req.Title
	segment.Content = req.Content
	if req.VideoKey != nil {
		segment.VideoKey = req.VideoKey
	}
	if err := uow.SegmentRepository().Update(ctx, segment); err != nil {
		return nil, err
	}

	pending, err := c.cleanup.Enqueue(ctx, uow, "segment video replaced", oldVideo)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	c.cleanup.Notify(ctx, pending)

	return toSegmentResponse(segment, c.storage), nil
}

// DeleteSegment removes the segment and its attachments in one transaction.
// Every stored key goes to the outbox; objects are deleted after commit.
func (c *segmentService) DeleteSegment(ctx context.Context, userId, segmentId int64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	segment, err := c.access.AssertAccessToSegment(ctx, uow, userId, segmentId)
	if err != nil {
		return err
	}

	attachments, err := uow.AttachmentRepository().FindAll(ctx, specification.BySegmentID{SegmentID: segmentId})
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(attachments)+1)
	if segment.VideoKey != nil {
		keys = append(keys, *segment.VideoKey)
	}
	for _, attachment := range attachments {
		keys = append(keys, attachment.FileKey)
	}

	pending, err := c.cleanup.Enqueue(ctx, uow, "segment deleted", keys...)
	if err != nil {
		return err
	}

	if _, err := uow.AttachmentRepository().DeleteAll(ctx, specification.BySegmentID{SegmentID: segmentId}); err != nil {
		return err
	}
	if err := uow.SegmentRepository().Delete(ctx, segmentId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}
	c.cleanup.Notify(ctx, pending)

	c.events.publish(ctx, events.SegmentDeleted, map[string]interface{}{
		"segment_id": segmentId,
		"course_id":  segment.CourseId,
	})
	return nil
}

func (c *segmentService) GetSegmentView(ctx context.Context, viewerId *int64, courseId, segmentId int64) (*dto.SegmentViewResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, notFoundAs(err, "course", courseId)
	}

	segment, err := uow.SegmentRepository().FindOne(ctx,
		specification.ByID{ID: segmentId},
		specification.ByCourseID{CourseID: courseId},
	)
	if err != nil {
		return nil, notFoundAs(err, "segment", segmentId)
	}

	attachments, err := uow.AttachmentRepository().FindAll(ctx,
		specification.BySegmentID{SegmentID: segmentId},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	nav, err := c.navigation(ctx, uow, courseId, segment.Order)
	if err != nil {
		return nil, err
	}

	res := &dto.SegmentViewResponse{
		Course:      toCourseResponse(course, c.storage),
		Segment:     toSegmentResponse(segment, c.storage),
		Attachments: make([]*dto.AttachmentResponse, 0, len(attachments)),
		Navigation:  nav,
		IsAdmin:     viewerId != nil && *viewerId == course.UserId,
	}
	for _, attachment := range attachments {
		res.Attachments = append(res.Attachments, toAttachmentResponse(attachment, c.storage))
	}
	return res, nil
}
