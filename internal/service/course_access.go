package service

import (
	"context"
	"errors"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
)

// CourseAccess holds the ownership checks shared by the course, segment and
// attachment services. Every check runs on the caller's unit of work, so it
// sees rows written earlier in the same transaction.
type CourseAccess struct{}

// IsCourseAdmin reports whether userId owns the course. A missing course is
// not an error; it simply has no admin.
func (CourseAccess) IsCourseAdmin(ctx context.Context, uow unitofwork.UnitOfWork, userId, courseId int64) (bool, error) {
	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if errors.Is(err, apperror.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return course.UserId == userId, nil
}

func (CourseAccess) AssertCourseAdmin(ctx context.Context, uow unitofwork.UnitOfWork, userId, courseId int64) (*entity.Course, error) {
	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, notFoundAs(err, "course", courseId)
	}
	if course.UserId != userId {
		return nil, apperror.Forbidden("you are not the admin of this course")
	}
	return course, nil
}

func (a CourseAccess) AssertAccessToSegment(ctx context.Context, uow unitofwork.UnitOfWork, userId, segmentId int64) (*entity.Segment, error) {
	segment, err := uow.SegmentRepository().FindOne(ctx, specification.ByID{ID: segmentId})
	if err != nil {
		return nil, notFoundAs(err, "segment", segmentId)
	}
	if _, err := a.AssertCourseAdmin(ctx, uow, userId, segment.CourseId); err != nil {
		return nil, err
	}
	return segment, nil
}

func (a CourseAccess) AssertAccessToAttachment(ctx context.Context, uow unitofwork.UnitOfWork, userId, attachmentId int64) (*entity.Attachment, error) {
	attachment, err := uow.AttachmentRepository().FindOne(ctx, specification.ByID{ID: attachmentId})
	if err != nil {
		return nil, notFoundAs(err, "attachment", attachmentId)
	}
	if _, err := a.AssertAccessToSegment(ctx, uow, userId, attachment.SegmentId); err != nil {
		return nil, err
	}
	return attachment, nil
}
