package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/pkg/storage"

	"github.com/google/uuid"
)

type IAttachmentService interface {
	ListAttachments(ctx context.Context, segmentId int64) ([]*dto.AttachmentResponse, error)
	CreateAttachment(ctx context.Context, userId, segmentId int64, req *dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error)
	UploadAttachment(ctx context.Context, userId, segmentId int64, fileName, contentType string, body io.Reader, size int64) (*dto.AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, userId, attachmentId int64) error
}

type attachmentService struct {
	uowFactory unitofwork.RepositoryFactory
	access     CourseAccess
	uploads    UploadAccess
	cleanup    IFileCleanupService
	storage    storage.ObjectStorage
	logger     logger.ILogger
}

func NewAttachmentService(
	uowFactory unitofwork.RepositoryFactory,
	cleanup IFileCleanupService,
	storage storage.ObjectStorage,
	logger logger.ILogger,
) IAttachmentService {
	return &attachmentService{
		uowFactory: uowFactory,
		cleanup:    cleanup,
		storage:    storage,
		logger:     logger,
	}
}

func (c *attachmentService) ListAttachments(ctx context.Context, segmentId int64) ([]*dto.AttachmentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if _, err := uow.SegmentRepository().FindOne(ctx, specification.ByID{ID: segmentId}); err != nil {
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

	result := make([]*dto.AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		result = append(result, toAttachmentResponse(attachment, c.storage))
	}
	return result, nil
}

func (c *attachmentService) CreateAttachment(ctx context.Context, userId, segmentId int64, req *dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if _, err := c.access.AssertAccessToSegment(ctx, uow, userId, segmentId); err != nil {
		return nil, err
	}
	if err := c.uploads.AssertOwnedKeys(ctx, uow, userId, req.FileKey); err != nil {
		return nil, err
	}

	attachment := &entity.Attachment{
		SegmentId: segmentId,
		FileName:  req.FileName,
		FileKey:   req.FileKey,
	}
	if err := uow.AttachmentRepository().Create(ctx, attachment); err != nil {
		return nil, err
	}
	return toAttachmentResponse(attachment, c.storage), nil
}

// UploadAttachment stores the file first and then records it. When the
// insert fails the stored object is handed to the outbox.
func (c *attachmentService) UploadAttachment(ctx context.Context, userId, segmentId int64, fileName, contentType string, body io.Reader, size int64) (*dto.AttachmentResponse, error) {
	if size > storage.MaxUploadSize {
		return nil, apperror.ValidationFailed("file", fmt.Sprintf("file exceeds %d bytes", storage.MaxUploadSize))
	}
	fileName = strings.TrimSpace(path.Base(fileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, apperror.ValidationFailed("file", "file name is required")
	}

	// Authorize before touching storage.
	if _, err := c.access.AssertAccessToSegment(ctx, c.uowFactory.NewUnitOfWork(ctx), userId, segmentId); err != nil {
		return nil, err
	}

	key := uuid.NewString()
	if err := c.storage.Store(ctx, key, body, size, contentType); err != nil {
		return nil, apperror.External("failed to store attachment", err)
	}

	if err := c.uploads.Record(ctx, c.uowFactory.NewUnitOfWork(ctx), userId, key, contentType); err != nil {
		c.discard(ctx, key)
		return nil, err
	}

	res, err := c.CreateAttachment(ctx, userId, segmentId, &dto.CreateAttachmentRequest{FileName: fileName, FileKey: key})
	if err != nil {
		c.discard(ctx, key)
		return nil, err
	}
	return res, nil
}

func (c *attachmentService) discard(ctx context.Context, key string) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	pending, err := c.cleanup.Enqueue(ctx, uow, "attachment insert failed", key)
	if err != nil {
		c.logger.Error("ATTACHMENT", "Failed to enqueue orphaned upload", map[string]interface{}{
			"file_key": key,
			"error":    err,
		})
		return
	}
	c.cleanup.Notify(ctx, pending)
}

func (c *attachmentService) DeleteAttachment(ctx context.Context, userId, attachmentId int64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	attachment, err := c.access.AssertAccessToAttachment(ctx, uow, userId, attachmentId)
	if err != nil {
		return err
	}

	if err := uow.AttachmentRepository().Delete(ctx, attachment.Id); err != nil {
		return err
	}

	pending, err := c.cleanup.Enqueue(ctx, uow, "attachment deleted", attachment.FileKey)
	if err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}
	c.cleanup.Notify(ctx, pending)
	return nil
}
