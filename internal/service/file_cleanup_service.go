package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	FileDeletionTopic = "file_deletion_requested"

	fileDeletionMaxAttempts = 5
	fileDeletionSweepBatch  = 100
)

// IFileCleanupService drains the file_deletions outbox. Use cases enqueue
// keys inside their transaction and call Notify after commit; the consumer
// and the periodic sweep remove the objects.
type IFileCleanupService interface {
	Enqueue(ctx context.Context, uow unitofwork.UnitOfWork, reason string, keys ...string) ([]int64, error)
	Notify(ctx context.Context, ids []int64)
	Process(ctx context.Context, id int64) (bool, error)
	Consume(ctx context.Context) error
	Sweep(ctx context.Context) (int, error)
	RunMaintenance(ctx context.Context, interval time.Duration)
}

type fileCleanupService struct {
	uowFactory unitofwork.RepositoryFactory
	storage    storage.ObjectStorage
	pubSub     *gochannel.GoChannel
	logger     logger.ILogger
}

func NewFileCleanupService(
	uowFactory unitofwork.RepositoryFactory,
	storage storage.ObjectStorage,
	pubSub *gochannel.GoChannel,
	logger logger.ILogger,
) IFileCleanupService {
	return &fileCleanupService{
		uowFactory: uowFactory,
		storage:    storage,
		pubSub:     pubSub,
		logger:     logger,
	}
}

func (s *fileCleanupService) Enqueue(ctx context.Context, uow unitofwork.UnitOfWork, reason string, keys ...string) ([]int64, error) {
	rows := make([]*entity.FileDeletion, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		rows = append(rows, &entity.FileDeletion{FileKey: key, Reason: reason})
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if err := uow.FileDeletionRepository().CreateBatch(ctx, rows); err != nil {
		return nil, err
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.Id
	}
	return ids, nil
}

// Notify never fails the caller; rows that miss their message are picked up
// by the next sweep.
func (s *fileCleanupService) Notify(ctx context.Context, ids []int64) {
	if s.pubSub == nil {
		return
	}
	for _, id := range ids {
		payload, err := json.Marshal(dto.FileDeletionMessage{Id: id})
		if err != nil {
			continue
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.pubSub.Publish(FileDeletionTopic, msg); err != nil {
			s.logger.Warn("FILE_CLEANUP", "Failed to publish deletion message", map[string]interface{}{
				"id":    id,
				"error": err.Error(),
			})
		}
	}
}

// Process removes the object behind one outbox row. It reports whether an
// object was actually deleted; rows already handled elsewhere and keys that
// are still referenced report false.
func (s *fileCleanupService) Process(ctx context.Context, id int64) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	row, err := uow.FileDeletionRepository().FindOne(ctx, specification.ByID{ID: id})
	if errors.Is(err, apperror.ErrNotFound) {
		// Already handled by the sweep or another delivery.
		return false, nil
	}
	if err != nil {
		return false, err
	}

	referenced, err := uow.FileDeletionRepository().IsReferenced(ctx, row.FileKey)
	if err != nil {
		return false, err
	}
	if referenced {
		s.logger.Warn("FILE_CLEANUP", "Skipping deletion of referenced object", map[string]interface{}{
			"id":       row.Id,
			"file_key": row.FileKey,
			"reason":   row.Reason,
		})
		return false, uow.FileDeletionRepository().Delete(ctx, row.Id)
	}

	if err := s.storage.Delete(ctx, row.FileKey); err != nil {
		s.logger.Warn("FILE_CLEANUP", "Failed to delete stored object", map[string]interface{}{
			"id":       row.Id,
			"file_key": row.FileKey,
			"attempt":  row.Attempts + 1,
			"error":    err.Error(),
		})
		if recErr := uow.FileDeletionRepository().RecordFailure(ctx, row.Id, err.Error()); recErr != nil {
			return false, recErr
		}
		return false, err
	}

	if err := uow.FileDeletionRepository().Delete(ctx, row.Id); err != nil {
		return false, err
	}
	if _, err := uow.UploadRepository().DeleteAll(ctx, specification.ByFileKey{FileKey: row.FileKey}); err != nil {
		return true, err
	}

	s.logger.Debug("FILE_CLEANUP", "Stored object deleted", map[string]interface{}{
		"file_key": row.FileKey,
		"reason":   row.Reason,
	})
	return true, nil
}

func (s *fileCleanupService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, FileDeletionTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *fileCleanupService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.FileDeletionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("FILE_CLEANUP", "Invalid deletion message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		msg.Ack() // never redeliver garbage
		return
	}

	// Failures are already recorded on the row; the sweep retries them with
	// a bounded attempt count, so the message itself is not redelivered.
	if _, err := s.Process(ctx, payload.Id); err != nil {
		s.logger.Warn("FILE_CLEANUP", "Deletion deferred to sweep", map[string]interface{}{
			"id":    payload.Id,
			"error": err.Error(),
		})
	}
	msg.Ack()
}

// Sweep retries pending outbox rows and purges expired sessions. It returns
// the number of objects deleted.
func (s *fileCleanupService) Sweep(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rows, err := uow.FileDeletionRepository().FindAll(ctx,
		specification.PendingDeletion{MaxAttempts: fileDeletionMaxAttempts},
		specification.OrderBy{Field: "id"},
		specification.Pagination{Limit: fileDeletionSweepBatch},
	)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, row := range rows {
		if ctx.Err() != nil {
			return deleted, ctx.Err()
		}
		ok, err := s.Process(ctx, row.Id)
		if err == nil && ok {
			deleted++
		}
	}

	expired, err := uow.SessionRepository().DeleteAll(ctx, specification.ExpiresBefore{Time: time.Now()})
	if err != nil {
		return deleted, err
	}

	if deleted > 0 || expired > 0 {
		s.logger.Info("FILE_CLEANUP", "Sweep finished", map[string]interface{}{
			"objects_deleted":  deleted,
			"sessions_expired": expired,
		})
	}
	return deleted, nil
}

func (s *fileCleanupService) RunMaintenance(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("FILE_CLEANUP", "Sweep failed", map[string]interface{}{"error": err})
			}
		}
	}
}
