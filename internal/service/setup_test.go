package service

import (
	"bytes"
	"context"
	"testing"

	"coursehub-be/internal/model"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/internal/testutil"
	"coursehub-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	ctx     context.Context
	db      *gorm.DB
	uow     unitofwork.RepositoryFactory
	store   *storage.MemoryStorage
	pubSub  *gochannel.GoChannel
	events  *testutil.RecordingPublisher
	log     logger.ILogger
	cleanup IFileCleanupService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	f := &fixture{
		ctx:    context.Background(),
		db:     db,
		uow:    unitofwork.NewRepositoryFactory(db),
		store:  storage.NewMemoryStorage("http://files.test"),
		pubSub: pubSub,
		events: &testutil.RecordingPublisher{},
		log:    logger.NewNop(),
	}
	f.cleanup = NewFileCleanupService(f.uow, f.store, pubSub, f.log)
	return f
}

func (f *fixture) courseService() ICourseService {
	return NewCourseService(f.uow, f.cleanup, f.store, f.events, f.log)
}

func (f *fixture) segmentService() ISegmentService {
	return NewSegmentService(f.uow, f.cleanup, f.store, f.events, f.log)
}

func (f *fixture) bookmarkService() IBookmarkService {
	return NewBookmarkService(f.uow, f.store, f.events, f.log)
}

func (f *fixture) attachmentService() IAttachmentService {
	return NewAttachmentService(f.uow, f.cleanup, f.store, f.log)
}

func (f *fixture) snapshotService() ISnapshotService {
	return NewSnapshotService(f.uow, f.cleanup, f.store, f.log)
}

func (f *fixture) storeObject(t *testing.T, key, contentType string, data []byte) {
	t.Helper()
	require.NoError(t, f.store.Store(f.ctx, key, bytes.NewReader(data), int64(len(data)), contentType))
}

// uploadObject stores an object under a key issued to userId.
func (f *fixture) uploadObject(t *testing.T, userId int64, key, contentType string, data []byte) {
	t.Helper()
	testutil.CreateUpload(t, f.db, userId, key)
	f.storeObject(t, key, contentType, data)
}

func (f *fixture) pendingKeys(t *testing.T) []string {
	t.Helper()
	var rows []model.FileDeletion
	require.NoError(t, f.db.Order("id").Find(&rows).Error)
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.FileKey
	}
	return keys
}

func strPtr(s string) *string {
	return &s
}
