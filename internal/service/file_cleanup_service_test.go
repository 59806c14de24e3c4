package service

import (
	"context"
	"testing"
	"time"

	"coursehub-be/internal/model"
	"coursehub-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCleanupService_ConsumeDeletesAfterNotify(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	course := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	seg := testutil.CreateSegment(t, f.db, course.Id, 0)
	attachment := testutil.CreateAttachment(t, f.db, seg.Id, "doc")
	f.storeObject(t, "doc", "application/pdf", []byte("doc"))

	ctx, cancel := context.WithCancel(f.ctx)
	defer cancel()
	require.NoError(t, f.cleanup.Consume(ctx))

	require.NoError(t, f.attachmentService().DeleteAttachment(f.ctx, owner.Id, attachment.Id))

	assert.Eventually(t, func() bool {
		return !f.store.Exists("doc")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		var n int64
		f.db.Model(&model.FileDeletion{}).Count(&n)
		return n == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFileCleanupService_ProcessMissingRowIsNoop(t *testing.T) {
	f := newFixture(t)
	deleted, err := f.cleanup.Process(f.ctx, 12345)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestFileCleanupService_SweepCountsOnlyDeletedObjects(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	course := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	seg := testutil.CreateSegment(t, f.db, course.Id, 0)
	testutil.CreateAttachment(t, f.db, seg.Id, "in-use")
	f.uploadObject(t, owner.Id, "orphan", "application/pdf", []byte("orphan"))
	f.storeObject(t, "in-use", "application/pdf", []byte("in-use"))

	pending, err := f.cleanup.Enqueue(f.ctx, f.uow.NewUnitOfWork(f.ctx), "test", "orphan", "in-use")
	require.NoError(t, err)
	require.Len(t, pending, 2)

	deleted, err := f.cleanup.Sweep(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.False(t, f.store.Exists("orphan"))
	assert.True(t, f.store.Exists("in-use"))
	assert.Empty(t, f.pendingKeys(t))

	var uploads int64
	require.NoError(t, f.db.Model(&model.Upload{}).Where("file_key = ?", "orphan").Count(&uploads).Error)
	assert.Zero(t, uploads)

	// Rows the consumer already handled do not count again.
	for _, id := range pending {
		ok, err := f.cleanup.Process(f.ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	deleted, err = f.cleanup.Sweep(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestFileCleanupService_SweepPurgesExpiredSessions(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "user@example.com")
	require.NoError(t, f.db.Create(&model.Session{Id: "expired", UserId: user.Id, ExpiresAt: time.Now().Add(-time.Hour)}).Error)
	require.NoError(t, f.db.Create(&model.Session{Id: "live", UserId: user.Id, ExpiresAt: time.Now().Add(time.Hour)}).Error)

	_, err := f.cleanup.Sweep(f.ctx)
	require.NoError(t, err)

	var ids []string
	require.NoError(t, f.db.Model(&model.Session{}).Pluck("id", &ids).Error)
	assert.Equal(t, []string{"live"}, ids)
}

func TestFileCleanupService_RunMaintenanceStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(f.ctx)

	done := make(chan struct{})
	go func() {
		f.cleanup.RunMaintenance(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("maintenance loop did not stop")
	}
}
