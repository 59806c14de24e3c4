package service

import (
	"bytes"
	"errors"
	"testing"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/model"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	other := testutil.CreateUser(t, f.db, "other@example.com")
	course := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	seg := testutil.CreateSegment(t, f.db, course.Id, 0)
	testutil.CreateUpload(t, f.db, owner.Id, "k1")
	testutil.CreateUpload(t, f.db, owner.Id, "k2")
	svc := f.attachmentService()

	_, err := svc.CreateAttachment(f.ctx, other.Id, seg.Id, &dto.CreateAttachmentRequest{FileName: "a.pdf", FileKey: "k1"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.CreateAttachment(f.ctx, owner.Id, 999, &dto.CreateAttachmentRequest{FileName: "a.pdf", FileKey: "k1"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	created, err := svc.CreateAttachment(f.ctx, owner.Id, seg.Id, &dto.CreateAttachmentRequest{FileName: "a.pdf", FileKey: "k1"})
	require.NoError(t, err)
	assert.Equal(t, "http://files.test/k1", created.Url)

	_, err = svc.CreateAttachment(f.ctx, owner.Id, seg.Id, &dto.CreateAttachmentRequest{FileName: "b.pdf", FileKey: "k2"})
	require.NoError(t, err)

	list, err := svc.ListAttachments(f.ctx, seg.Id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a.pdf", list[0].FileName)
	assert.Equal(t, "b.pdf", list[1].FileName)

	_, err = svc.ListAttachments(f.ctx, 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAttachmentService_UploadAttachment(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	other := testutil.CreateUser(t, f.db, "other@example.com")
	course := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	seg := testutil.CreateSegment(t, f.db, course.Id, 0)
	svc := f.attachmentService()
	body := []byte("%PDF-1.4")

	_, err := svc.UploadAttachment(f.ctx, other.Id, seg.Id, "notes.pdf", "application/pdf", bytes.NewReader(body), int64(len(body)))
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	res, err := svc.UploadAttachment(f.ctx, owner.Id, seg.Id, "../../notes.pdf", "application/pdf", bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", res.FileName)
	assert.NotEmpty(t, res.FileKey)

	data, contentType, err := f.store.Get(f.ctx, res.FileKey)
	require.NoError(t, err)
	assert.Equal(t, body, data)
	assert.Equal(t, "application/pdf", contentType)

	var upload model.Upload
	require.NoError(t, f.db.Where("file_key = ?", res.FileKey).First(&upload).Error)
	assert.Equal(t, owner.Id, upload.UserId)
	assert.Equal(t, "application/pdf", upload.ContentType)
}

func TestAttachmentService_CreateAttachmentRejectsForeignKeys(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	other := testutil.CreateUser(t, f.db, "other@example.com")
	course := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	seg := testutil.CreateSegment(t, f.db, course.Id, 0)
	testutil.CreateUpload(t, f.db, other.Id, "others-file")
	svc := f.attachmentService()

	for _, key := range []string{"others-file", "never-issued"} {
		_, err := svc.CreateAttachment(f.ctx, owner.Id, seg.Id, &dto.CreateAttachmentRequest{FileName: "a.pdf", FileKey: key})
		assert.ErrorIs(t, err, apperror.ErrForbidden, key)
	}

	var rows int64
	require.NoError(t, f.db.Model(&model.Attachment{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestAttachmentService_DeleteAttachment(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	other := testutil.CreateUser(t, f.db, "other@example.com")
	course := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	seg := testutil.CreateSegment(t, f.db, course.Id, 0)
	attachment := testutil.CreateAttachment(t, f.db, seg.Id, "doc")
	f.storeObject(t, "doc", "application/pdf", []byte("doc"))
	svc := f.attachmentService()

	err := svc.DeleteAttachment(f.ctx, other.Id, attachment.Id)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.DeleteAttachment(f.ctx, owner.Id, attachment.Id))

	var rows int64
	require.NoError(t, f.db.Model(&model.Attachment{}).Count(&rows).Error)
	assert.Zero(t, rows)

	// Row is gone, object waits for the worker.
	assert.Equal(t, []string{"doc"}, f.pendingKeys(t))
	assert.True(t, f.store.Exists("doc"))

	_, err = f.cleanup.Sweep(f.ctx)
	require.NoError(t, err)
	assert.False(t, f.store.Exists("doc"))
	assert.Empty(t, f.pendingKeys(t))

	err = svc.DeleteAttachment(f.ctx, owner.Id, attachment.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestFileCleanupService_RecordsFailures(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	course := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	seg := testutil.CreateSegment(t, f.db, course.Id, 0)
	attachment := testutil.CreateAttachment(t, f.db, seg.Id, "doc")
	f.store.FailDelete = errors.New("bucket unavailable")

	require.NoError(t, f.attachmentService().DeleteAttachment(f.ctx, owner.Id, attachment.Id))

	deleted, err := f.cleanup.Sweep(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	var row model.FileDeletion
	require.NoError(t, f.db.First(&row).Error)
	assert.Equal(t, 1, row.Attempts)
	require.NotNil(t, row.LastError)
	assert.Equal(t, "bucket unavailable", *row.LastError)

	// Rows past the attempt limit are no longer retried.
	require.NoError(t, f.db.Model(&row).Update("attempts", fileDeletionMaxAttempts).Error)
	f.store.FailDelete = nil
	deleted, err = f.cleanup.Sweep(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.Equal(t, []string{"doc"}, f.pendingKeys(t))
}
