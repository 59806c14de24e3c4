package service

import (
	"bytes"
	"testing"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/model"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageService_PresignRecordsUpload(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "user@example.com")
	svc := NewStorageService(f.uow, f.store)

	res, err := svc.PresignUpload(f.ctx, user.Id, &dto.PresignUploadRequest{ContentType: "video/mp4"})
	require.NoError(t, err)
	assert.Equal(t, "http://files.test", res.Url)
	assert.Equal(t, res.Key, res.Fields["key"])
	assert.Equal(t, "video/mp4", res.Fields["Content-Type"])

	var upload model.Upload
	require.NoError(t, f.db.Where("file_key = ?", res.Key).First(&upload).Error)
	assert.Equal(t, user.Id, upload.UserId)
	assert.Equal(t, "video/mp4", upload.ContentType)

	// The issued key is usable on a course right away.
	_, err = f.courseService().CreateCourse(f.ctx, user.Id, &dto.CreateCourseRequest{
		Title: "Algebra 1", Category: "Math", VideoKey: &res.Key,
	})
	require.NoError(t, err)
}

func TestStorageService_ReceiveUpload(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "user@example.com")
	svc := NewStorageService(f.uow, f.store)
	body := []byte("clip")

	res, err := svc.PresignUpload(f.ctx, user.Id, &dto.PresignUploadRequest{ContentType: "video/mp4"})
	require.NoError(t, err)

	err = svc.ReceiveUpload(f.ctx, "not-issued", "video/mp4", bytes.NewReader(body), int64(len(body)))
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	err = svc.ReceiveUpload(f.ctx, res.Key, "image/png", bytes.NewReader(body), int64(len(body)))
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.False(t, f.store.Exists(res.Key))

	require.NoError(t, svc.ReceiveUpload(f.ctx, res.Key, "video/mp4", bytes.NewReader(body), int64(len(body))))

	data, contentType, err := svc.GetObject(f.ctx, res.Key)
	require.NoError(t, err)
	assert.Equal(t, body, data)
	assert.Equal(t, "video/mp4", contentType)

	err = svc.ReceiveUpload(f.ctx, res.Key, "video/mp4", bytes.NewReader(body), int64(len(body)))
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, _, err = svc.GetObject(f.ctx, "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
