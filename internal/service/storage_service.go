package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/pkg/storage"

	"github.com/google/uuid"
)

type IStorageService interface {
	PresignUpload(ctx context.Context, userId int64, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error)
	// ReceiveUpload accepts a presigned form post on backends that have no
	// upload endpoint of their own.
	ReceiveUpload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	GetObject(ctx context.Context, key string) ([]byte, string, error)
}

type storageService struct {
	uowFactory unitofwork.RepositoryFactory
	uploads    UploadAccess
	storage    storage.ObjectStorage
}

func NewStorageService(uowFactory unitofwork.RepositoryFactory, storage storage.ObjectStorage) IStorageService {
	return &storageService{uowFactory: uowFactory, storage: storage}
}

// PresignUpload issues a browser-direct upload under a fresh random key and
// records the key as belonging to userId.
func (s *storageService) PresignUpload(ctx context.Context, userId int64, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error) {
	key := uuid.NewString()

	post, err := s.storage.PresignedUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, apperror.External("failed to create upload url", err)
	}

	if err := s.uploads.Record(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, key, req.ContentType); err != nil {
		return nil, err
	}

	return &dto.PresignUploadResponse{
		Url:    post.URL,
		Fields: post.Fields,
		Key:    key,
	}, nil
}

func (s *storageService) ReceiveUpload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if size > storage.MaxUploadSize {
		return apperror.ValidationFailed("file", fmt.Sprintf("file exceeds %d bytes", storage.MaxUploadSize))
	}

	upload, err := s.uowFactory.NewUnitOfWork(ctx).UploadRepository().FindOne(ctx, specification.ByFileKey{FileKey: key})
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.Forbidden("upload key was not issued")
	}
	if err != nil {
		return err
	}
	if upload.ContentType != contentType {
		return apperror.ValidationFailed("Content-Type", "content type does not match the issued upload")
	}

	if _, _, err := s.storage.Get(ctx, key); err == nil {
		return apperror.Conflict("upload", key)
	} else if !errors.Is(err, storage.ErrObjectNotFound) {
		return err
	}

	if err := s.storage.Store(ctx, key, body, size, contentType); err != nil {
		return apperror.External("failed to store upload", err)
	}
	return nil
}

func (s *storageService) GetObject(ctx context.Context, key string) ([]byte, string, error) {
	data, contentType, err := s.storage.Get(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, "", apperror.NotFound("file", key)
	}
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}
