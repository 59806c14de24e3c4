package service

import (
	"context"
	"fmt"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
)

// UploadAccess tracks which storage keys were issued to which user. Rows that
// carry a client-supplied key are only written when the key belongs to the
// caller, so deleting such a row can never orphan someone else's object.
type UploadAccess struct{}

func (UploadAccess) Record(ctx context.Context, uow unitofwork.UnitOfWork, userId int64, key, contentType string) error {
	return uow.UploadRepository().Create(ctx, &entity.Upload{
		UserId:      userId,
		FileKey:     key,
		ContentType: contentType,
	})
}

// AssertOwnedKeys fails with Forbidden unless every non-empty key was issued
// to userId.
func (UploadAccess) AssertOwnedKeys(ctx context.Context, uow unitofwork.UnitOfWork, userId int64, keys ...string) error {
	wanted := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			wanted = append(wanted, key)
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	uploads, err := uow.UploadRepository().FindAll(ctx,
		specification.ByFileKeys{FileKeys: wanted},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}

	owned := make(map[string]bool, len(uploads))
	for _, upload := range uploads {
		owned[upload.FileKey] = true
	}
	for _, key := range wanted {
		if !owned[key] {
			return apperror.Forbidden(fmt.Sprintf("file key %q was not issued to you", key))
		}
	}
	return nil
}

// changedKey returns the requested key when it differs from the stored one,
// so unchanged keys on legacy rows are not re-checked.
func changedKey(current, requested *string) string {
	if requested == nil || *requested == "" {
		return ""
	}
	if current != nil && *current == *requested {
		return ""
	}
	return *requested
}
