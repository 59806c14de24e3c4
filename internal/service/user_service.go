package service

import (
	"context"
	"errors"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetMe(ctx context.Context, userId int64) (*dto.MeResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) GetMe(ctx context.Context, userId int64) (*dto.MeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, notFoundAs(err, "user", userId)
	}

	res := &dto.MeResponse{
		Id:            user.Id,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}

	profile, err := uow.UserRepository().FindProfile(ctx, specification.UserOwnedBy{UserID: userId})
	switch {
	case errors.Is(err, apperror.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		res.DisplayName = profile.DisplayName
		res.Image = profile.Image
		res.Bio = profile.Bio
	}
	return res, nil
}
