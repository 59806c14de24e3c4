package service

import (
	"context"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
)

type IExerciseService interface {
	CreateExercise(ctx context.Context, userId int64, req *dto.CreateExerciseRequest) (*dto.ExerciseResponse, error)
	GetExercises(ctx context.Context, userId int64) ([]*dto.ExerciseResponse, error)
	DeleteExercise(ctx context.Context, userId, exerciseId int64) error
}

type exerciseService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewExerciseService(uowFactory unitofwork.RepositoryFactory) IExerciseService {
	return &exerciseService{uowFactory: uowFactory}
}

func toExerciseResponse(e *entity.Exercise) *dto.ExerciseResponse {
	return &dto.ExerciseResponse{
		Id:        e.Id,
		Exercise:  e.Exercise,
		Weight:    e.Weight,
		Reps:      e.Reps,
		Sets:      e.Sets,
		CreatedAt: e.CreatedAt,
	}
}

func (c *exerciseService) CreateExercise(ctx context.Context, userId int64, req *dto.CreateExerciseRequest) (*dto.ExerciseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	exercise := &entity.Exercise{
		UserId:   userId,
		Exercise: req.Exercise,
		Weight:   req.Weight,
		Reps:     req.Reps,
		Sets:     req.Sets,
	}
	if err := uow.ExerciseRepository().Create(ctx, exercise); err != nil {
		return nil, err
	}
	return toExerciseResponse(exercise), nil
}

func (c *exerciseService) GetExercises(ctx context.Context, userId int64) ([]*dto.ExerciseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	exercises, err := uow.ExerciseRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.OrderBy{Field: "id", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ExerciseResponse, 0, len(exercises))
	for _, e := range exercises {
		result = append(result, toExerciseResponse(e))
	}
	return result, nil
}

func (c *exerciseService) DeleteExercise(ctx context.Context, userId, exerciseId int64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	exercise, err := uow.ExerciseRepository().FindOne(ctx, specification.ByID{ID: exerciseId})
	if err != nil {
		return notFoundAs(err, "exercise", exerciseId)
	}
	if exercise.UserId != userId {
		return apperror.Forbidden("you do not own this exercise")
	}
	return uow.ExerciseRepository().Delete(ctx, exerciseId)
}
