package controller

import (
	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExerciseController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type exerciseController struct {
	service service.IExerciseService
	session serverutils.SessionConfig
}

func NewExerciseController(service service.IExerciseService, session serverutils.SessionConfig) IExerciseController {
	return &exerciseController{service: service, session: session}
}

func (c *exerciseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/exercises", serverutils.SessionMiddleware(c.session))
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Delete("/:id", c.Delete)
}

func (c *exerciseController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetExercises(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get exercises", res))
}

func (c *exerciseController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateExerciseRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateExercise(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create exercise", res))
}

func (c *exerciseController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteExercise(ctx.UserContext(), serverutils.UserID(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete exercise", nil))
}
