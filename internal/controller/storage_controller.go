package controller

import (
	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStorageController interface {
	RegisterRoutes(r fiber.Router)
	Presign(ctx *fiber.Ctx) error
}

type storageController struct {
	service service.IStorageService
	session serverutils.SessionConfig
}

func NewStorageController(service service.IStorageService, session serverutils.SessionConfig) IStorageController {
	return &storageController{service: service, session: session}
}

func (c *storageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/storage", serverutils.SessionMiddleware(c.session))
	h.Post("/presigned", c.Presign)
}

func (c *storageController) Presign(ctx *fiber.Ctx) error {
	var req dto.PresignUploadRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.PresignUpload(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create presigned upload", res))
}
