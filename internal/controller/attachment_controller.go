package controller

import (
	"strings"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAttachmentController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type attachmentController struct {
	service service.IAttachmentService
	session serverutils.SessionConfig
}

func NewAttachmentController(service service.IAttachmentService, session serverutils.SessionConfig) IAttachmentController {
	return &attachmentController{service: service, session: session}
}

func (c *attachmentController) RegisterRoutes(r fiber.Router) {
	required := serverutils.SessionMiddleware(c.session)

	r.Get("/segments/:id/attachments", c.GetAll)
	r.Post("/segments/:id/attachments", required, c.Create)
	r.Delete("/attachments/:id", required, c.Delete)
}

func (c *attachmentController) GetAll(ctx *fiber.Ctx) error {
	segmentId, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ListAttachments(ctx.UserContext(), segmentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get attachments", res))
}

// Create accepts either a JSON body referencing an uploaded key or a
// multipart form with a "file" part.
func (c *attachmentController) Create(ctx *fiber.Ctx) error {
	segmentId, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	var res *dto.AttachmentResponse
	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		res, err = c.upload(ctx, segmentId)
	} else {
		var req dto.CreateAttachmentRequest
		if err := serverutils.ParseBody(ctx, &req); err != nil {
			return err
		}
		res, err = c.service.CreateAttachment(ctx.UserContext(), serverutils.UserID(ctx), segmentId, &req)
	}
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create attachment", res))
}

func (c *attachmentController) upload(ctx *fiber.Ctx, segmentId int64) (*dto.AttachmentResponse, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return nil, apperror.ValidationFailed("file", "file is required")
	}

	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return c.service.UploadAttachment(
		ctx.UserContext(),
		serverutils.UserID(ctx),
		segmentId,
		fh.Filename,
		fh.Header.Get(fiber.HeaderContentType),
		file,
		fh.Size,
	)
}

func (c *attachmentController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteAttachment(ctx.UserContext(), serverutils.UserID(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete attachment", nil))
}
