package controller

import (
	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISegmentController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type segmentController struct {
	service service.ISegmentService
	session serverutils.SessionConfig
}

func NewSegmentController(service service.ISegmentService, session serverutils.SessionConfig) ISegmentController {
	return &segmentController{service: service, session: session}
}

func (c *segmentController) RegisterRoutes(r fiber.Router) {
	optional := serverutils.OptionalSession(c.session)
	required := serverutils.SessionMiddleware(c.session)

	h := r.Group("/courses/:id/segments")
	h.Get("", c.GetAll)
	h.Post("", required, c.Create)
	h.Get("/:segmentId", optional, c.Show)
	h.Put("/:segmentId", required, c.Update)
	h.Delete("/:segmentId", required, c.Delete)
}

func (c *segmentController) GetAll(ctx *fiber.Ctx) error {
	courseId, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetSegments(ctx.UserContext(), courseId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get segments", res))
}

// Show returns the segment with its attachments and neighbours.
func (c *segmentController) Show(ctx *fiber.Ctx) error {
	courseId, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	segmentId, err := serverutils.ParamID(ctx, "segmentId")
	if err != nil {
		return err
	}

	res, err := c.service.GetSegmentView(ctx.UserContext(), serverutils.ViewerID(ctx), courseId, segmentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get segment", res))
}

func (c *segmentController) Create(ctx *fiber.Ctx) error {
	courseId, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.CreateSegmentRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AddSegment(ctx.UserContext(), serverutils.UserID(ctx), courseId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create segment", res))
}

func (c *segmentController) Update(ctx *fiber.Ctx) error {
	segmentId, err := serverutils.ParamID(ctx, "segmentId")
	if err != nil {
		return err
	}

	var req dto.UpdateSegmentRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = segmentId

	res, err := c.service.UpdateSegment(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update segment", res))
}

func (c *segmentController) Delete(ctx *fiber.Ctx) error {
	segmentId, err := serverutils.ParamID(ctx, "segmentId")
	if err != nil {
		return err
	}

	if err := c.service.DeleteSegment(ctx.UserContext(), serverutils.UserID(ctx), segmentId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete segment", nil))
}
