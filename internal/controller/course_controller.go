package controller

import (
	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	IsAdmin(ctx *fiber.Ctx) error
}

type courseController struct {
	service service.ICourseService
	session serverutils.SessionConfig
}

func NewCourseController(service service.ICourseService, session serverutils.SessionConfig) ICourseController {
	return &courseController{service: service, session: session}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	optional := serverutils.OptionalSession(c.session)
	required := serverutils.SessionMiddleware(c.session)

	h := r.Group("/courses")
	h.Get("", optional, c.GetAll)
	h.Post("", required, c.Create)
	h.Get("/:id", optional, c.Show)
	h.Put("/:id", required, c.Update)
	h.Get("/:id/admin", required, c.IsAdmin)
}

func (c *courseController) GetAll(ctx *fiber.Ctx) error {
	var req dto.GetCoursesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.service.GetCourses(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get courses", res))
}

func (c *courseController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetCourseDetail(ctx.UserContext(), serverutils.ViewerID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get course", res))
}

func (c *courseController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateCourse(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create course", res))
}

func (c *courseController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateCourseRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.service.UpdateCourse(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update course", res))
}

func (c *courseController) IsAdmin(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	ok, err := c.service.IsCourseAdmin(ctx.UserContext(), serverutils.UserID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check course admin", dto.CourseAdminResponse{CourseId: id, IsAdmin: ok}))
}
