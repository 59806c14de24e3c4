package controller

import (
	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBookmarkController interface {
	RegisterRoutes(r fiber.Router)
	Toggle(ctx *fiber.Ctx) error
	Bookmark(ctx *fiber.Ctx) error
	Unbookmark(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
}

type bookmarkController struct {
	service service.IBookmarkService
	session serverutils.SessionConfig
}

func NewBookmarkController(service service.IBookmarkService, session serverutils.SessionConfig) IBookmarkController {
	return &bookmarkController{service: service, session: session}
}

func (c *bookmarkController) RegisterRoutes(r fiber.Router) {
	required := serverutils.SessionMiddleware(c.session)

	h := r.Group("/courses/:id/bookmark")
	h.Post("", required, c.Toggle)
	h.Put("", required, c.Bookmark)
	h.Delete("", required, c.Unbookmark)
	h.Get("", required, c.Status)

	r.Get("/bookmarks", required, c.GetAll)
}

func (c *bookmarkController) Toggle(ctx *fiber.Ctx) error {
	courseId, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ToggleBookmark(ctx.UserContext(), serverutils.UserID(ctx), courseId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle bookmark", res))
}

func (c *bookmarkController) Bookmark(ctx *fiber.Ctx) error {
	courseId, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.BookmarkCourse(ctx.UserContext(), serverutils.UserID(ctx), courseId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success bookmark course", dto.BookmarkStatusResponse{CourseId: courseId, Bookmarked: true}))
}

func (c *bookmarkController) Unbookmark(ctx *fiber.Ctx) error {
	courseId, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.UnbookmarkCourse(ctx.UserContext(), serverutils.UserID(ctx), courseId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success unbookmark course", dto.BookmarkStatusResponse{CourseId: courseId, Bookmarked: false}))
}

func (c *bookmarkController) Status(ctx *fiber.Ctx) error {
	courseId, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	ok, err := c.service.IsBookmarked(ctx.UserContext(), serverutils.UserID(ctx), courseId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get bookmark", dto.BookmarkStatusResponse{CourseId: courseId, Bookmarked: ok}))
}

func (c *bookmarkController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetBookmarkedCourses(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get bookmarked courses", res))
}
