package controller

import (
	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChartController interface {
	RegisterRoutes(r fiber.Router)
	GetSnapshots(ctx *fiber.Ctx) error
	ShowSnapshot(ctx *fiber.Ctx) error
	CreateSnapshot(ctx *fiber.Ctx) error
	DeleteSnapshot(ctx *fiber.Ctx) error
	AnalyzeSnapshot(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
}

type chartController struct {
	snapshots service.ISnapshotService
	analysis  service.IAnalysisService
	session   serverutils.SessionConfig
	limiter   *serverutils.RateLimiter
}

// NewChartController takes an optional limiter; nil disables rate limiting.
func NewChartController(
	snapshots service.ISnapshotService,
	analysis service.IAnalysisService,
	session serverutils.SessionConfig,
	limiter *serverutils.RateLimiter,
) IChartController {
	return &chartController{
		snapshots: snapshots,
		analysis:  analysis,
		session:   session,
		limiter:   limiter,
	}
}

func (c *chartController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/charts", serverutils.SessionMiddleware(c.session))
	h.Get("/snapshots", c.GetSnapshots)
	h.Post("/snapshots", c.CreateSnapshot)
	h.Get("/snapshots/:id", c.ShowSnapshot)
	h.Delete("/snapshots/:id", c.DeleteSnapshot)
	h.Post("/snapshots/:id/analyze", c.limit("analyze"), c.AnalyzeSnapshot)
	h.Post("/analyze", c.limit("analyze"), c.Analyze)
}

func (c *chartController) limit(endpoint string) fiber.Handler {
	if c.limiter == nil {
		return func(ctx *fiber.Ctx) error { return ctx.Next() }
	}
	return c.limiter.Limit(endpoint)
}

func (c *chartController) GetSnapshots(ctx *fiber.Ctx) error {
	res, err := c.snapshots.GetSnapshots(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get snapshots", res))
}

func (c *chartController) ShowSnapshot(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.snapshots.GetSnapshot(ctx.UserContext(), serverutils.UserID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get snapshot", res))
}

func (c *chartController) CreateSnapshot(ctx *fiber.Ctx) error {
	var req dto.CreateSnapshotRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.snapshots.CreateSnapshot(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create snapshot", res))
}

func (c *chartController) DeleteSnapshot(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.snapshots.DeleteSnapshot(ctx.UserContext(), serverutils.UserID(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete snapshot", nil))
}

func (c *chartController) AnalyzeSnapshot(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.analysis.AnalyzeSnapshot(ctx.UserContext(), serverutils.UserID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze snapshot", res))
}

func (c *chartController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeChartsRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.analysis.AnalyzeCharts(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze charts", res))
}
