package controller

import (
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IFileController serves objects and presigned form posts for the in-memory
// storage backend. S3-compatible backends handle both themselves.
type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type fileController struct {
	service service.IStorageService
}

func NewFileController(service service.IStorageService) IFileController {
	return &fileController{service: service}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/files")
	h.Post("", c.Upload)
	h.Get("/:key", c.Download)
}

// Upload mirrors an S3 POST policy upload: the form carries the issued key
// and content type, followed by the "file" part.
func (c *fileController) Upload(ctx *fiber.Ctx) error {
	key := ctx.FormValue("key")
	if key == "" {
		return apperror.ValidationFailed("key", "key is required")
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return apperror.ValidationFailed("file", "file is required")
	}

	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	if err := c.service.ReceiveUpload(ctx.UserContext(), key, ctx.FormValue(fiber.HeaderContentType), file, fh.Size); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *fileController) Download(ctx *fiber.Ctx) error {
	data, contentType, err := c.service.GetObject(ctx.UserContext(), ctx.Params("key"))
	if err != nil {
		return err
	}

	if contentType != "" {
		ctx.Set(fiber.HeaderContentType, contentType)
	}
	return ctx.Send(data)
}
