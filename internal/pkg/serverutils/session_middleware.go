package serverutils

import (
	"context"
	"strings"

	"coursehub-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "user_id"

// SessionValidator resolves a session cookie token to its user id.
type SessionValidator func(ctx context.Context, token string) (int64, error)

type SessionConfig struct {
	CookieName         string
	UnauthenticatedURL string
	Validate           SessionValidator
}

// SessionMiddleware rejects requests without a valid session. Browser
// navigations are redirected; API calls get 401.
func SessionMiddleware(cfg SessionConfig) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, ok := resolve(ctx, cfg)
		if !ok {
			if wantsHTML(ctx) && cfg.UnauthenticatedURL != "" {
				return ctx.Redirect(cfg.UnauthenticatedURL, fiber.StatusFound)
			}
			return apperror.Unauthenticated("authentication required")
		}
		ctx.Locals(userIDKey, userID)
		return ctx.Next()
	}
}

// OptionalSession stores the viewer when a valid session is present and
// never rejects.
func OptionalSession(cfg SessionConfig) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if userID, ok := resolve(ctx, cfg); ok {
			ctx.Locals(userIDKey, userID)
		}
		return ctx.Next()
	}
}

func resolve(ctx *fiber.Ctx, cfg SessionConfig) (int64, bool) {
	token := ctx.Cookies(cfg.CookieName)
	if token == "" {
		return 0, false
	}
	userID, err := cfg.Validate(ctx.UserContext(), token)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func wantsHTML(ctx *fiber.Ctx) bool {
	return strings.Contains(ctx.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}

// UserID returns the authenticated user. Only valid behind SessionMiddleware.
func UserID(ctx *fiber.Ctx) int64 {
	id, _ := ctx.Locals(userIDKey).(int64)
	return id
}

// ViewerID returns the optional viewer on public routes.
func ViewerID(ctx *fiber.Ctx) *int64 {
	if id, ok := ctx.Locals(userIDKey).(int64); ok {
		return &id
	}
	return nil
}
