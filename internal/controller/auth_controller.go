package controller

import (
	"time"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const oauthStateCookie = "google_oauth_state"

type AuthCookieConfig struct {
	Session       serverutils.SessionConfig
	Secure        bool
	AfterLoginURL string
}

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	GoogleLogin(ctx *fiber.Ctx) error
	GoogleCallback(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	oauthService service.IOAuthService
	authService  service.IAuthService
	userService  service.IUserService
	cfg          AuthCookieConfig
}

func NewAuthController(
	oauthService service.IOAuthService,
	authService service.IAuthService,
	userService service.IUserService,
	cfg AuthCookieConfig,
) IAuthController {
	return &authController{
		oauthService: oauthService,
		authService:  authService,
		userService:  userService,
		cfg:          cfg,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Get("/login/google", c.GoogleLogin)
	r.Get("/login/google/callback", c.GoogleCallback)
	r.Get("/logout", c.Logout)
	r.Get("/auth/status", c.Status)
	r.Get("/me", serverutils.SessionMiddleware(c.cfg.Session), c.Me)
}

func (c *authController) setCookie(ctx *fiber.Ctx, name, value string, expires time.Time) {
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (c *authController) clearCookie(ctx *fiber.Ctx, name string) {
	c.setCookie(ctx, name, "", time.Unix(0, 0))
}

func (c *authController) GoogleLogin(ctx *fiber.Ctx) error {
	res, err := c.oauthService.BeginGoogleLogin()
	if err != nil {
		return err
	}

	c.setCookie(ctx, oauthStateCookie, res.StateCookie, res.ExpiresAt)
	return ctx.Redirect(res.AuthURL, fiber.StatusFound)
}

func (c *authController) GoogleCallback(ctx *fiber.Ctx) error {
	stateCookie := ctx.Cookies(oauthStateCookie)
	c.clearCookie(ctx, oauthStateCookie)

	res, err := c.oauthService.CompleteGoogleLogin(
		ctx.UserContext(),
		ctx.Query("code"),
		ctx.Query("state"),
		stateCookie,
	)
	if err != nil {
		return err
	}

	c.setCookie(ctx, c.cfg.Session.CookieName, res.Token, res.ExpiresAt)
	return ctx.Redirect(c.cfg.AfterLoginURL, fiber.StatusFound)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	if token := ctx.Cookies(c.cfg.Session.CookieName); token != "" {
		if err := c.authService.InvalidateSession(ctx.UserContext(), service.SessionIDFromToken(token)); err != nil {
			return err
		}
	}

	c.clearCookie(ctx, c.cfg.Session.CookieName)
	return ctx.Redirect("/", fiber.StatusFound)
}

func (c *authController) Status(ctx *fiber.Ctx) error {
	authenticated := false
	if token := ctx.Cookies(c.cfg.Session.CookieName); token != "" {
		_, err := c.authService.ValidateSessionToken(ctx.UserContext(), token)
		authenticated = err == nil
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get auth status", dto.AuthStatusResponse{Authenticated: authenticated}))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	res, err := c.userService.GetMe(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get current user", res))
}
