package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, resp *http.Response) BaseResponse[any] {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out BaseResponse[any]
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNop()))
	app.Get("/", handlers...)
	return app
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperror.NotFound("course", 7), 404, "course not found with id 7"},
		{"forbidden", apperror.Forbidden("not your course"), 403, "not your course"},
		{"validation", apperror.ValidationFailed("title", "title is required"), 400, "title is required"},
		{"external", apperror.External("failed to analyze charts", errors.New("openai 500")), 502, "failed to analyze charts"},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), 405, "nope"},
		{"unknown", errors.New("pq: connection refused"), 500, "internal server error"},
		{"bare sentinel", apperror.ErrUnauthenticated, 401, "unauthenticated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode(t, resp)
			assert.False(t, body.Success)
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Title  string `json:"title" validate:"required,max=5"`
		Weight int    `json:"weight" validate:"gte=0"`
	}

	assert.NoError(t, ValidateRequest(req{Title: "ok"}))

	err := ValidateRequest(req{})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "title", appErr.Field)
	assert.Equal(t, "title is required", appErr.Message)

	err = ValidateRequest(req{Title: "ok", Weight: -1})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "weight", appErr.Field)
}

func sessionConfig() SessionConfig {
	return SessionConfig{
		CookieName:         "session",
		UnauthenticatedURL: "/sign-in",
		Validate: func(ctx context.Context, token string) (int64, error) {
			if token == "good" {
				return 42, nil
			}
			return 0, apperror.Unauthenticated("invalid session")
		},
	}
}

func TestSessionMiddleware(t *testing.T) {
	app := newApp(SessionMiddleware(sessionConfig()), func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", UserID(c)))
	})

	t.Run("no cookie gives 401", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("html request is redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/sign-in", resp.Header.Get("Location"))
	})

	t.Run("bad cookie gives 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "bad"})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid cookie passes user id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "good"})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(42), decode(t, resp).Data)
	})
}

func TestOptionalSession(t *testing.T) {
	app := newApp(OptionalSession(sessionConfig()), func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", ViewerID(c)))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decode(t, resp).Data)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good"})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, float64(42), decode(t, resp).Data)
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRateLimiter(rdb, 2, time.Minute, logger.NewNop())

	app := newApp(limiter.Limit("analyze"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for i, wantRemaining := range []string{"1", "0"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
		assert.Equal(t, wantRemaining, resp.Header.Get("X-RateLimit-Remaining"))
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))

	mr.FastForward(time.Minute + time.Second)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	limiter := NewRateLimiter(rdb, 1, time.Minute, logger.NewNop())
	app := newApp(limiter.Limit("analyze"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestRateLimiter_CounterAlwaysExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRateLimiter(rdb, 10, time.Minute, logger.NewNop())

	app := newApp(limiter.Limit("analyze"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))

	// A counter that lost its expiry is re-armed on the next hit.
	require.NoError(t, rdb.Persist(context.Background(), keys[0]).Err())
	assert.Zero(t, mr.TTL(keys[0]))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "8", resp.Header.Get("X-RateLimit-Remaining"))
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNop()))
	app.Get("/courses/:id", func(c *fiber.Ctx) error {
		id, err := ParamID(c, "id")
		if err != nil {
			return err
		}
		return c.JSON(SuccessResponse("ok", id))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/courses/12", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, float64(12), decode(t, resp).Data)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/courses/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.True(t, strings.Contains(decode(t, resp).Message, "invalid id"))
}
