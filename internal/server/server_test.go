package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coursehub-be/internal/bootstrap"
	"coursehub-be/internal/config"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/internal/service"
	"coursehub-be/internal/testutil"
	"coursehub-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const cookieName = "session"

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	store *storage.MemoryStorage
	llm   *testutil.StubLLM
	auth  service.IAuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	store := storage.NewMemoryStorage("http://files.test")
	stub := &testutil.StubLLM{
		Reply: `{"recommendation":"LONG","confidence":70,"analysis":"Higher lows.","patterns":["Flag"]}`,
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			CorsAllowedOrigins: "http://localhost:5173",
			AfterLoginURL:      "/dashboard",
			UnauthenticatedURL: "/sign-in",
		},
		Google: config.GoogleConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost:3000/api/login/google/callback",
		},
		Session: config.SessionConfig{
			CookieName:  cookieName,
			StateSecret: "test-secret",
			CacheTTL:    time.Minute,
		},
		Ai:        config.AIConfig{LLMModel: "test-model", MaxTokens: 500},
		RateLimit: config.RateLimitConfig{AnalyzeLimit: 2, AnalyzeWindow: time.Minute},
	}

	infra := &bootstrap.Infrastructure{
		Logger:  logger.NewNop(),
		Storage: store,
		LLM:     stub,
		Redis:   rdb,
		PubSub:  pubSub,
	}

	srv := New(cfg, bootstrap.NewContainer(db, cfg, infra))

	return &testEnv{
		app:   srv.GetApp(),
		db:    db,
		store: store,
		llm:   stub,
		auth:  service.NewAuthService(unitofwork.NewRepositoryFactory(db), nil, logger.NewNop()),
	}
}

func (e *testEnv) login(t *testing.T, email string) (int64, string) {
	t.Helper()
	user := testutil.CreateUser(t, e.db, email)
	token, _, err := e.auth.CreateSession(context.Background(), user.Id)
	require.NoError(t, err)
	return user.Id, token
}

func (e *testEnv) do(t *testing.T, method, target, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// postForm sends a multipart form whose "file" part comes last, the way a
// browser submits a presigned POST.
func (e *testEnv) postForm(t *testing.T, target string, fields map[string]string, data []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}
	part, err := w.CreateFormFile("file", "upload.bin")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) serverutils.BaseResponse[T] {
	t.Helper()
	defer resp.Body.Close()
	var out serverutils.BaseResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type idOnly struct {
	Id int64 `json:"id"`
}

func TestCourseFlow(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.login(t, "owner@example.com")
	_, other := env.login(t, "other@example.com")

	resp := env.do(t, http.MethodPost, "/api/courses", owner, map[string]interface{}{
		"title":       "Intro to Go",
		"description": "Basics",
		"category":    "programming",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	course := decode[idOnly](t, resp).Data

	resp = env.do(t, http.MethodGet, "/api/courses?category=programming", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]idOnly](t, resp).Data, 1)

	detailURL := fmt.Sprintf("/api/courses/%d", course.Id)

	resp = env.do(t, http.MethodGet, detailURL, "", nil)
	anon := decode[struct {
		IsAdmin bool `json:"is_admin"`
	}](t, resp)
	assert.False(t, anon.Data.IsAdmin)

	resp = env.do(t, http.MethodGet, detailURL, owner, nil)
	mine := decode[struct {
		IsAdmin bool `json:"is_admin"`
	}](t, resp)
	assert.True(t, mine.Data.IsAdmin)

	resp = env.do(t, http.MethodPut, detailURL, other, map[string]interface{}{
		"title":       "Hijacked",
		"description": "x",
		"category":    "x",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, detailURL+"/admin", other, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[struct {
		IsAdmin bool `json:"is_admin"`
	}](t, resp).Data.IsAdmin)
}

func TestSegmentNavigation(t *testing.T) {
	env := newTestEnv(t)
	userID, owner := env.login(t, "owner@example.com")
	course := testutil.CreateCourse(t, env.db, userID, "Course", "general")

	base := fmt.Sprintf("/api/courses/%d/segments", course.Id)
	var ids []int64
	for _, title := range []string{"One", "Two", "Three"} {
		resp := env.do(t, http.MethodPost, base, owner, map[string]string{"title": title})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, decode[idOnly](t, resp).Data.Id)
	}

	resp := env.do(t, http.MethodGet, fmt.Sprintf("%s/%d", base, ids[1]), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decode[struct {
		Segment struct {
			Order int `json:"order"`
		} `json:"segment"`
		Navigation struct {
			PrevSegment *idOnly `json:"prev_segment"`
			NextSegment *idOnly `json:"next_segment"`
		} `json:"navigation"`
	}](t, resp).Data

	assert.Equal(t, 1, view.Segment.Order)
	require.NotNil(t, view.Navigation.PrevSegment)
	require.NotNil(t, view.Navigation.NextSegment)
	assert.Equal(t, ids[0], view.Navigation.PrevSegment.Id)
	assert.Equal(t, ids[2], view.Navigation.NextSegment.Id)

	resp = env.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, ids[2]), owner, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, base, "", nil)
	assert.Len(t, decode[[]idOnly](t, resp).Data, 2)
}

func TestBookmarkToggle(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.login(t, "viewer@example.com")
	course := testutil.CreateCourse(t, env.db, userID, "Course", "general")

	url := fmt.Sprintf("/api/courses/%d/bookmark", course.Id)
	type status struct {
		Bookmarked bool `json:"bookmarked"`
	}

	resp := env.do(t, http.MethodPost, url, token, nil)
	assert.True(t, decode[status](t, resp).Data.Bookmarked)

	resp = env.do(t, http.MethodGet, "/api/bookmarks", token, nil)
	assert.Len(t, decode[[]idOnly](t, resp).Data, 1)

	resp = env.do(t, http.MethodPost, url, token, nil)
	assert.False(t, decode[status](t, resp).Data.Bookmarked)

	resp = env.do(t, http.MethodGet, url, token, nil)
	assert.False(t, decode[status](t, resp).Data.Bookmarked)
}

func TestAttachmentUploadAndDelete(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.login(t, "owner@example.com")
	course := testutil.CreateCourse(t, env.db, userID, "Course", "general")
	segment := testutil.CreateSegment(t, env.db, course.Id, 0)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "notes.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/segments/%d/attachments", segment.Id), &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[struct {
		Id       int64  `json:"id"`
		FileName string `json:"file_name"`
		FileKey  string `json:"file_key"`
	}](t, resp).Data
	assert.Equal(t, "notes.pdf", created.FileName)
	assert.True(t, env.store.Exists(created.FileKey))

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/segments/%d/attachments", segment.Id), "", nil)
	assert.Len(t, decode[[]idOnly](t, resp).Data, 1)

	resp = env.do(t, http.MethodDelete, fmt.Sprintf("/api/attachments/%d", created.Id), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/segments/%d/attachments", segment.Id), "", nil)
	assert.Empty(t, decode[[]idOnly](t, resp).Data)
}

func TestPresignedUpload(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.login(t, "owner@example.com")
	_, other := env.login(t, "other@example.com")

	resp := env.do(t, http.MethodPost, "/api/storage/presigned", token, map[string]string{"content_type": "image/png"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[struct {
		Url    string            `json:"url"`
		Fields map[string]string `json:"fields"`
		Key    string            `json:"key"`
	}](t, resp).Data
	require.NotEmpty(t, res.Key)
	assert.Equal(t, "http://files.test", res.Url)
	assert.Equal(t, res.Key, res.Fields["key"])

	// The in-memory backend serves the presigned POST and the object URL.
	png := []byte("\x89PNG\r\n\x1a\n0000")
	resp = env.postForm(t, "/files", res.Fields, png)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/files/"+res.Key, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, png, data)

	resp = env.postForm(t, "/files", res.Fields, png)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.postForm(t, "/files", map[string]string{"key": "not-issued", "Content-Type": "image/png"}, png)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/files/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	snapshot := map[string]interface{}{
		"symbol": "BTCUSDT",
		"images": []map[string]string{{"timeframe": "1h", "image_id": res.Key}},
	}
	resp = env.do(t, http.MethodPost, "/api/charts/snapshots", other, snapshot)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/charts/snapshots", token, snapshot)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestExercises(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.login(t, "lifter@example.com")
	_, other := env.login(t, "other@example.com")

	resp := env.do(t, http.MethodPost, "/api/exercises", token, map[string]interface{}{
		"exercise": "Squat", "weight": 100, "reps": 5, "sets": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[idOnly](t, resp).Data

	resp = env.do(t, http.MethodGet, "/api/exercises", other, nil)
	assert.Empty(t, decode[[]idOnly](t, resp).Data)

	resp = env.do(t, http.MethodDelete, fmt.Sprintf("/api/exercises/%d", created.Id), other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, fmt.Sprintf("/api/exercises/%d", created.Id), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAnalyzeCharts_RateLimited(t *testing.T) {
	env := newTestEnv(t)
	traderId, token := env.login(t, "trader@example.com")

	png := []byte("\x89PNG\r\n\x1a\n0000")
	testutil.CreateUpload(t, env.db, traderId, "chart-1h")
	require.NoError(t, env.store.Store(context.Background(), "chart-1h", bytes.NewReader(png), int64(len(png)), "image/png"))

	body := map[string]interface{}{
		"symbol": "BTCUSDT",
		"images": []map[string]string{{"timeframe": "1h", "image_id": "chart-1h"}},
	}

	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodPost, "/api/charts/analyze", token, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		res := decode[struct {
			Recommendation string `json:"recommendation"`
			Confidence     int    `json:"confidence"`
		}](t, resp).Data
		assert.Equal(t, "LONG", res.Recommendation)
		assert.Equal(t, 70, res.Confidence)
	}

	resp := env.do(t, http.MethodPost, "/api/charts/analyze", token, body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.Len(t, env.llm.Calls, 2)
}

func TestSnapshotLifecycle(t *testing.T) {
	env := newTestEnv(t)
	traderId, token := env.login(t, "trader@example.com")
	_, other := env.login(t, "other@example.com")
	testutil.CreateUpload(t, env.db, traderId, "eth-4h")

	resp := env.do(t, http.MethodPost, "/api/charts/snapshots", token, map[string]interface{}{
		"symbol": "ETHUSDT",
		"images": []map[string]string{{"timeframe": "4h", "image_id": "eth-4h"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	snapshot := decode[idOnly](t, resp).Data

	url := fmt.Sprintf("/api/charts/snapshots/%d", snapshot.Id)

	resp = env.do(t, http.MethodGet, url, other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/charts/snapshots", token, nil)
	assert.Len(t, decode[[]idOnly](t, resp).Data, 1)

	resp = env.do(t, http.MethodDelete, url, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, url, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionGate(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/bookmarks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
	req.Header.Set(fiber.HeaderAccept, "text/html,application/xhtml+xml")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sign-in", resp.Header.Get(fiber.HeaderLocation))

	resp = env.do(t, http.MethodGet, "/api/bookmarks", "not-a-session", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRoutes(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.login(t, "me@example.com")

	type status struct {
		Authenticated bool `json:"authenticated"`
	}

	resp := env.do(t, http.MethodGet, "/api/auth/status", "", nil)
	assert.False(t, decode[status](t, resp).Data.Authenticated)

	resp = env.do(t, http.MethodGet, "/api/auth/status", token, nil)
	assert.True(t, decode[status](t, resp).Data.Authenticated)

	resp = env.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[struct {
		Email *string `json:"email"`
	}](t, resp).Data
	require.NotNil(t, me.Email)
	assert.Equal(t, "me@example.com", *me.Email)

	resp = env.do(t, http.MethodGet, "/api/logout", token, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	resp = env.do(t, http.MethodGet, "/api/auth/status", token, nil)
	assert.False(t, decode[status](t, resp).Data.Authenticated)
}

func TestGoogleLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/login/google", "", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	location := resp.Header.Get(fiber.HeaderLocation)
	assert.True(t, strings.HasPrefix(location, "https://accounts.google.com/"))
	assert.Contains(t, location, "code_challenge_method=S256")

	var state *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "google_oauth_state" {
			state = c
		}
	}
	require.NotNil(t, state)
	assert.True(t, state.HttpOnly)

	// A callback whose state does not match the cookie is rejected.
	req := httptest.NewRequest(http.MethodGet, "/api/login/google/callback?code=abc&state=wrong", nil)
	req.AddCookie(&http.Cookie{Name: state.Name, Value: state.Value})
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
