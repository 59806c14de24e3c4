package bootstrap

import (
	"context"

	"coursehub-be/internal/config"
	"coursehub-be/internal/controller"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/pkg/serverutils"
	"coursehub-be/internal/repository/memory"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/internal/service"
	"coursehub-be/pkg/storage"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	CourseController     controller.ICourseController
	SegmentController    controller.ISegmentController
	BookmarkController   controller.IBookmarkController
	AttachmentController controller.IAttachmentController
	StorageController    controller.IStorageController
	ExerciseController   controller.IExerciseController
	ChartController      controller.IChartController
	// FileController is nil unless objects live in process memory.
	FileController controller.IFileController

	// Background services, started by cmd/rest
	FileCleanupService service.IFileCleanupService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config, infra *Infrastructure) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	log := infra.Logger

	// Sessions
	sessionCache := memory.NewSessionRepository(cfg.Session.CacheTTL)
	authService := service.NewAuthService(uowFactory, sessionCache, log)
	oauthService := service.NewOAuthService(
		uowFactory,
		authService,
		service.NewGoogleOAuthConfig(cfg.Google),
		cfg.Session.StateSecret,
		service.GoogleUserInfoURL,
		infra.Publisher,
		log,
	)
	userService := service.NewUserService(uowFactory)

	session := serverutils.SessionConfig{
		CookieName:         cfg.Session.CookieName,
		UnauthenticatedURL: cfg.App.UnauthenticatedURL,
		Validate:           SessionValidator(authService),
	}

	// Courses
	cleanupService := service.NewFileCleanupService(uowFactory, infra.Storage, infra.PubSub, log)
	courseService := service.NewCourseService(uowFactory, cleanupService, infra.Storage, infra.Publisher, log)
	segmentService := service.NewSegmentService(uowFactory, cleanupService, infra.Storage, infra.Publisher, log)
	bookmarkService := service.NewBookmarkService(uowFactory, infra.Storage, infra.Publisher, log)
	attachmentService := service.NewAttachmentService(uowFactory, cleanupService, infra.Storage, log)
	storageService := service.NewStorageService(uowFactory, infra.Storage)

	// Trading and fitness
	exerciseService := service.NewExerciseService(uowFactory)
	snapshotService := service.NewSnapshotService(uowFactory, cleanupService, infra.Storage, log)
	analysisService := service.NewAnalysisService(
		uowFactory,
		infra.Storage,
		infra.LLM,
		service.AnalysisConfig{Model: cfg.Ai.LLMModel, MaxTokens: cfg.Ai.MaxTokens},
		infra.Publisher,
		log,
	)

	var limiter *serverutils.RateLimiter
	if infra.Redis != nil {
		limiter = serverutils.NewRateLimiter(infra.Redis, cfg.RateLimit.AnalyzeLimit, cfg.RateLimit.AnalyzeWindow, log)
	}

	var fileController controller.IFileController
	if _, ok := infra.Storage.(*storage.MemoryStorage); ok {
		fileController = controller.NewFileController(storageService)
	}

	return &Container{
		AuthController: controller.NewAuthController(oauthService, authService, userService, controller.AuthCookieConfig{
			Session:       session,
			Secure:        cfg.App.IsProduction(),
			AfterLoginURL: cfg.App.AfterLoginURL,
		}),
		CourseController:     controller.NewCourseController(courseService, session),
		SegmentController:    controller.NewSegmentController(segmentService, session),
		BookmarkController:   controller.NewBookmarkController(bookmarkService, session),
		AttachmentController: controller.NewAttachmentController(attachmentService, session),
		StorageController:    controller.NewStorageController(storageService, session),
		ExerciseController:   controller.NewExerciseController(exerciseService, session),
		ChartController:      controller.NewChartController(snapshotService, analysisService, session, limiter),
		FileController:       fileController,

		FileCleanupService: cleanupService,
		Logger:             log,
	}
}

// SessionValidator adapts the auth service to the session middleware.
func SessionValidator(auth service.IAuthService) serverutils.SessionValidator {
	return func(ctx context.Context, token string) (int64, error) {
		res, err := auth.ValidateSessionToken(ctx, token)
		if err != nil {
			return 0, err
		}
		return res.User.Id, nil
	}
}
