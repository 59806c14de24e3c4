package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"coursehub-be/internal/dto"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/pkg/chartanalysis"
	"coursehub-be/pkg/events"
	"coursehub-be/pkg/llm"
	"coursehub-be/pkg/storage"

	"golang.org/x/sync/errgroup"
)

const analysisFailedMessage = "Failed to analyze charts"

var supportedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

type IAnalysisService interface {
	AnalyzeCharts(ctx context.Context, userId int64, req *dto.AnalyzeChartsRequest) (*dto.ChartAnalysis, error)
	AnalyzeSnapshot(ctx context.Context, userId, snapshotId int64) (*dto.SnapshotResponse, error)
}

type AnalysisConfig struct {
	Model     string
	MaxTokens int
}

type analysisService struct {
	uowFactory unitofwork.RepositoryFactory
	uploads    UploadAccess
	storage    storage.ObjectStorage
	provider   llm.LLMProvider
	cfg        AnalysisConfig
	events     eventPublisher
	logger     logger.ILogger
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	storage storage.ObjectStorage,
	provider llm.LLMProvider,
	cfg AnalysisConfig,
	publisher events.Publisher,
	logger logger.ILogger,
) IAnalysisService {
	return &analysisService{
		uowFactory: uowFactory,
		storage:    storage,
		provider:   provider,
		cfg:        cfg,
		events:     eventPublisher{publisher: publisher, logger: logger},
		logger:     logger,
	}
}

func (s *analysisService) AnalyzeCharts(ctx context.Context, userId int64, req *dto.AnalyzeChartsRequest) (*dto.ChartAnalysis, error) {
	keys := imageKeys(req.Images)
	if err := s.uploads.AssertOwnedKeys(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, keys...); err != nil {
		return nil, err
	}

	timeframes := make([]string, len(req.Images))
	for i, image := range req.Images {
		timeframes[i] = image.Timeframe
	}

	result, err := s.analyze(ctx, req.Symbol, keys, timeframes)
	if err != nil {
		s.logger.Error("ANALYSIS", "Chart analysis failed", map[string]interface{}{
			"user_id": userId,
			"symbol":  req.Symbol,
			"error":   err,
		})
		return nil, apperror.External(analysisFailedMessage, err)
	}
	return result, nil
}

// AnalyzeSnapshot runs the analysis over a stored snapshot's screenshots and
// saves the outcome on the snapshot.
func (s *analysisService) AnalyzeSnapshot(ctx context.Context, userId, snapshotId int64) (*dto.SnapshotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	snapshot, err := findOwnedSnapshot(ctx, uow, userId, snapshotId)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Screenshots) == 0 {
		return nil, apperror.ValidationFailed("screenshots", "snapshot has no screenshots")
	}

	keys := make([]string, len(snapshot.Screenshots))
	timeframes := make([]string, len(snapshot.Screenshots))
	for i, shot := range snapshot.Screenshots {
		keys[i] = shot.FileKey
		timeframes[i] = shot.Timeframe
	}

	result, err := s.analyze(ctx, snapshot.Symbol, keys, timeframes)
	if err != nil {
		s.logger.Error("ANALYSIS", "Snapshot analysis failed", map[string]interface{}{
			"snapshot_id": snapshotId,
			"error":       err,
		})
		return nil, apperror.External(analysisFailedMessage, err)
	}

	applyAnalysis(snapshot, result)
	if err := uow.ChartSnapshotRepository().UpdateAnalysis(ctx, snapshot); err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.SnapshotAnalyzed, map[string]interface{}{
		"snapshot_id":    snapshot.Id,
		"user_id":        userId,
		"symbol":         snapshot.Symbol,
		"recommendation": result.Recommendation,
		"confidence":     result.Confidence,
	})

	return toSnapshotResponse(snapshot, s.storage), nil
}

func (s *analysisService) analyze(ctx context.Context, symbol string, keys, timeframes []string) (*dto.ChartAnalysis, error) {
	images, err := s.loadImages(ctx, keys)
	if err != nil {
		return nil, err
	}

	history := []llm.Message{
		{Role: "system", Content: chartanalysis.SystemPrompt},
		{Role: "user", Content: chartanalysis.UserPrompt(symbol, timeframes), Images: images},
	}

	opts := []llm.Option{llm.WithMaxTokens(s.cfg.MaxTokens)}
	if s.cfg.Model != "" {
		opts = append(opts, llm.WithModel(s.cfg.Model))
	}

	reply, err := s.provider.Chat(ctx, history, opts...)
	if err != nil {
		return nil, fmt.Errorf("llm chat: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		return nil, fmt.Errorf("llm returned an empty response")
	}

	parsed := chartanalysis.Parse(reply)
	return &dto.ChartAnalysis{
		Recommendation: parsed.Recommendation,
		Confidence:     parsed.Confidence,
		Analysis:       parsed.Analysis,
		Patterns:       parsed.Patterns,
	}, nil
}

// loadImages fetches every key concurrently. Order follows keys.
func (s *analysisService) loadImages(ctx context.Context, keys []string) ([]llm.Image, error) {
	images := make([]llm.Image, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			data, contentType, err := s.storage.Get(gctx, key)
			if err != nil {
				return fmt.Errorf("load image %s: %w", key, err)
			}
			mimeType := normalizeImageType(contentType, data)
			if !supportedImageTypes[mimeType] {
				return fmt.Errorf("unsupported image type %q for %s", mimeType, key)
			}
			images[i] = llm.Image{MIMEType: mimeType, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func normalizeImageType(contentType string, data []byte) string {
	mimeType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if mimeType == "image/jpg" {
		mimeType = "image/jpeg"
	}
	return mimeType
}
