package bootstrap

import (
	"context"
	"fmt"

	"coursehub-be/internal/config"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/pkg/events"
	"coursehub-be/pkg/llm"
	"coursehub-be/pkg/llm/factory"
	pktNats "coursehub-be/pkg/nats"
	"coursehub-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

// Infrastructure holds the external clients the container wires into
// services. Tests build one by hand with in-memory parts.
type Infrastructure struct {
	Logger    logger.ILogger
	Storage   storage.ObjectStorage
	LLM       llm.LLMProvider
	Redis     *redis.Client
	PubSub    *gochannel.GoChannel
	Publisher events.Publisher

	nats *pktNats.Publisher
}

func NewInfrastructure(ctx context.Context, cfg *config.Config, log logger.ILogger) (*Infrastructure, error) {
	infra := &Infrastructure{
		Logger: log,
		PubSub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false)),
	}

	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	infra.LLM = llmProvider
	log.Info("BOOTSTRAP", "Using LLM provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	if cfg.Storage.AccessKeyID == "" || cfg.Storage.SecretAccessKey == "" {
		log.Warn("BOOTSTRAP", "S3 credentials missing, using in-memory storage", nil)
		infra.Storage = storage.NewMemoryStorage(cfg.App.BaseURL + "/files")
	} else {
		minioStorage, err := storage.NewMinioStorage(storage.MinioConfig{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			Bucket:          cfg.Storage.Bucket,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			UseSSL:          cfg.Storage.UseSSL,
			PublicURL:       cfg.Storage.PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("init object storage: %w", err)
		}
		infra.Storage = minioStorage
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as address", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	infra.Redis = redis.NewClient(opt)
	if err := infra.Redis.Ping(ctx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to Redis, rate limiting fails open", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err != nil {
			log.Warn("BOOTSTRAP", "Failed to connect to NATS, domain events disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			infra.nats = natsPub
			infra.Publisher = natsPub
		}
	}

	return infra, nil
}

func (i *Infrastructure) Close() {
	if i.nats != nil {
		i.nats.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.PubSub != nil {
		_ = i.PubSub.Close()
	}
}
