package app

import (
	"context"
	"time"

	"profile-sync/internal/ai"
	"profile-sync/internal/ai/gemini"
	"profile-sync/internal/config"
	"profile-sync/internal/database"
	dbpostgres "profile-sync/internal/database/postgres"
	"profile-sync/internal/dedup"
	"profile-sync/internal/infrastructure/cache"
	"profile-sync/internal/normalizer"
	"profile-sync/internal/repository"
	"profile-sync/internal/taxonomy"
	"profile-sync/internal/usecase"
	"profile-sync/internal/ws"

	"go.uber.org/zap"
)

// Container holds every long-lived dependency, wired once at startup.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	ReconcileUC   usecase.ReconcileUsecase
	AchievementUC usecase.AchievementUsecase
	SkillUC       usecase.SkillUsecase
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	skillRepo := repository.NewPostgresSkillRepository(db)
	aliasRepo := repository.NewPostgresSkillAliasRepository(db)
	userSkillRepo := repository.NewPostgresUserSkillRepository(db)
	workHistoryRepo := repository.NewPostgresWorkHistoryRepository(db)
	keyAchievementRepo := repository.NewPostgresKeyAchievementRepository(db)

	tax := taxonomy.New(skillRepo, aliasRepo, redisCache, cfg.Redis.TTL, logger)
	norm := normalizer.New(tax, logger)

	// Without an API key the dedup pipeline still runs, minus the oracle.
	var merger ai.Merger
	if cfg.Gemini.APIKey != "" {
		generator, err := gemini.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
		if err != nil {
			logger.Warn("gemini client unavailable, running without merge oracle", zap.Error(err))
		} else {
			merger = gemini.NewMerger(generator, logger, 200)
		}
	} else {
		logger.Info("no gemini api key configured, running without merge oracle")
	}
	deduplicator := dedup.New(merger, logger)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,

		ReconcileUC:   usecase.NewReconcileUsecase(workHistoryRepo, userSkillRepo, norm, deduplicator, logger),
		AchievementUC: usecase.NewAchievementUsecase(keyAchievementRepo, workHistoryRepo, deduplicator, logger),
		SkillUC:       usecase.NewSkillUsecase(skillRepo, norm, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
