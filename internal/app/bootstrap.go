package app

import (
	"fmt"
	"strings"

	"profile-sync/internal/config"
	"profile-sync/internal/delivery/http/handler"
	"profile-sync/internal/delivery/http/middleware"
	"profile-sync/internal/delivery/http/routes"
	"profile-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	f.Use(middleware.NewErrorMiddleware(logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())

	go container.Hub.Run()

	registry := routes.NewRegistry(
		handler.NewHealthHandler(container.DB, container.Cache),
		handler.NewSkillHandler(container.SkillUC),
		handler.NewProfileHandler(container.ReconcileUC),
		handler.NewAchievementHandler(container.AchievementUC),
		ws.NewHandler(container.Hub, logger),
	)
	registry.Register(f)

	return &App{Fiber: f, Container: container}, container.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
