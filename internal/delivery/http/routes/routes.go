package routes

import (
	"profile-sync/internal/delivery/http/handler"
	"profile-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health       *handler.HealthHandler
	skills       *handler.SkillHandler
	profiles     *handler.ProfileHandler
	achievements *handler.AchievementHandler
	progress     *ws.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	skills *handler.SkillHandler,
	profiles *handler.ProfileHandler,
	achievements *handler.AchievementHandler,
	progress *ws.Handler,
) *Registry {
	return &Registry{
		health:       health,
		skills:       skills,
		profiles:     profiles,
		achievements: achievements,
		progress:     progress,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	v1 := app.Group("/api").Group("/v1")
	r.skills.RegisterRoutes(v1)
	r.profiles.RegisterRoutes(v1)
	r.achievements.RegisterRoutes(v1)

	if r.progress != nil {
		app.Get("/ws/progress", r.progress.HandleProgressWS)
	}
}
