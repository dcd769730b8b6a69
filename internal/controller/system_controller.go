package controller

import (
	"strconv"

	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type systemController struct {
	systemService service.ISystemService
}

func NewSystemController(systemService service.ISystemService) ISystemController {
	return &systemController{
		systemService: systemService,
	}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/system/v1")
	h.Get("health", c.Health)
	h.Get("logs", serverutils.JwtMiddleware, c.Logs)
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	res := c.systemService.Health(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get system health", res))
}

func (c *systemController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := 100
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := c.systemService.RecentLogs(level, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get logs", entries))
}
