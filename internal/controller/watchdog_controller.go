package controller

import (
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/internal/service"
	ws "pharmachain-portal/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IWatchdogController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Stop(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Alerts(ctx *fiber.Ctx) error
	ClearAlerts(ctx *fiber.Ctx) error
}

type watchdogController struct {
	watchdogService service.IWatchdogService
	hub             *ws.Hub
}

func NewWatchdogController(watchdogService service.IWatchdogService, hub *ws.Hub) IWatchdogController {
	return &watchdogController{
		watchdogService: watchdogService,
		hub:             hub,
	}
}

func (c *watchdogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/watchdog/v1")
	h.Post("start", c.Start)
	h.Post("stop", c.Stop)
	h.Get("status", c.Status)
	h.Get("alerts", c.Alerts)
	h.Delete("alerts", serverutils.JwtMiddleware, c.ClearAlerts)

	// Live snapshot stream for the monitor page.
	h.Use("live", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("live", websocket.New(func(conn *websocket.Conn) {
		ws.ServeWs(c.hub, conn)
	}))
}

func (c *watchdogController) Start(ctx *fiber.Ctx) error {
	res, err := c.watchdogService.StartMonitoring(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Monitoring started", res))
}

func (c *watchdogController) Stop(ctx *fiber.Ctx) error {
	res, err := c.watchdogService.StopMonitoring(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Monitoring stopped", res))
}

func (c *watchdogController) Status(ctx *fiber.Ctx) error {
	res, err := c.watchdogService.Status(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get watchdog status", res))
}

func (c *watchdogController) Alerts(ctx *fiber.Ctx) error {
	res, err := c.watchdogService.Alerts(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get alerts", res))
}

func (c *watchdogController) ClearAlerts(ctx *fiber.Ctx) error {
	clearedBy, _ := ctx.Locals("manufacturer").(string)
	if err := c.watchdogService.ClearAlerts(ctx.Context(), clearedBy); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Alerts cleared", nil))
}
