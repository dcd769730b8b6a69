package controller

import (
	"context"

	"pharmachain-portal/internal/dto"
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	RunAgent(ctx *fiber.Ctx) error
	AgenticAnalyze(ctx *fiber.Ctx) error
	VerifyScan(ctx *fiber.Ctx) error
	Scan(ctx *fiber.Ctx) error
	AutonomousVerify(ctx *fiber.Ctx) error
	SupplyChainAnalysis(ctx *fiber.Ctx) error
	BatchVerify(ctx *fiber.Ctx) error
	AgentStatus(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	ChatSession(ctx *fiber.Ctx) error
	DeleteChatSession(ctx *fiber.Ctx) error
	ChatSessions(ctx *fiber.Ctx) error
	ProcessingStatus(ctx *fiber.Ctx) error
	ChatTemplates(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	ai := r.Group("/ai/v1")
	ai.Post("agent", c.RunAgent)
	ai.Post("agentic-analyze", c.AgenticAnalyze)
	ai.Post("verify-scan", c.VerifyScan)
	ai.Post("scan", c.Scan)
	ai.Post("autonomous-verify", c.AutonomousVerify)
	ai.Post("supply-chain-analysis", c.SupplyChainAnalysis)
	ai.Post("batch-verify", c.BatchVerify)
	ai.Get("agent-status", c.AgentStatus)

	chat := r.Group("/chat/v1")
	chat.Post("", c.Chat)
	chat.Get("sessions", c.ChatSessions)
	chat.Get("sessions/:sessionId", c.ChatSession)
	chat.Delete("sessions/:sessionId", c.DeleteChatSession)
	chat.Get("processing/:processingId", c.ProcessingStatus)
	chat.Get("templates", c.ChatTemplates)
}

func (c *assistantController) RunAgent(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.assistantService.RunAgent, "Success run agent")
}

func (c *assistantController) AgenticAnalyze(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.assistantService.AgenticAnalyze, "Success run analysis")
}

func (c *assistantController) VerifyScan(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.assistantService.VerifyScan, "Success verify scan")
}

func (c *assistantController) Scan(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.assistantService.Scan, "Success run scan")
}

func (c *assistantController) AutonomousVerify(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.assistantService.AutonomousVerify, "Success run autonomous verification")
}

func (c *assistantController) SupplyChainAnalysis(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.assistantService.SupplyChainAnalysis, "Success run supply chain analysis")
}

func (c *assistantController) BatchVerify(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.assistantService.BatchVerify, "Success run batch verification")
}

func (c *assistantController) AgentStatus(ctx *fiber.Ctx) error {
	res, err := c.assistantService.AgentStatus(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get agent status", res))
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	data := map[string]any{"message": req.Message}
	if req.SessionID != "" {
		data["session_id"] = req.SessionID
	}

	res, err := c.assistantService.Chat(ctx.Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat message", res))
}

func (c *assistantController) ChatSession(ctx *fiber.Ctx) error {
	res, err := c.assistantService.ChatSession(ctx.Context(), ctx.Params("sessionId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat session", res))
}

func (c *assistantController) DeleteChatSession(ctx *fiber.Ctx) error {
	if err := c.assistantService.DeleteChatSession(ctx.Context(), ctx.Params("sessionId")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chat session deleted", nil))
}

func (c *assistantController) ChatSessions(ctx *fiber.Ctx) error {
	res, err := c.assistantService.ChatSessions(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat sessions", res))
}

func (c *assistantController) ProcessingStatus(ctx *fiber.Ctx) error {
	res, err := c.assistantService.ProcessingStatus(ctx.Context(), ctx.Params("processingId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get processing status", res))
}

func (c *assistantController) ChatTemplates(ctx *fiber.Ctx) error {
	res, err := c.assistantService.ChatTemplates(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat templates", res))
}

func (c *assistantController) proxy(ctx *fiber.Ctx, call func(context.Context, map[string]any) (map[string]any, error), message string) error {
	var data map[string]any
	if err := ctx.BodyParser(&data); err != nil {
		return err
	}

	res, err := call(ctx.Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
