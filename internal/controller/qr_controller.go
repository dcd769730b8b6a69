package controller

import (
	"context"

	"pharmachain-portal/internal/dto"
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQRController interface {
	RegisterRoutes(r fiber.Router)
	GenerateJSON(ctx *fiber.Ctx) error
	EncryptData(ctx *fiber.Ctx) error
	GenerateImage(ctx *fiber.Ctx) error
	CreateComplete(ctx *fiber.Ctx) error
	DecryptData(ctx *fiber.Ctx) error
	VerifyFormat(ctx *fiber.Ctx) error
	FormatExample(ctx *fiber.Ctx) error
}

type qrController struct {
	qrService service.IQRService
}

func NewQRController(qrService service.IQRService) IQRController {
	return &qrController{
		qrService: qrService,
	}
}

func (c *qrController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/qr/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("generate-json", c.GenerateJSON)
	h.Post("encrypt", c.EncryptData)
	h.Post("generate-image", c.GenerateImage)
	h.Post("create-complete", c.CreateComplete)
	h.Post("decrypt", c.DecryptData)
	h.Post("verify-format", c.VerifyFormat)
	h.Get("format-example", c.FormatExample)
}

func (c *qrController) GenerateJSON(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.qrService.GenerateJSON, "Success generate QR JSON")
}

func (c *qrController) EncryptData(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.qrService.EncryptData, "Success encrypt QR data")
}

func (c *qrController) GenerateImage(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.qrService.GenerateImage, "Success generate QR image")
}

func (c *qrController) CreateComplete(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.qrService.CreateComplete, "Success create QR code")
}

func (c *qrController) DecryptData(ctx *fiber.Ctx) error {
	return c.proxy(ctx, c.qrService.DecryptData, "Success decrypt QR data")
}

func (c *qrController) VerifyFormat(ctx *fiber.Ctx) error {
	var req dto.QRVerifyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.qrService.VerifyFormat(ctx.Context(), req.QRData)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success verify QR format", res))
}

func (c *qrController) FormatExample(ctx *fiber.Ctx) error {
	res, err := c.qrService.FormatExample(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get QR format example", res))
}

func (c *qrController) proxy(ctx *fiber.Ctx, call func(context.Context, map[string]any) (map[string]any, error), message string) error {
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
