package controller

import (
	"pharmachain-portal/internal/dto"
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{
		authService: authService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("login", c.Login)
	h.Post("logout", serverutils.JwtMiddleware, c.Logout)
	h.Get("me", serverutils.JwtMiddleware, c.Me)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	manufacturerID, _ := ctx.Locals("manufacturer_id").(string)
	c.authService.Logout(manufacturerID)
	return ctx.JSON(serverutils.SuccessResponse[any]("Logout successful", nil))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	manufacturerID, _ := ctx.Locals("manufacturer_id").(string)
	identity, found := c.authService.Identity(manufacturerID)
	if !found {
		return fiber.NewError(fiber.StatusUnauthorized, "Session expired, please log in again")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get identity", identity))
}
