package controller

import (
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMedicineController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	CreateWithImage(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Verify(ctx *fiber.Ctx) error
	Scans(ctx *fiber.Ctx) error
	ScanDetails(ctx *fiber.Ctx) error
}

type medicineController struct {
	medicineService service.IMedicineService
}

func NewMedicineController(medicineService service.IMedicineService) IMedicineController {
	return &medicineController{
		medicineService: medicineService,
	}
}

func (c *medicineController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/medicine/v1")
	h.Get("scans", c.Scans)
	h.Get("scans/:scanId", c.ScanDetails)
	h.Get("", c.List)
	h.Post("", serverutils.JwtMiddleware, c.Create)
	h.Post("with-image", serverutils.JwtMiddleware, c.CreateWithImage)
	h.Get(":id", c.Show)
	h.Put(":id", serverutils.JwtMiddleware, c.Update)
	h.Delete(":id", serverutils.JwtMiddleware, c.Delete)
	h.Get(":id/verify", c.Verify)
}

func (c *medicineController) List(ctx *fiber.Ctx) error {
	res, err := c.medicineService.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get medicines", res))
}

func (c *medicineController) Show(ctx *fiber.Ctx) error {
	res, err := c.medicineService.Get(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get medicine", res))
}

func (c *medicineController) Create(ctx *fiber.Ctx) error {
	var data map[string]any
	if err := ctx.BodyParser(&data); err != nil {
		return err
	}

	res, err := c.medicineService.Create(ctx.Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Medicine created", res))
}

func (c *medicineController) CreateWithImage(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Expected a multipart form")
	}

	fields := make(map[string]string, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	image, err := formImage(ctx, "image")
	if err != nil {
		return err
	}

	res, err := c.medicineService.CreateWithImage(ctx.Context(), fields, image)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Medicine created", res))
}

func (c *medicineController) Update(ctx *fiber.Ctx) error {
	var data map[string]any
	if err := ctx.BodyParser(&data); err != nil {
		return err
	}

	res, err := c.medicineService.Update(ctx.Context(), ctx.Params("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Medicine updated", res))
}

func (c *medicineController) Delete(ctx *fiber.Ctx) error {
	if err := c.medicineService.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Medicine deleted", nil))
}

func (c *medicineController) Verify(ctx *fiber.Ctx) error {
	res, err := c.medicineService.Verify(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success verify medicine", res))
}

func (c *medicineController) Scans(ctx *fiber.Ctx) error {
	res, err := c.medicineService.Scans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get scans", res))
}

func (c *medicineController) ScanDetails(ctx *fiber.Ctx) error {
	res, err := c.medicineService.ScanDetails(ctx.Context(), ctx.Params("scanId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get scan details", res))
}
