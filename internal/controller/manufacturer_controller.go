package controller

import (
	"io"

	"pharmachain-portal/internal/dto"
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IManufacturerController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	RegisterBatch(ctx *fiber.Ctx) error
	ListBatches(ctx *fiber.Ctx) error
	RegenerateQR(ctx *fiber.Ctx) error
	EncryptionKey(ctx *fiber.Ctx) error
}

type manufacturerController struct {
	batchService service.IBatchService
}

func NewManufacturerController(batchService service.IBatchService) IManufacturerController {
	return &manufacturerController{
		batchService: batchService,
	}
}

func (c *manufacturerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/manufacturer/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("encryption-key", c.EncryptionKey)
	h.Post("batches", c.RegisterBatch)
	h.Get("batches", c.ListBatches)
	h.Post("batches/:medicineId/qr-regenerate", c.RegenerateQR)
	h.Get(":id", c.Show)
}

func (c *manufacturerController) Create(ctx *fiber.Ctx) error {
	var data map[string]any
	if err := ctx.BodyParser(&data); err != nil {
		return err
	}

	res, err := c.batchService.CreateManufacturer(ctx.Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Manufacturer created", res))
}

func (c *manufacturerController) Show(ctx *fiber.Ctx) error {
	res, err := c.batchService.Manufacturer(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get manufacturer", res))
}

func (c *manufacturerController) EncryptionKey(ctx *fiber.Ctx) error {
	res, err := c.batchService.EncryptionKey(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get encryption key", res))
}

func (c *manufacturerController) RegisterBatch(ctx *fiber.Ctx) error {
	var req dto.RegisterBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	image, err := formImage(ctx, "image")
	if err != nil {
		return err
	}

	res, err := c.batchService.Register(ctx.Context(), &req, image)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Batch registered", res))
}

func (c *manufacturerController) ListBatches(ctx *fiber.Ctx) error {
	manufacturerID, _ := ctx.Locals("manufacturer_id").(string)
	if q := ctx.Query("manufacturer_id"); q != "" {
		manufacturerID = q
	}

	res, err := c.batchService.List(ctx.Context(), manufacturerID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get batches", res))
}

func (c *manufacturerController) RegenerateQR(ctx *fiber.Ctx) error {
	res, err := c.batchService.RegenerateQR(ctx.Context(), ctx.Params("medicineId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("QR code regenerated", res))
}

// formImage reads a multipart file field into an upload. A missing file is
// not an error here; the service decides whether the image is required.
func formImage(ctx *fiber.Ctx, field string) (*service.ImageUpload, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Could not read the uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Could not read the uploaded image")
	}

	return &service.ImageUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}, nil
}
