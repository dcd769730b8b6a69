package controller

import (
	"io"

	"pharmachain-portal/internal/dto"
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/internal/service"
	"pharmachain-portal/pkg/scan"

	"github.com/gofiber/fiber/v2"
)

// IPharmacyController exposes the scan-and-verify workflow: a session is
// started, artifacts attach in any order, and submission resolves it.
type IPharmacyController interface {
	RegisterRoutes(r fiber.Router)
	StartScan(ctx *fiber.Ctx) error
	GetScan(ctx *fiber.Ctx) error
	AttachQR(ctx *fiber.Ctx) error
	AttachImage(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	DetailedVerify(ctx *fiber.Ctx) error
	Retry(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	NotifyRegulator(ctx *fiber.Ctx) error
}

type pharmacyController struct {
	verificationService service.IVerificationService
}

func NewPharmacyController(verificationService service.IVerificationService) IPharmacyController {
	return &pharmacyController{
		verificationService: verificationService,
	}
}

func (c *pharmacyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/pharmacy/v1")
	h.Post("scans", c.StartScan)
	h.Get("scans/:id", c.GetScan)
	h.Put("scans/:id/qr", c.AttachQR)
	h.Put("scans/:id/image", c.AttachImage)
	h.Post("scans/:id/submit", c.Submit)
	h.Post("scans/:id/detailed-verify", c.DetailedVerify)
	h.Post("scans/:id/retry", c.Retry)
	h.Post("scans/:id/reset", c.Reset)
	h.Post("scans/:id/notify-regulator", c.NotifyRegulator)
}

func (c *pharmacyController) StartScan(ctx *fiber.Ctx) error {
	res, err := c.verificationService.Start(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Scan session started", res))
}

func (c *pharmacyController) GetScan(ctx *fiber.Ctx) error {
	res, err := c.verificationService.Get(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get scan session", res))
}

func (c *pharmacyController) AttachQR(ctx *fiber.Ctx) error {
	var req dto.AttachQRRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.verificationService.AttachQR(ctx.Context(), ctx.Params("id"), req.QRData)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("QR code captured", res))
}

func (c *pharmacyController) AttachImage(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("scanned_image")
	if err != nil {
		return serverutils.NewValidationError(map[string]string{
			"scanned_image": "Please capture or upload medicine package image",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not read the uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not read the uploaded image")
	}

	artifact := scan.ImageArtifact{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}

	res, err := c.verificationService.AttachImage(ctx.Context(), ctx.Params("id"), artifact)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Package image captured", res))
}

func (c *pharmacyController) Submit(ctx *fiber.Ctx) error {
	res, err := c.verificationService.Submit(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Verification complete", res))
}

func (c *pharmacyController) DetailedVerify(ctx *fiber.Ctx) error {
	res, err := c.verificationService.DetailedVerify(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Detailed verification complete", res))
}

func (c *pharmacyController) Retry(ctx *fiber.Ctx) error {
	res, err := c.verificationService.Retry(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session ready to submit", res))
}

func (c *pharmacyController) Reset(ctx *fiber.Ctx) error {
	res, err := c.verificationService.Reset(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Scan session reset", res))
}

func (c *pharmacyController) NotifyRegulator(ctx *fiber.Ctx) error {
	// The reason is optional; so is the body.
	var req dto.NotifyRegulatorRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	if err := c.verificationService.NotifyRegulator(ctx.Context(), ctx.Params("id"), req.Reason); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Regulator notified", nil))
}
