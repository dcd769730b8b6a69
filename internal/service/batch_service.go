package service

import (
	"bytes"
	"context"
	"time"

	"pharmachain-portal/internal/dto"
	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/pkg/backend"
	"pharmachain-portal/pkg/events"
	"pharmachain-portal/pkg/format"
	portalnats "pharmachain-portal/pkg/nats"
	"pharmachain-portal/pkg/validate"
)

type IBatchService interface {
	Register(ctx context.Context, req *dto.RegisterBatchRequest, image *ImageUpload) (*dto.RegisterBatchResponse, error)
	List(ctx context.Context, manufacturerID string) (*dto.BatchListResponse, error)
	RegenerateQR(ctx context.Context, medicineID string) (*dto.RegenerateQRResponse, error)
	CreateManufacturer(ctx context.Context, data map[string]any) (map[string]any, error)
	Manufacturer(ctx context.Context, id string) (map[string]any, error)
	EncryptionKey(ctx context.Context) (map[string]any, error)
}

// ImageUpload is an uploaded file with the metadata the validators need.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

type batchService struct {
	client    *backend.Client
	publisher *portalnats.Publisher
	logger    logger.ILogger
}

func NewBatchService(client *backend.Client, publisher *portalnats.Publisher, log logger.ILogger) IBatchService {
	return &batchService{
		client:    client,
		publisher: publisher,
		logger:    log,
	}
}

// Register validates the batch form and package image locally, then submits
// both to the backend for blockchain registration and QR issuance.
func (s *batchService) Register(ctx context.Context, req *dto.RegisterBatchRequest, image *ImageUpload) (*dto.RegisterBatchResponse, error) {
	form := validate.BatchForm{
		MedicineName: req.MedicineName,
		Manufacturer: req.Manufacturer,
		BatchNumber:  req.BatchNumber,
		Ingredients:  req.Ingredients,
		Usage:        req.Usage,
		Storage:      req.Storage,
		Quantity:     req.Quantity,
	}
	if req.ExpiryDate != "" {
		if expiry, err := time.Parse("2006-01-02", req.ExpiryDate); err == nil {
			form.ExpiryDate = expiry
		}
	}

	result := validate.CheckBatchForm(form, time.Now())
	if !result.IsValid {
		return nil, serverutils.NewValidationError(result.Errors)
	}

	if image == nil {
		return nil, serverutils.NewValidationError(map[string]string{"image": "Image is required"})
	}
	if res := validate.CheckImage(image.Size, image.ContentType); !res.IsValid {
		return nil, serverutils.NewValidationError(map[string]string{"image": res.Message})
	}

	reg, err := s.client.Manufacturer.RegisterBatch(ctx, backend.RegisterBatchRequest{
		MedicineName: req.MedicineName,
		Manufacturer: req.Manufacturer,
		BatchNumber:  req.BatchNumber,
		ExpiryDate:   req.ExpiryDate,
		Ingredients:  req.Ingredients,
		Usage:        req.Usage,
		Storage:      req.Storage,
		Quantity:     req.Quantity,
		Image:        image.upload(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Batch", "Batch registered", map[string]interface{}{
		"medicine_name": req.MedicineName,
		"batch_number":  req.BatchNumber,
	})
	s.audit(ctx, events.BatchRegistered(req.MedicineName, req.BatchNumber, reg.BlockchainHash))

	return &dto.RegisterBatchResponse{
		Status:         reg.Status,
		BlockchainHash: reg.BlockchainHash,
		HashDisplay:    format.TruncateHash(reg.BlockchainHash, 10),
		QRCodeBase64:   reg.QRCodeBase64,
	}, nil
}

func (s *batchService) List(ctx context.Context, manufacturerID string) (*dto.BatchListResponse, error) {
	batches, err := s.client.Manufacturer.Batches(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.BatchView, 0, len(batches))
	for _, b := range batches {
		views = append(views, dto.BatchView{
			MedicineID:     b.MedicineID,
			MedicineName:   b.MedicineName,
			Manufacturer:   b.Manufacturer,
			BatchNumber:    b.BatchNumber,
			ExpiryDate:     b.ExpiryDate,
			Quantity:       b.Quantity,
			BlockchainHash: b.BlockchainHash,
			HashDisplay:    format.TruncateHash(b.BlockchainHash, 10),
			QRCodeBase64:   b.QRCodeBase64,
		})
	}
	return &dto.BatchListResponse{Batches: views, Total: len(views)}, nil
}

func (s *batchService) RegenerateQR(ctx context.Context, medicineID string) (*dto.RegenerateQRResponse, error) {
	qr, err := s.client.Manufacturer.RegenerateQR(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	return &dto.RegenerateQRResponse{QRCodeBase64: qr}, nil
}

func (s *batchService) CreateManufacturer(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.Manufacturer.Create(ctx, data)
}

func (s *batchService) Manufacturer(ctx context.Context, id string) (map[string]any, error) {
	return s.client.Manufacturer.GetByID(ctx, id)
}

func (s *batchService) EncryptionKey(ctx context.Context) (map[string]any, error) {
	return s.client.Manufacturer.EncryptionKey(ctx)
}

func (s *batchService) audit(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Batch", "Audit publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func (u *ImageUpload) upload() *backend.Upload {
	return &backend.Upload{
		FileName:    u.FileName,
		ContentType: u.ContentType,
		Reader:      bytes.NewReader(u.Data),
	}
}
