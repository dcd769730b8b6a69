package service

import (
	"context"

	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/pkg/backend"
	"pharmachain-portal/pkg/validate"
)

// IMedicineService proxies the medicine catalog endpoints. The backend owns
// the records; the portal only adds local image validation on upload.
type IMedicineService interface {
	List(ctx context.Context) (map[string]any, error)
	Get(ctx context.Context, id string) (map[string]any, error)
	Create(ctx context.Context, data map[string]any) (map[string]any, error)
	CreateWithImage(ctx context.Context, fields map[string]string, image *ImageUpload) (map[string]any, error)
	Update(ctx context.Context, id string, data map[string]any) (map[string]any, error)
	Delete(ctx context.Context, id string) error
	Verify(ctx context.Context, id string) (map[string]any, error)
	Scans(ctx context.Context) (map[string]any, error)
	ScanDetails(ctx context.Context, scanID string) (map[string]any, error)
}

type medicineService struct {
	client *backend.Client
}

func NewMedicineService(client *backend.Client) IMedicineService {
	return &medicineService{client: client}
}

func (s *medicineService) List(ctx context.Context) (map[string]any, error) {
	return s.client.Medicine.List(ctx)
}

func (s *medicineService) Get(ctx context.Context, id string) (map[string]any, error) {
	return s.client.Medicine.Get(ctx, id)
}

func (s *medicineService) Create(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.Medicine.Create(ctx, data)
}

func (s *medicineService) CreateWithImage(ctx context.Context, fields map[string]string, image *ImageUpload) (map[string]any, error) {
	if image == nil {
		return nil, serverutils.NewValidationError(map[string]string{"image": "Image is required"})
	}
	if res := validate.CheckImage(image.Size, image.ContentType); !res.IsValid {
		return nil, serverutils.NewValidationError(map[string]string{"image": res.Message})
	}
	return s.client.Medicine.CreateWithImage(ctx, fields, image.upload())
}

func (s *medicineService) Update(ctx context.Context, id string, data map[string]any) (map[string]any, error) {
	return s.client.Medicine.Update(ctx, id, data)
}

func (s *medicineService) Delete(ctx context.Context, id string) error {
	return s.client.Medicine.Delete(ctx, id)
}

func (s *medicineService) Verify(ctx context.Context, id string) (map[string]any, error) {
	return s.client.Medicine.Verify(ctx, id)
}

func (s *medicineService) Scans(ctx context.Context) (map[string]any, error) {
	return s.client.Medicine.Scans(ctx)
}

func (s *medicineService) ScanDetails(ctx context.Context, scanID string) (map[string]any, error) {
	return s.client.Medicine.ScanDetails(ctx, scanID)
}
