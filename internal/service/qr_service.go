package service

import (
	"context"

	"pharmachain-portal/pkg/backend"
)

// IQRService proxies the standalone QR tooling endpoints used by the
// manufacturer portal's QR utilities page.
type IQRService interface {
	GenerateJSON(ctx context.Context, data map[string]any) (map[string]any, error)
	EncryptData(ctx context.Context, data map[string]any) (map[string]any, error)
	GenerateImage(ctx context.Context, data map[string]any) (map[string]any, error)
	CreateComplete(ctx context.Context, data map[string]any) (map[string]any, error)
	DecryptData(ctx context.Context, data map[string]any) (map[string]any, error)
	VerifyFormat(ctx context.Context, qrData string) (map[string]any, error)
	FormatExample(ctx context.Context) (map[string]any, error)
}

type qrService struct {
	client *backend.Client
}

func NewQRService(client *backend.Client) IQRService {
	return &qrService{client: client}
}

func (s *qrService) GenerateJSON(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.QR.GenerateJSON(ctx, data)
}

func (s *qrService) EncryptData(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.QR.EncryptData(ctx, data)
}

func (s *qrService) GenerateImage(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.QR.GenerateImage(ctx, data)
}

func (s *qrService) CreateComplete(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.QR.CreateComplete(ctx, data)
}

func (s *qrService) DecryptData(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.QR.DecryptData(ctx, data)
}

func (s *qrService) VerifyFormat(ctx context.Context, qrData string) (map[string]any, error) {
	return s.client.QR.VerifyFormat(ctx, qrData)
}

func (s *qrService) FormatExample(ctx context.Context) (map[string]any, error) {
	return s.client.QR.FormatExample(ctx)
}
