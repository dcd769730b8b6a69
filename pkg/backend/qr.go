package backend

import "context"

// QRAPI covers the /qr endpoint group. The QR payload format is owned by the
// backend; the portal never decodes it locally.
type QRAPI struct {
	c *Client
}

func (a *QRAPI) GenerateJSON(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/qr/generate-qr-json", data)
}

func (a *QRAPI) EncryptData(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/qr/encrypt-qr-data", data)
}

func (a *QRAPI) GenerateImage(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/qr/generate-qr-image", data)
}

func (a *QRAPI) CreateComplete(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/qr/create-complete-qr", data)
}

func (a *QRAPI) DecryptData(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/qr/decrypt-qr-data", data)
}

// VerifyFormat checks a raw QR payload against the backend's expected format.
// Response: {status:"valid"|"invalid", qr_data:{...}, medicine_details:{...}}.
func (a *QRAPI) VerifyFormat(ctx context.Context, qrData string) (map[string]any, error) {
	return a.post(ctx, "/qr/verify-qr-format", map[string]any{"qr_data": qrData})
}

func (a *QRAPI) FormatExample(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/qr/qr-format-example", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *QRAPI) post(ctx context.Context, path string, data map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := a.c.postJSON(ctx, path, data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
