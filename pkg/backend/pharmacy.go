package backend

import "context"

// PharmacyAPI covers the /pharmacy endpoint group.
type PharmacyAPI struct {
	c *Client
}

// VerifyMedicine submits a decoded QR payload and the scanned package image
// for verification and returns the backend's normalized judgment.
func (a *PharmacyAPI) VerifyMedicine(ctx context.Context, qrData string, image *Upload) (*VerificationOutcome, error) {
	if image != nil && image.FieldName == "" {
		image.FieldName = "scanned_image"
	}
	var raw verifyMedicineResponse
	err := a.c.postMultipart(ctx, "/pharmacy/verify-medicine", map[string]string{"qr_data": qrData}, image, &raw)
	if err != nil {
		return nil, err
	}
	out := raw.normalize()
	return &out, nil
}

// DetailedVerify runs the extended verification flow with the same inputs.
func (a *PharmacyAPI) DetailedVerify(ctx context.Context, qrData string, image *Upload) (map[string]any, error) {
	if image != nil && image.FieldName == "" {
		image.FieldName = "scanned_image"
	}
	var out map[string]any
	err := a.c.postMultipart(ctx, "/pharmacy/detailed-verify", map[string]string{"qr_data": qrData}, image, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Health pings the pharmacy route group.
func (a *PharmacyAPI) Health(ctx context.Context) error {
	return a.c.getJSON(ctx, "/pharmacy/test", nil)
}
