package backend

import (
	"context"
	"net/url"
)

// MedicineAPI covers the /medicine endpoint group. Payloads here are
// backend-defined; the portal passes them through untyped.
type MedicineAPI struct {
	c *Client
}

func (a *MedicineAPI) List(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/medicine/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *MedicineAPI) Get(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/medicine/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *MedicineAPI) Create(ctx context.Context, data map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := a.c.postJSON(ctx, "/medicine/", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWithImage registers a medicine together with its reference image.
func (a *MedicineAPI) CreateWithImage(ctx context.Context, fields map[string]string, image *Upload) (map[string]any, error) {
	if image != nil && image.FieldName == "" {
		image.FieldName = "image"
	}
	var out map[string]any
	if err := a.c.postMultipart(ctx, "/medicine/create", fields, image, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *MedicineAPI) Update(ctx context.Context, id string, data map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := a.c.putJSON(ctx, "/medicine/"+url.PathEscape(id), data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *MedicineAPI) Delete(ctx context.Context, id string) error {
	return a.c.deleteJSON(ctx, "/medicine/"+url.PathEscape(id), nil)
}

// Verify runs a by-id verification without a scan artifact.
func (a *MedicineAPI) Verify(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/medicine/"+url.PathEscape(id)+"/verify", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Scans lists recorded scan events.
func (a *MedicineAPI) Scans(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/medicine/scans", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ScanDetails fetches one recorded scan event.
func (a *MedicineAPI) ScanDetails(ctx context.Context, scanID string) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/medicine/scans/"+url.PathEscape(scanID), &out); err != nil {
		return nil, err
	}
	return out, nil
}
