// Package validate holds the portal-side business validation rules that run
// before anything is sent to the verification backend. These are the checks
// the portal surfaces inline next to the offending field; request-shape
// validation (required JSON fields etc.) happens at the controller boundary.
package validate

import (
	"strings"
	"time"
)

// BatchForm is a manufacturer's pending batch registration as entered in the
// portal, prior to upstream submission.
type BatchForm struct {
	MedicineName string
	Manufacturer string
	BatchNumber  string
	ExpiryDate   time.Time
	Ingredients  string
	Usage        string
	Storage      string
	Quantity     int
}

// BatchFormResult is the outcome of validating a BatchForm. Errors is keyed
// by field name so the UI can render messages inline.
type BatchFormResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

// CheckBatchForm validates a batch registration form against the rules the
// portal enforces locally. The clock is passed in so the expiry check is
// deterministic under test.
func CheckBatchForm(form BatchForm, now time.Time) BatchFormResult {
	errors := map[string]string{}

	if strings.TrimSpace(form.MedicineName) == "" {
		errors["medicine_name"] = "Medicine name is required"
	}
	if strings.TrimSpace(form.Manufacturer) == "" {
		errors["manufacturer"] = "Manufacturer is required"
	}
	if strings.TrimSpace(form.BatchNumber) == "" {
		errors["batch_number"] = "Batch number is required"
	}
	if form.ExpiryDate.IsZero() {
		errors["expiry_date"] = "Expiry date is required"
	} else if !form.ExpiryDate.After(now) {
		errors["expiry_date"] = "Expiry date must be in the future"
	}
	if strings.TrimSpace(form.Ingredients) == "" {
		errors["ingredients"] = "Ingredients are required"
	}
	if form.Quantity <= 0 {
		errors["quantity_manufactured"] = "Valid quantity is required"
	}

	return BatchFormResult{IsValid: len(errors) == 0, Errors: errors}
}

// ImageError identifies why an uploaded image was rejected.
type ImageError string

const (
	ImageErrMissing         ImageError = "missing_file"
	ImageErrTooLarge        ImageError = "too_large"
	ImageErrUnsupportedType ImageError = "unsupported_type"
)

// MaxImageSize is the upload ceiling for package images.
const MaxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ImageResult is the outcome of validating an uploaded package image.
type ImageResult struct {
	IsValid bool       `json:"is_valid"`
	Error   ImageError `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

// CheckImage validates an uploaded package image by size and content type.
// Size wins over type: an oversized file is rejected regardless of its MIME
// type, and vice versa.
func CheckImage(size int64, contentType string) ImageResult {
	if size <= 0 {
		return ImageResult{Error: ImageErrMissing, Message: "Image is required"}
	}
	if size > MaxImageSize {
		return ImageResult{Error: ImageErrTooLarge, Message: "Image size must be less than 5MB"}
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return ImageResult{Error: ImageErrUnsupportedType, Message: "Only JPEG and PNG images are allowed"}
	}
	return ImageResult{IsValid: true}
}
