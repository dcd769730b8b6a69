package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

func validForm() BatchForm {
	return BatchForm{
		MedicineName: "Paracetamol 500mg",
		Manufacturer: "Acme Pharma",
		BatchNumber:  "BATCH-2026-001",
		ExpiryDate:   now.AddDate(2, 0, 0),
		Ingredients:  "Paracetamol, starch",
		Usage:        "Pain relief",
		Storage:      "Below 25C",
		Quantity:     10000,
	}
}

func TestCheckBatchFormValid(t *testing.T) {
	res := CheckBatchForm(validForm(), now)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestCheckBatchFormMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*BatchForm)
		wantField string
	}{
		{"missing medicine name", func(f *BatchForm) { f.MedicineName = "" }, "medicine_name"},
		{"whitespace medicine name", func(f *BatchForm) { f.MedicineName = "   " }, "medicine_name"},
		{"missing manufacturer", func(f *BatchForm) { f.Manufacturer = "" }, "manufacturer"},
		{"missing batch number", func(f *BatchForm) { f.BatchNumber = "\t" }, "batch_number"},
		{"missing expiry", func(f *BatchForm) { f.ExpiryDate = time.Time{} }, "expiry_date"},
		{"missing ingredients", func(f *BatchForm) { f.Ingredients = "" }, "ingredients"},
		{"zero quantity", func(f *BatchForm) { f.Quantity = 0 }, "quantity_manufactured"},
		{"negative quantity", func(f *BatchForm) { f.Quantity = -5 }, "quantity_manufactured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			res := CheckBatchForm(form, now)
			assert.False(t, res.IsValid)
			require.Contains(t, res.Errors, tt.wantField)
			assert.NotEmpty(t, res.Errors[tt.wantField])
		})
	}
}

func TestCheckBatchFormExpiryMustBeStrictlyFuture(t *testing.T) {
	form := validForm()

	form.ExpiryDate = now.AddDate(0, 0, -1)
	res := CheckBatchForm(form, now)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "expiry_date")

	// Exactly "now" is not in the future.
	form.ExpiryDate = now
	res = CheckBatchForm(form, now)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "expiry_date")

	form.ExpiryDate = now.Add(time.Second)
	res = CheckBatchForm(form, now)
	assert.True(t, res.IsValid)
}

func TestCheckImage(t *testing.T) {
	tests := []struct {
		name        string
		size        int64
		contentType string
		wantValid   bool
		wantErr     ImageError
	}{
		{"valid jpeg", 200 * 1024, "image/jpeg", true, ""},
		{"valid png", 1024, "image/png", true, ""},
		{"jpg alias", 1024, "image/jpg", true, ""},
		{"uppercase type", 1024, "IMAGE/PNG", true, ""},
		{"missing", 0, "image/jpeg", false, ImageErrMissing},
		{"too large even if jpeg", MaxImageSize + 1, "image/jpeg", false, ImageErrTooLarge},
		{"too large even if unsupported type", MaxImageSize + 1, "application/pdf", false, ImageErrTooLarge},
		{"unsupported type even if small", 1024, "image/gif", false, ImageErrUnsupportedType},
		{"unsupported type pdf", 1024, "application/pdf", false, ImageErrUnsupportedType},
		{"exactly at limit", MaxImageSize, "image/png", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckImage(tt.size, tt.contentType)
			assert.Equal(t, tt.wantValid, res.IsValid)
			assert.Equal(t, tt.wantErr, res.Error)
		})
	}
}
