package dto

type LoginRequest struct {
	Manufacturer   string `json:"manufacturer" validate:"required"`
	ManufacturerID string `json:"manufacturer_id"`
}

type LoginResponse struct {
	Token          string `json:"token"`
	Manufacturer   string `json:"manufacturer"`
	ManufacturerID string `json:"manufacturer_id"`
}

type IdentityResponse struct {
	Manufacturer   string `json:"manufacturer"`
	ManufacturerID string `json:"manufacturer_id"`
}
