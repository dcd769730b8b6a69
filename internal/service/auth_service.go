package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pharmachain-portal/internal/dto"
	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/internal/repository/memory"
	"pharmachain-portal/pkg/backend"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(manufacturerID string)
	Identity(manufacturerID string) (*dto.IdentityResponse, bool)
}

type authService struct {
	identities *memory.IdentityRepository
	client     *backend.Client
	jwtSecret  string
	logger     logger.ILogger
}

func NewAuthService(identities *memory.IdentityRepository, client *backend.Client, jwtSecret string, log logger.ILogger) IAuthService {
	return &authService{
		identities: identities,
		client:     client,
		jwtSecret:  jwtSecret,
		logger:     log,
	}
}

// Login asserts a manufacturer identity, caches it server-side and issues the
// portal token. The backend lookup enriches the identity when the
// manufacturer is registered there, but an unreachable backend does not block
// login; registration is checked again at batch submission anyway.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	manufacturerID := req.ManufacturerID
	if manufacturerID == "" {
		if data, err := s.client.Manufacturer.GetByName(ctx, req.Manufacturer); err == nil {
			if id, ok := data["id"].(string); ok {
				manufacturerID = id
			}
		} else {
			s.logger.Warn("Auth", "Manufacturer lookup failed during login", map[string]interface{}{
				"manufacturer": req.Manufacturer,
				"error":        err.Error(),
			})
		}
	}
	if manufacturerID == "" {
		manufacturerID = uuid.NewString()
	}

	s.identities.Save(&memory.Identity{
		ManufacturerID: manufacturerID,
		Manufacturer:   req.Manufacturer,
		LoggedInAt:     time.Now().UTC(),
	})

	claims := jwt.MapClaims{
		"manufacturer":    req.Manufacturer,
		"manufacturer_id": manufacturerID,
		"exp":             time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Auth", "Manufacturer logged in", map[string]interface{}{"manufacturer": req.Manufacturer})

	return &dto.LoginResponse{
		Token:          signed,
		Manufacturer:   req.Manufacturer,
		ManufacturerID: manufacturerID,
	}, nil
}

// Logout evicts the cached identity. The token simply expires; there is no
// denylist.
func (s *authService) Logout(manufacturerID string) {
	s.identities.Delete(manufacturerID)
	s.logger.Info("Auth", "Manufacturer logged out", map[string]interface{}{"manufacturer_id": manufacturerID})
}

func (s *authService) Identity(manufacturerID string) (*dto.IdentityResponse, bool) {
	identity, found := s.identities.Get(manufacturerID)
	if !found {
		return nil, false
	}
	return &dto.IdentityResponse{
		Manufacturer:   identity.Manufacturer,
		ManufacturerID: identity.ManufacturerID,
	}, true
}
