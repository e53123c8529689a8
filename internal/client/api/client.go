package api

import (
	"context"

	"github.com/dmitrijs2005/pgdesk/internal/client/models"
)

// Client is the backend contract the session service depends on.
type Client interface {
	SendOTP(ctx context.Context, phoneNumber string) (models.Envelope, error)
	Login(ctx context.Context, phoneNumber, otp string) (*models.LoginResponse, error)
	RegisterPropertyOwner(ctx context.Context, req models.RegisterRequest) (models.Envelope, error)
}
