package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/pgdesk/internal/client/models"
)

const (
	EndpointSendOTP       = "/auth/send-otp"
	EndpointLogin         = "/auth/login"
	EndpointRegisterOwner = "/auth/property-owner/register"
)

// AuthClient implements Client over an HTTPClient.
type AuthClient struct {
	http *HTTPClient
}

func NewAuthClient(h *HTTPClient) *AuthClient {
	return &AuthClient{http: h}
}

type sendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

func (c *AuthClient) SendOTP(ctx context.Context, phoneNumber string) (models.Envelope, error) {
	v, err := c.http.Do(ctx, http.MethodPost, EndpointSendOTP, sendOTPRequest{PhoneNumber: phoneNumber}, nil)
	if err != nil {
		return models.Envelope{}, err
	}
	return models.EnvelopeFrom(v), nil
}

func (c *AuthClient) Login(ctx context.Context, phoneNumber, otp string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.http.DoInto(ctx, http.MethodPost, EndpointLogin, loginRequest{PhoneNumber: phoneNumber, OTP: otp}, nil, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: login response has no access_token", ErrBadResponse)
	}
	return &resp, nil
}

func (c *AuthClient) RegisterPropertyOwner(ctx context.Context, req models.RegisterRequest) (models.Envelope, error) {
	v, err := c.http.Do(ctx, http.MethodPost, EndpointRegisterOwner, req, nil)
	if err != nil {
		return models.Envelope{}, err
	}
	return models.EnvelopeFrom(v), nil
}
