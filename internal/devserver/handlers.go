package devserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Error codes sent alongside the message in error bodies.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUserNotFound   = "USER_NOT_FOUND"
	CodeRateLimited    = "RATE_LIMITED"
	CodeInvalidOTP     = "INVALID_OTP"
	CodePhoneTaken     = "PHONE_TAKEN"
	CodeInternal       = "INTERNAL"
)

type sendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
}

type registerRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Name          string `json:"name" binding:"required"`
	PhoneNumber   string `json:"phoneNumber" binding:"required"`
	OwnershipType string `json:"ownershipType" binding:"required,oneof=OWNED LEASED"`
}

type loginResponse struct {
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message, "code": code})
}

func (s *Server) sendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	if _, err := s.owners.Get(req.PhoneNumber); err != nil {
		respondError(c, http.StatusNotFound, CodeUserNotFound, "User not found")
		return
	}

	if ok, retry := s.limiter.Allow(req.PhoneNumber); !ok {
		c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
		respondError(c, http.StatusTooManyRequests, CodeRateLimited, "Too many OTP requests")
		return
	}

	code, err := s.otps.Issue(req.PhoneNumber)
	if err != nil {
		s.log.Error(c.Request.Context(), "issue otp", "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternal, "Could not send OTP")
		return
	}
	s.log.Info(c.Request.Context(), "otp issued", "phone", req.PhoneNumber, "code", code)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent"})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	if !s.otps.Verify(req.PhoneNumber, req.OTP) {
		respondError(c, http.StatusUnauthorized, CodeInvalidOTP, "invalid otp")
		return
	}

	owner, err := s.owners.Get(req.PhoneNumber)
	if err != nil {
		respondError(c, http.StatusNotFound, CodeUserNotFound, "User not found")
		return
	}

	token, err := s.tokens.GenerateAccessToken(owner.PhoneNumber, owner.Email, owner.Role)
	if err != nil {
		s.log.Error(c.Request.Context(), "sign token", "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternal, "Could not log in")
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		UserName:    owner.Name,
		Email:       owner.Email,
		Role:        owner.Role,
		AccessToken: token,
	})
}

func (s *Server) registerOwner(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	err := s.owners.Register(Owner{
		Name:          req.Name,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		OwnershipType: req.OwnershipType,
	}, req.Password)
	switch {
	case errors.Is(err, ErrPhoneTaken):
		respondError(c, http.StatusConflict, CodePhoneTaken, "Phone number already registered")
		return
	case err != nil:
		s.log.Error(c.Request.Context(), "register owner", "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternal, "Could not register")
		return
	}

	s.log.Info(c.Request.Context(), "owner registered", "phone", req.PhoneNumber)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registration successful"})
}
