package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/pgdesk/internal/client/api"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout error", &api.TimeoutError{}, MsgNetwork},
		{"unknown error", &api.UnknownError{Err: errors.New("connection refused")}, MsgNetwork},
		{"http 404", &api.HTTPError{Status: 404, Message: "no such phone"}, MsgUserNotFound},
		{"code user not found", &api.HTTPError{Status: 400, Message: "bad", Code: CodeUserNotFound}, MsgUserNotFound},
		{"http 429", &api.HTTPError{Status: 429, Message: "wait"}, MsgRateLimited},
		{"code rate limited", &api.HTTPError{Status: 400, Message: "wait", Code: CodeRateLimited}, MsgRateLimited},
		{"http 401 passes through", &api.HTTPError{Status: 401, Message: "invalid otp"}, "invalid otp"},
		{"http 500 mentioning 404", &api.HTTPError{Status: 500, Message: "upstream said 404"}, MsgUserNotFound},
		{"substring timeout", errors.New("socket timeout"), MsgNetwork},
		{"substring Network", errors.New("Network request failed"), MsgNetwork},
		{"substring 404", errors.New("HTTP 404: Not Found"), MsgUserNotFound},
		{"substring 429", errors.New("status 429"), MsgRateLimited},
		{"raw message", errors.New("phone blocked"), "phone blocked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categorize(tt.err))
		})
	}
}

func TestOpError(t *testing.T) {
	cause := &api.TimeoutError{}
	err := error(&OpError{Op: "send otp", Message: MsgNetwork, Err: cause})

	assert.Equal(t, MsgNetwork, err.Error())
	assert.ErrorIs(t, err, api.ErrTimeout)

	var te *api.TimeoutError
	assert.ErrorAs(t, err, &te)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "initializing", StateInitializing.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "awaiting-otp", StateAwaitingOTP.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "unknown", State(42).String())
}
