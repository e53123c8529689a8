package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/pgdesk/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testPhone = "9876543210"

func newTestServer(t *testing.T, mutate func(*Options)) *Server {
	t.Helper()
	opts := DefaultOptions()
	opts.FixedCode = "123456"
	if mutate != nil {
		mutate(&opts)
	}
	s := New(opts, logging.Nop(), nil)
	require.NoError(t, s.Owners().Register(Owner{
		Name:          "Gyana",
		Email:         "g@x.com",
		PhoneNumber:   testPhone,
		OwnershipType: "OWNED",
	}, "secret1"))
	return s
}

func do(t *testing.T, h http.Handler, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestSendOTP_KnownPhone(t *testing.T) {
	s := newTestServer(t, nil)

	w, out := do(t, s.Handler(), "/api/auth/send-otp", map[string]string{"phoneNumber": testPhone})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestSendOTP_UnknownPhone(t *testing.T) {
	s := newTestServer(t, nil)

	w, out := do(t, s.Handler(), "/api/auth/send-otp", map[string]string{"phoneNumber": "1111111111"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeUserNotFound, out["code"])
}

func TestSendOTP_MissingPhone(t *testing.T) {
	s := newTestServer(t, nil)

	w, out := do(t, s.Handler(), "/api/auth/send-otp", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeInvalidRequest, out["code"])
}

func TestSendOTP_RateLimited(t *testing.T) {
	s := newTestServer(t, func(o *Options) { o.SendLimit = 2 })
	body := map[string]string{"phoneNumber": testPhone}

	for i := 0; i < 2; i++ {
		w, _ := do(t, s.Handler(), "/api/auth/send-otp", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, out := do(t, s.Handler(), "/api/auth/send-otp", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, CodeRateLimited, out["code"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestLogin_Flow(t *testing.T) {
	s := newTestServer(t, nil)
	h := s.Handler()

	w, _ := do(t, h, "/api/auth/send-otp", map[string]string{"phoneNumber": testPhone})
	require.Equal(t, http.StatusOK, w.Code)

	w, out := do(t, h, "/api/auth/login", map[string]string{"phoneNumber": testPhone, "otp": "000000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid otp", out["message"])

	w, out = do(t, h, "/api/auth/login", map[string]string{"phoneNumber": testPhone, "otp": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gyana", out["userName"])
	assert.Equal(t, "g@x.com", out["email"])
	assert.Equal(t, RoleOwner, out["role"])

	tok, _ := out["access_token"].(string)
	claims, err := s.Tokens().Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, testPhone, claims.Subject)

	// codes are single use
	w, _ = do(t, h, "/api/auth/login", map[string]string{"phoneNumber": testPhone, "otp": "123456"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister(t *testing.T) {
	s := newTestServer(t, nil)
	h := s.Handler()
	body := map[string]string{
		"email":         "new@x.com",
		"password":      "secret1",
		"name":          "Asha",
		"phoneNumber":   "9000000001",
		"ownershipType": "LEASED",
	}

	w, out := do(t, h, "/api/auth/property-owner/register", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, out["success"])

	o, err := s.Owners().Get("9000000001")
	require.NoError(t, err)
	assert.Equal(t, "Asha", o.Name)
	assert.Equal(t, RoleOwner, o.Role)

	w, out = do(t, h, "/api/auth/property-owner/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, CodePhoneTaken, out["code"])
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t, nil)

	w, out := do(t, s.Handler(), "/api/auth/property-owner/register", map[string]string{
		"email":         "not-an-email",
		"password":      "x",
		"name":          "Asha",
		"phoneNumber":   "9000000001",
		"ownershipType": "RENTED",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeInvalidRequest, out["code"])
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := DefaultOptions()
	s := New(opts, logging.Nop(), reg)

	do(t, s.Handler(), "/api/auth/send-otp", map[string]string{"phoneNumber": testPhone})

	n, err := testutil.GatherAndCount(reg, "pgdesk_dev_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "pgdesk_dev_http_requests_total"))
}

func TestOTPStore(t *testing.T) {
	s := NewOTPStore(time.Minute, "")
	now := time.Now()
	s.now = func() time.Time { return now }

	code, err := s.Issue(testPhone)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	assert.False(t, s.Verify("other", code))
	assert.False(t, s.Verify(testPhone, "not-it"))
	assert.True(t, s.Verify(testPhone, code))
	assert.False(t, s.Verify(testPhone, code))
}

func TestOTPStore_Expiry(t *testing.T) {
	s := NewOTPStore(time.Minute, "111111")
	now := time.Now()
	s.now = func() time.Time { return now }

	_, err := s.Issue(testPhone)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	assert.False(t, s.Verify(testPhone, "111111"))
}

func TestOTPStore_TooManyWrongCodes(t *testing.T) {
	s := NewOTPStore(time.Minute, "111111")

	_, err := s.Issue(testPhone)
	require.NoError(t, err)

	for i := 0; i < MaxOTPAttempts-1; i++ {
		assert.False(t, s.Verify(testPhone, "000000"))
	}
	assert.True(t, s.Verify(testPhone, "111111"), "code still valid below the limit")

	_, err = s.Issue(testPhone)
	require.NoError(t, err)
	for i := 0; i < MaxOTPAttempts; i++ {
		assert.False(t, s.Verify(testPhone, "000000"))
	}
	assert.False(t, s.Verify(testPhone, "111111"), "code is burned after the limit")

	_, err = s.Issue(testPhone)
	require.NoError(t, err)
	assert.True(t, s.Verify(testPhone, "111111"), "a new code resets the counter")
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Now()
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("a")
	assert.True(t, ok)
	ok, _ = rl.Allow("a")
	assert.True(t, ok)
	ok, retry := rl.Allow("a")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	ok, _ = rl.Allow("b")
	assert.True(t, ok)

	now = now.Add(time.Minute + time.Second)
	ok, _ = rl.Allow("a")
	assert.True(t, ok)
}

func TestTokenManager_RejectsExpiredAndForeign(t *testing.T) {
	m := NewTokenManager("s1", time.Minute)
	tok, err := m.GenerateAccessToken(testPhone, "g@x.com", RoleOwner)
	require.NoError(t, err)

	_, err = NewTokenManager("s2", time.Minute).Verify(tok)
	assert.Error(t, err)

	m.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = m.Verify(tok)
	assert.Error(t, err)
}
