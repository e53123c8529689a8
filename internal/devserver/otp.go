package devserver

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MaxOTPAttempts wrong codes invalidate a pending code.
const MaxOTPAttempts = 5

type otpEntry struct {
	hash      []byte
	expiresAt time.Time
	failures  int
}

// OTPStore keeps one pending code per phone number. Only bcrypt hashes are
// stored; a code is consumed by the first successful Verify and dropped
// after MaxOTPAttempts failed ones.
type OTPStore struct {
	mu          sync.Mutex
	ttl         time.Duration
	fixedCode   string
	maxAttempts int
	pending     map[string]*otpEntry
	now         func() time.Time
}

func NewOTPStore(ttl time.Duration, fixedCode string) *OTPStore {
	return &OTPStore{
		ttl:         ttl,
		fixedCode:   fixedCode,
		maxAttempts: MaxOTPAttempts,
		pending:     make(map[string]*otpEntry),
		now:         time.Now,
	}
}

// Issue creates a fresh code for phone, replacing any pending one.
func (s *OTPStore) Issue(phone string) (string, error) {
	code := s.fixedCode
	if code == "" {
		n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		code = fmt.Sprintf("%06d", n.Int64())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[phone] = &otpEntry{hash: hash, expiresAt: s.now().Add(s.ttl)}
	return code, nil
}

func (s *OTPStore) Verify(phone, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pending[phone]
	if !ok {
		return false
	}
	if s.now().After(e.expiresAt) {
		delete(s.pending, phone)
		return false
	}
	if bcrypt.CompareHashAndPassword(e.hash, []byte(code)) != nil {
		e.failures++
		if e.failures >= s.maxAttempts {
			delete(s.pending, phone)
		}
		return false
	}
	delete(s.pending, phone)
	return true
}
