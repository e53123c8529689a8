package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/pgdesk/internal/client/models"
)

type fakeClient struct {
	SendOTPErr  error
	LoginResp   *models.LoginResponse
	LoginErr    error
	RegisterErr error

	// when set, Login signals entered and waits for release
	entered chan struct{}
	release chan struct{}

	LoginCalls atomic.Int32

	mu              sync.Mutex
	LastSendPhone   string
	LastLoginPhone  string
	LastLoginOTP    string
	LastRegisterReq models.RegisterRequest
}

func (f *fakeClient) SendOTP(_ context.Context, phone string) (models.Envelope, error) {
	f.mu.Lock()
	f.LastSendPhone = phone
	f.mu.Unlock()
	if f.SendOTPErr != nil {
		return models.Envelope{}, f.SendOTPErr
	}
	return models.Envelope{Success: true}, nil
}

func (f *fakeClient) Login(ctx context.Context, phone, otp string) (*models.LoginResponse, error) {
	f.LoginCalls.Add(1)
	f.mu.Lock()
	f.LastLoginPhone, f.LastLoginOTP = phone, otp
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginResp, nil
}

func (f *fakeClient) RegisterPropertyOwner(_ context.Context, req models.RegisterRequest) (models.Envelope, error) {
	f.mu.Lock()
	f.LastRegisterReq = req
	f.mu.Unlock()
	if f.RegisterErr != nil {
		return models.Envelope{}, f.RegisterErr
	}
	return models.Envelope{Success: true}, nil
}

type fakeStore struct {
	mu        sync.Mutex
	data      map[string]string
	readFails bool
	// failReads[key] reads of key fail before it starts answering
	failReads map[string]int
	setErr    error
	removeErr error
	removed   [][]string
}

var errRead = errors.New("database is locked")

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, failReads: map[string]int{}}
}

func (s *fakeStore) LookupItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readFails {
		return "", false, errRead
	}
	if s.failReads[key] > 0 {
		s.failReads[key]--
		return "", false, errRead
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStore) SetItems(_ context.Context, items map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	for k, v := range items {
		s.data[k] = v
	}
	return nil
}

func (s *fakeStore) RemoveItems(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, keys)
	if s.removeErr != nil {
		return s.removeErr
	}
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *fakeStore) get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}
