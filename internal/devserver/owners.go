package devserver

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const RoleOwner = "owner"

var (
	ErrPhoneTaken    = errors.New("phone number already registered")
	ErrOwnerNotFound = errors.New("owner not found")
)

type Owner struct {
	Name          string
	Email         string
	PhoneNumber   string
	OwnershipType string
	Role          string
	PasswordHash  []byte
}

// OwnerRegistry is an in-memory set of property owners keyed by phone.
type OwnerRegistry struct {
	mu     sync.RWMutex
	owners map[string]Owner
}

func NewOwnerRegistry() *OwnerRegistry {
	return &OwnerRegistry{owners: make(map[string]Owner)}
}

func (r *OwnerRegistry) Register(o Owner, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[o.PhoneNumber]; ok {
		return ErrPhoneTaken
	}
	if o.Role == "" {
		o.Role = RoleOwner
	}
	o.PasswordHash = hash
	r.owners[o.PhoneNumber] = o
	return nil
}

func (r *OwnerRegistry) Get(phone string) (Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.owners[phone]
	if !ok {
		return Owner{}, ErrOwnerNotFound
	}
	return o, nil
}
