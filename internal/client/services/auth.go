package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/pgdesk/internal/client/api"
	"github.com/dmitrijs2005/pgdesk/internal/client/models"
	"github.com/dmitrijs2005/pgdesk/internal/client/storage"
	"github.com/dmitrijs2005/pgdesk/internal/logging"
)

// Store is the persistence the session needs. *storage.Store satisfies it.
type Store interface {
	// LookupItem reports found=false only when the key is known to be absent.
	LookupItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItems(ctx context.Context, items map[string]string) error
	RemoveItems(ctx context.Context, keys ...string) error
}

// AuthService is the session store.
//
// Operations that talk to the backend record a user-facing message as the
// session's last error and return it as an *OpError. Identical calls that
// overlap (same operation, same arguments) share a single execution.
type AuthService interface {
	// Initialize restores a persisted session. Only the first call does
	// any work; it never fails.
	Initialize(ctx context.Context)
	SendOTP(ctx context.Context, phoneNumber string) error
	Login(ctx context.Context, phoneNumber, otp string) error
	Register(ctx context.Context, req models.RegisterRequest) error
	// Logout always succeeds; storage failures are only logged.
	Logout(ctx context.Context)
	ClearError()
	// EditNumber leaves the OTP step without logging in.
	EditNumber()
	SetPhoneInput(s string)

	Snapshot() Snapshot
	State() State
	Token() string
	// Subscribe delivers the latest snapshot after every change. Slow
	// readers only see the most recent one. cancel closes the channel.
	Subscribe() (ch <-chan Snapshot, cancel func())
}

type authService struct {
	client api.Client
	store  Store
	log    logging.Logger
	now    func() time.Time

	initOnce sync.Once
	group    singleflight.Group

	mu     sync.Mutex
	sess   session
	subs   map[int]chan Snapshot
	nextID int
}

// NewAuthService returns a session in the Initializing state with loading
// set; call Initialize to resolve it.
func NewAuthService(client api.Client, store Store, log logging.Logger) AuthService {
	return &authService{
		client: client,
		store:  store,
		log:    log.With("module", "auth"),
		now:    time.Now,
		sess:   session{state: StateInitializing, inFlight: 1},
		subs:   make(map[int]chan Snapshot),
	}
}

func (a *authService) Initialize(ctx context.Context) {
	a.initOnce.Do(func() {
		a.restore(ctx)
	})
}

func (a *authService) restore(ctx context.Context) {
	var (
		token, rawUser    string
		tokenOK, userOK   bool
		tokenErr, userErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		token, tokenOK, tokenErr = a.store.LookupItem(gctx, storage.KeyAccessToken)
		return nil
	})
	g.Go(func() error {
		rawUser, userOK, userErr = a.store.LookupItem(gctx, storage.KeyUserData)
		return nil
	})
	_ = g.Wait()

	tokenOK = tokenOK && token != ""
	var user *models.User
	if userOK {
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			a.log.Warn(ctx, "malformed stored user", "error", err)
		}
		userOK = user != nil
	}

	restored := tokenOK && userOK
	switch {
	case tokenErr != nil || userErr != nil:
		// nothing is known to be missing, so nothing is removed
		a.log.Error(ctx, "failed to read stored session", "error", errors.Join(tokenErr, userErr))
		restored = false
	case restored && a.tokenExpired(token):
		a.log.Info(ctx, "stored session expired")
		a.discard(ctx, storage.KeyAccessToken, storage.KeyUserData)
		restored = false
	case tokenOK && !userOK:
		a.log.Warn(ctx, "token stored without user, discarding")
		a.discard(ctx, storage.KeyAccessToken)
	case userOK && !tokenOK:
		a.log.Warn(ctx, "user stored without token, discarding")
		a.discard(ctx, storage.KeyUserData)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sess.state == StateInitializing {
		if restored {
			a.sess.state = StateAuthenticated
			a.sess.authToken = token
			a.sess.user = user
		} else {
			a.sess.state = StateUnauthenticated
		}
	}
	a.sess.inFlight--
	a.publishLocked()
}

// tokenExpired reports whether token is a JWT whose exp has passed. Opaque
// tokens never expire on the client.
func (a *authService) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !a.now().Before(exp.Time)
}

func (a *authService) discard(ctx context.Context, keys ...string) {
	if err := a.store.RemoveItems(ctx, keys...); err != nil {
		a.log.Warn(ctx, "failed to remove stored keys", "keys", keys, "error", err)
	}
}

func (a *authService) SendOTP(ctx context.Context, phoneNumber string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return a.fail("send otp", ErrEmptyPhoneNumber.Error(), ErrEmptyPhoneNumber)
	}
	if a.State() == StateAuthenticated {
		return a.fail("send otp", ErrAlreadyAuthenticated.Error(), ErrAlreadyAuthenticated)
	}

	return a.run(ctx, "send-otp:"+phoneNumber, func(ctx context.Context) error {
		if _, err := a.client.SendOTP(ctx, phoneNumber); err != nil {
			return a.fail("send otp", categorize(err), err)
		}

		a.mu.Lock()
		defer a.mu.Unlock()
		a.sess.pendingPhone = phoneNumber
		a.sess.otpVisible = true
		if a.sess.state != StateAuthenticated {
			a.sess.state = StateAwaitingOTP
		}
		a.publishLocked()
		a.log.Info(ctx, "otp sent", "phone", phoneNumber)
		return nil
	})
}

func (a *authService) Login(ctx context.Context, phoneNumber, otp string) error {
	if a.State() != StateAwaitingOTP {
		return a.fail("login", ErrNoPendingOTP.Error(), ErrNoPendingOTP)
	}

	return a.run(ctx, "login:"+phoneNumber+":"+otp, func(ctx context.Context) error {
		resp, err := a.client.Login(ctx, phoneNumber, otp)
		if err != nil {
			return a.fail("login", err.Error(), err)
		}

		user := resp.User()
		if err := a.persist(ctx, resp.AccessToken, user); err != nil {
			a.discard(ctx, storage.KeyAccessToken, storage.KeyUserData)
			return a.fail("login", MsgSaveSession, err)
		}

		a.mu.Lock()
		defer a.mu.Unlock()
		a.sess.state = StateAuthenticated
		a.sess.authToken = resp.AccessToken
		a.sess.user = &user
		a.sess.pendingPhone = ""
		a.sess.otpVisible = false
		a.publishLocked()
		a.log.Info(ctx, "logged in", "user", user.UserName, "role", user.Role)
		return nil
	})
}

func (a *authService) persist(ctx context.Context, token string, user models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return a.store.SetItems(ctx, map[string]string{
		storage.KeyAccessToken: token,
		storage.KeyUserData:    string(b),
	})
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	return a.run(ctx, "register:"+req.PhoneNumber+":"+req.Email, func(ctx context.Context) error {
		if _, err := a.client.RegisterPropertyOwner(ctx, req); err != nil {
			return a.fail("register", err.Error(), err)
		}
		a.log.Info(ctx, "property owner registered", "phone", req.PhoneNumber)
		return nil
	})
}

func (a *authService) Logout(ctx context.Context) {
	_ = a.run(ctx, "logout", func(ctx context.Context) error {
		a.discard(ctx, storage.KeyAccessToken, storage.KeyUserData)

		a.mu.Lock()
		defer a.mu.Unlock()
		a.sess.signOut()
		a.sess.lastError = ""
		a.publishLocked()
		return nil
	})
}

func (a *authService) ClearError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sess.lastError = ""
	a.publishLocked()
}

func (a *authService) EditNumber() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sess.state != StateAwaitingOTP {
		return
	}
	a.sess.state = StateUnauthenticated
	a.sess.otpVisible = false
	a.sess.pendingPhone = ""
	a.publishLocked()
}

func (a *authService) SetPhoneInput(s string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sess.phoneInput = s
	a.publishLocked()
}

func (a *authService) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sess.snapshot()
}

func (a *authService) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sess.state
}

func (a *authService) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sess.authToken
}

// run executes fn with the loading counter raised, coalescing concurrent
// calls that share key. The last error is cleared on entry.
//
// fn does not see the caller's cancellation; backend requests are bounded by
// the HTTP client's timeout. A caller whose ctx ends returns ctx.Err()
// without waiting for fn.
func (a *authService) run(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	ch := a.group.DoChan(key, func() (any, error) {
		a.mu.Lock()
		a.sess.inFlight++
		a.sess.lastError = ""
		a.publishLocked()
		a.mu.Unlock()

		defer func() {
			a.mu.Lock()
			a.sess.inFlight--
			a.publishLocked()
			a.mu.Unlock()
		}()

		return nil, fn(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fail records msg as the last error and returns the matching *OpError.
func (a *authService) fail(op, msg string, err error) error {
	a.mu.Lock()
	a.sess.lastError = msg
	a.publishLocked()
	a.mu.Unlock()
	return &OpError{Op: op, Message: msg, Err: err}
}
