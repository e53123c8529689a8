package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/pgdesk/internal/logging"
)

type Server struct {
	opts    Options
	log     logging.Logger
	owners  *OwnerRegistry
	otps    *OTPStore
	limiter *RateLimiter
	tokens  *TokenManager
	engine  *gin.Engine
}

// New builds the server. When reg is non-nil, request metrics are
// registered on it and served on GET /metrics.
func New(opts Options, log logging.Logger, reg *prometheus.Registry) *Server {
	s := &Server{
		opts:    opts,
		log:     log.With("module", "devserver"),
		owners:  NewOwnerRegistry(),
		otps:    NewOTPStore(opts.OTPTTL, opts.FixedCode),
		limiter: NewRateLimiter(opts.SendLimit, opts.SendWindow),
		tokens:  NewTokenManager(opts.Secret, opts.AccessTTL),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(s.log))
	if reg != nil {
		r.Use(NewMetrics(reg).middleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	auth := r.Group(opts.Prefix + "/auth")
	auth.POST("/send-otp", s.sendOTP)
	auth.POST("/login", s.login)
	auth.POST("/property-owner/register", s.registerOwner)

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Owners exposes the registry so callers can seed accounts.
func (s *Server) Owners() *OwnerRegistry { return s.owners }

func (s *Server) Tokens() *TokenManager { return s.tokens }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "listening", "addr", addr, "prefix", s.opts.Prefix)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
