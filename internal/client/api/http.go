package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/pgdesk/internal/client/models"
	"github.com/dmitrijs2005/pgdesk/internal/logging"
)

const (
	HeaderRequestID = "X-Request-ID"

	tracerName = "github.com/dmitrijs2005/pgdesk/internal/client/api"

	msgEmptySuccess   = "Success"
	msgNonJSONSuccess = "Operation completed successfully"
)

// ErrBadResponse is returned by DoInto when a successful response cannot be
// decoded into the requested type.
var ErrBadResponse = errors.New("malformed response")

type HTTPClient struct {
	baseURL string
	timeout time.Duration
	hc      *http.Client
	metrics *Metrics
	tracer  trace.Tracer
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. Its own Timeout
// should be zero; the request timeout is enforced per call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

func WithMetrics(m *Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(c *HTTPClient) { c.tracer = t }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l.With("module", "api") }
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		timeout: timeout,
		hc:      &http.Client{},
		tracer:  otel.Tracer(tracerName),
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Do sends one request to baseURL+endpoint and returns the decoded body:
// the parsed JSON value, or a models.Envelope when the body is empty or not
// JSON.
func (c *HTTPClient) Do(ctx context.Context, method, endpoint string, body any, headers map[string]string) (any, error) {
	text, err := c.exchange(ctx, method, endpoint, body, headers)
	if err != nil {
		return nil, err
	}

	if len(text) == 0 {
		return models.Envelope{Success: true, Message: msgEmptySuccess}, nil
	}

	var v any
	if err := json.Unmarshal(text, &v); err != nil {
		return models.Envelope{Success: true, Message: msgNonJSONSuccess, Data: string(text)}, nil
	}
	return v, nil
}

// DoInto is Do for callers that need a typed body. A success response that
// is empty or does not decode into out fails with ErrBadResponse.
func (c *HTTPClient) DoInto(ctx context.Context, method, endpoint string, body any, headers map[string]string, out any) error {
	text, err := c.exchange(ctx, method, endpoint, body, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(text, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

// exchange performs the round trip and returns the raw body of a 2xx
// response. Every other result is one of the package's error types.
func (c *HTTPClient) exchange(ctx context.Context, method, endpoint string, body any, headers map[string]string) (text []byte, err error) {
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("api %s %s", method, endpoint),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("pgdesk.endpoint", endpoint),
		),
	)
	defer func() {
		outcome := outcomeOf(err)
		c.metrics.observe(endpoint, method, outcome, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, endpoint, body, headers)
	if err != nil {
		return nil, &UnknownError{Err: err}
	}
	reqID := req.Header.Get(HeaderRequestID)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	text, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.log.Debug(ctx, "api request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp.StatusCode, text)
	}
	return text, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, endpoint string, body any, headers map[string]string) (*http.Request, error) {
	var rdr io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, rdr)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return req, nil
}

// transportError classifies a failed round trip. ctx is the request context
// carrying the timeout.
func (c *HTTPClient) transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{}
	}
	return &UnknownError{Err: err}
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

func newHTTPError(status int, text []byte) *HTTPError {
	e := &HTTPError{Status: status, StatusText: http.StatusText(status)}

	var eb errorBody
	if err := json.Unmarshal(text, &eb); err == nil {
		e.Message = eb.Message
		e.Code = eb.Code
		if e.Code == "" {
			e.Code = eb.Error
		}
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(text))
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("HTTP %d: %s", status, e.StatusText)
	}
	return e
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrTimeout):
		return OutcomeTimeout
	case errors.Is(err, ErrHTTP):
		return OutcomeHTTP
	default:
		return OutcomeUnknown
	}
}
