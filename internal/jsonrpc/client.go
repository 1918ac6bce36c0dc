// Package jsonrpc implements a JSON-RPC 2.0 client over HTTP with named parameters.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txsubmitter/internal/clock"
)

// Version is the protocol version sent in every envelope.
const Version = "2.0"

const (
	defaultTimeout         = 30 * time.Second
	defaultRetryBackoff    = 500 * time.Millisecond
	defaultMaxRetryBackoff = 10 * time.Second
	maxResponseBytes       = 16 << 20
)

// Config holds connection and authentication parameters for the endpoint.
type Config struct {
	URL      string
	User     string
	Password string
	// Timeout bounds every attempt of a call.
	Timeout time.Duration
	// RPS limits outgoing requests per second; zero disables limiting.
	RPS int
	// Retries is the number of extra attempts for idempotent calls after a transport error.
	Retries         int
	RetryBackoff    time.Duration
	MaxRetryBackoff time.Duration
}

// Request describes one remote call. Params are sent as a named-parameter object.
type Request struct {
	Method string
	Params any
	// Idempotent allows the client to repeat the call after a transport failure.
	Idempotent bool
}

type envelope struct {
	Method  string `json:"method"`
	Params  any    `json:"params"`
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
}

type response struct {
	JSONRPC string            `json:"jsonrpc"`
	Result  json.RawMessage   `json:"result"`
	Error   *btcjson.RPCError `json:"error"`
	ID      json.RawMessage   `json:"id"`
}

// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient      *http.Client
	url             string
	user            string
	password        string
	timeout         time.Duration
	limiter         ratelimit.Limiter
	retries         int
	retryBackoff    time.Duration
	maxRetryBackoff time.Duration
	sleep           func(context.Context, time.Duration) error
	metrics         RPCMetrics
	logger          *zap.Logger
	nextID          atomic.Uint64
}

// NewClient validates cfg and constructs a Client.
func NewClient(cfg Config, metrics RPCMetrics, logger *zap.Logger) (*Client, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}
	if metrics == nil {
		return nil, errors.New("rpc metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("rpc retries must not be negative, got %d", cfg.Retries)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	maxRetryBackoff := cfg.MaxRetryBackoff
	if maxRetryBackoff <= 0 {
		maxRetryBackoff = defaultMaxRetryBackoff
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		limiter = ratelimit.New(cfg.RPS)
	}

	return &Client{
		httpClient:      &http.Client{},
		url:             parsed.String(),
		user:            cfg.User,
		password:        cfg.Password,
		timeout:         timeout,
		limiter:         limiter,
		retries:         cfg.Retries,
		retryBackoff:    retryBackoff,
		maxRetryBackoff: maxRetryBackoff,
		sleep:           clock.SleepWithContext,
		metrics:         metrics,
		logger:          logger.With(zap.String("rpc_host", parsed.Host)),
	}, nil
}

// Call performs req and decodes the result into result, which may be nil.
// Failures are *Error values wrapping ErrTransport or ErrProtocol, or a wrapped
// *btcjson.RPCError when the endpoint answered with an error envelope.
func (c *Client) Call(ctx context.Context, req Request, result any) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(req.Method, err, started)
	}()

	for attempt := 0; ; attempt++ {
		c.limiter.Take()
		err = c.do(ctx, req, result)
		if err == nil || !c.shouldRetry(ctx, req, err, attempt) {
			return err
		}

		delay := clock.Backoff(c.retryBackoff, c.maxRetryBackoff, attempt)
		c.logger.Warn("rpc call failed, retrying",
			zap.String("method", req.Method),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return err
		}
	}
}

func (c *Client) shouldRetry(ctx context.Context, req Request, err error, attempt int) bool {
	if !req.Idempotent || attempt >= c.retries || ctx.Err() != nil {
		return false
	}
	if !errors.Is(err, ErrTransport) {
		return false
	}
	reason, _ := ReasonOf(err)
	return reason != ReasonCanceled
}

func (c *Client) do(ctx context.Context, req Request, result any) error {
	id := c.nextID.Add(1)
	params := req.Params
	if params == nil {
		params = struct{}{}
	}
	body, err := json.Marshal(envelope{
		Method:  req.Method,
		Params:  params,
		JSONRPC: Version,
		ID:      id,
	})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", req.Method, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", req.Method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.user != "" || c.password != "" {
		httpReq.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return transportError(req.Method, transportReason(ctx, err), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return transportError(req.Method, transportReason(ctx, err), fmt.Errorf("read response: %w", err))
	}
	if len(payload) > maxResponseBytes {
		return ProtocolError(req.Method, ReasonMalformed, fmt.Errorf("response exceeds %d bytes", maxResponseBytes))
	}

	var env response
	decodeErr := json.Unmarshal(payload, &env)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if decodeErr == nil && env.Error != nil {
			return fmt.Errorf("%s: %w", req.Method, env.Error)
		}
		return transportError(req.Method, ReasonHTTPStatus, fmt.Errorf("unexpected http status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return ProtocolError(req.Method, ReasonMalformed, fmt.Errorf("decode response: %w", decodeErr))
	}
	if env.Error != nil {
		return fmt.Errorf("%s: %w", req.Method, env.Error)
	}
	if err := checkID(env.ID, id); err != nil {
		return ProtocolError(req.Method, ReasonIDMismatch, err)
	}
	if result == nil {
		return nil
	}
	if len(env.Result) == 0 || bytes.Equal(bytes.TrimSpace(env.Result), []byte("null")) {
		return ProtocolError(req.Method, ReasonMissingResult, errors.New("response has no result"))
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return ProtocolError(req.Method, ReasonMalformed, fmt.Errorf("decode result: %w", err))
	}
	return nil
}

func checkID(raw json.RawMessage, want uint64) error {
	if len(raw) == 0 {
		return errors.New("response has no id")
	}
	var got uint64
	if err := json.Unmarshal(raw, &got); err != nil {
		return fmt.Errorf("response id %s: %w", raw, err)
	}
	if got != want {
		return fmt.Errorf("response id %d, want %d", got, want)
	}
	return nil
}
