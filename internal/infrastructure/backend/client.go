package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"go.uber.org/zap"
)

const maxResponseBytes = 10 << 20

// TokenSource supplies the bearer token of the signed-in operator.
// Invalidate is called when the backend answers 401.
type TokenSource interface {
	AccessToken() string
	Invalidate()
}

type tokensKey struct{}

// WithTokens attaches the session's token source to ctx
func WithTokens(ctx context.Context, ts TokenSource) context.Context {
	return context.WithValue(ctx, tokensKey{}, ts)
}

// TokensFrom returns the token source attached to ctx, if any
func TokensFrom(ctx context.Context) TokenSource {
	ts, _ := ctx.Value(tokensKey{}).(TokenSource)
	return ts
}

// Config configures the REST client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the inventory REST API. Every response is the
// {success, message, data, errors} envelope.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	logger   *zap.Logger
}

type envelope struct {
	Success *bool                 `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

// NewClient creates a backend client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: cfg.Timeout},
		validate: validator.New(),
		logger:   logger,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one call. out, when non-nil, receives the envelope's data and is validated.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := method + " " + path

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternalError("Failed to encode request", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperror.NewInternalError("Failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	ts := TokensFrom(ctx)
	if ts != nil {
		if tok := ts.AccessToken(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn("backend unreachable", zap.String("endpoint", endpoint), zap.Error(err))
		return apperror.NewUpstreamError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperror.NewUpstreamError(err)
	}

	c.logger.Debug("backend call",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		msg := env.Message
		if msg == "" {
			msg = apperror.ErrSessionExpired.Message
		}
		if ts == nil {
			// no session yet: a failed sign-in is an ordinary rejection
			return apperror.NewRejectedError(resp.StatusCode, msg, env.Errors)
		}
		ts.Invalidate()
		return apperror.NewUnauthorizedError(msg)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperror.NewRejectedError(resp.StatusCode, env.Message, env.Errors)
	}
	if decodeErr != nil {
		return apperror.NewMalformedResponseError(endpoint, decodeErr)
	}
	if env.Success != nil && !*env.Success {
		return apperror.NewRejectedError(http.StatusBadRequest, env.Message, env.Errors)
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return apperror.NewMalformedResponseError(endpoint, errors.New("missing data"))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperror.NewMalformedResponseError(endpoint, err)
	}
	if err := c.validate.Struct(out); err != nil {
		return apperror.NewMalformedResponseError(endpoint, contractError(err))
	}
	return nil
}

// contractError shortens validator output to the first failing field
func contractError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("field %s failed %s", fe.Namespace(), fe.Tag())
	}
	return err
}

func escape(s string) string {
	return url.PathEscape(s)
}
