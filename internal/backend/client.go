// Package backend holds one narrow facade per backend domain (accounts,
// products, cart, orders, blog). Facades only issue requests and decode the
// declared payloads; they keep no state.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/util"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type tokenKey struct{}

// WithToken returns a context whose facade calls carry the bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token attached by WithToken, if any.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client is the shared HTTP plumbing behind the facades.
type Client struct {
	service  string
	http     *resty.Client
	withAuth bool
	logger   *zap.Logger
}

// NewClient creates a client for one backend service. When withAuth is set,
// requests carry the context's bearer token.
func NewClient(service, baseURL string, timeout time.Duration, withAuth bool) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		service:  service,
		http:     rc,
		withAuth: withAuth,
		logger:   util.GetLogger(),
	}
}

type call struct {
	op          string
	method      string
	path        string
	pathParams  map[string]string
	queryParams map[string]string
	body        interface{}
}

// send performs the call and returns the raw response body on a 2xx.
func (c *Client) send(ctx context.Context, cl call) ([]byte, error) {
	ctx, span := util.StartSpan(ctx, "backend."+c.service+"."+cl.op,
		attribute.String("backend.service", c.service),
		attribute.String("http.method", cl.method))
	defer span.End()

	start := time.Now()

	req := c.http.R().SetContext(ctx)
	if c.withAuth {
		if token := TokenFrom(ctx); token != "" {
			req.SetAuthToken(token)
		}
	}
	if cl.pathParams != nil {
		req.SetPathParams(cl.pathParams)
	}
	if cl.queryParams != nil {
		req.SetQueryParams(cl.queryParams)
	}
	if cl.body != nil {
		req.SetBody(cl.body)
	}

	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		berr := &Error{
			Service: c.service,
			Op:      cl.op,
			Kind:    KindTransport,
			Message: "layanan tidak dapat dihubungi",
			Cause:   err,
		}
		c.observe(cl.op, start, berr)
		util.RecordError(span, berr)
		c.logger.Warn("Backend call failed",
			zap.String("service", c.service),
			zap.String("op", cl.op),
			zap.Error(err))
		return nil, berr
	}

	if resp.IsError() {
		berr := &Error{
			Service: c.service,
			Op:      cl.op,
			Kind:    kindForStatus(resp.StatusCode()),
			Status:  resp.StatusCode(),
			Message: errorMessage(resp.Body(), resp.StatusCode()),
		}
		c.observe(cl.op, start, berr)
		util.RecordError(span, berr)
		c.logger.Info("Backend rejected call",
			zap.String("service", c.service),
			zap.String("op", cl.op),
			zap.Int("status", resp.StatusCode()),
			zap.String("message", berr.Message))
		return nil, berr
	}

	c.observe(cl.op, start, nil)
	return resp.Body(), nil
}

// fetch performs the call and decodes the {"data": ...} envelope into out.
func (c *Client) fetch(ctx context.Context, cl call, out interface{}) error {
	body, err := c.send(ctx, cl)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return c.decodeError(cl.op, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return c.decodeError(cl.op, err)
	}
	return nil
}

// fetchRaw decodes a payload that is not wrapped in an envelope.
func (c *Client) fetchRaw(ctx context.Context, cl call, out interface{}) error {
	body, err := c.send(ctx, cl)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return c.decodeError(cl.op, err)
	}
	return nil
}

func (c *Client) decodeError(op string, err error) error {
	util.BackendErrorsTotal.WithLabelValues(c.service, string(KindServer)).Inc()
	return &Error{
		Service: c.service,
		Op:      op,
		Kind:    KindServer,
		Message: "respons layanan tidak valid",
		Cause:   fmt.Errorf("failed to decode response: %w", err),
	}
}

func (c *Client) observe(op string, start time.Time, err *Error) {
	outcome := "ok"
	if err != nil {
		outcome = string(err.Kind)
		util.BackendErrorsTotal.WithLabelValues(c.service, string(err.Kind)).Inc()
	}
	util.BackendRequestDuration.WithLabelValues(c.service, op, outcome).Observe(time.Since(start).Seconds())
}

func errorMessage(body []byte, status int) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	return http.StatusText(status)
}
