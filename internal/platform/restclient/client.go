package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/sendgrid/rest"

	apperrors "edura/internal/platform/errors"
	"edura/internal/platform/id"
	"edura/internal/platform/logging"
)

type Options struct {
	BaseURL    string
	AppName    string
	AppVersion string
	Timeout    time.Duration
	IDs        id.Generator
	Logger     hclog.Logger
	HTTPClient *http.Client
}

// Client issues JSON requests against the platform API.
type Client struct {
	baseURL   string
	userAgent string
	http      *rest.Client
	ids       id.Generator
	logger    hclog.Logger
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	ids := opts.IDs
	if ids == nil {
		ids = id.UUID{}
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: fmt.Sprintf("%s/%s", opts.AppName, opts.AppVersion),
		http:      &rest.Client{HTTPClient: httpClient},
		ids:       ids,
		logger:    logging.OrNull(opts.Logger).Named("rest"),
	}
}

// Call describes one request. Body, when set, is sent as JSON. Token, when
// set, is sent as a bearer credential.
type Call struct {
	Method rest.Method
	Path   string
	Token  string
	Query  map[string]string
	Body   any
}

type failureBody struct {
	Message string `json:"message"`
}

// Do sends call and decodes a 2xx JSON body into out (which may be nil).
// Every failure is an *apperrors.APIError.
func (c *Client) Do(ctx context.Context, call Call, out any) error {
	requestID := c.ids.New()
	headers := map[string]string{
		"Accept":       "application/json",
		"User-Agent":   c.userAgent,
		"X-Request-ID": requestID,
	}
	if call.Token != "" {
		headers["Authorization"] = "Bearer " + call.Token
	}
	var body []byte
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return &apperrors.APIError{Kind: apperrors.ErrTransport, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = payload
		headers["Content-Type"] = "application/json"
	}

	req := rest.Request{
		Method:      call.Method,
		BaseURL:     c.baseURL + "/" + strings.TrimLeft(call.Path, "/"),
		Headers:     headers,
		QueryParams: call.Query,
		Body:        body,
	}
	started := time.Now()
	resp, err := c.http.SendWithContext(ctx, req)
	if err != nil {
		c.logger.Warn("request failed", "method", call.Method, "path", call.Path, "request_id", requestID, "error", err)
		return &apperrors.APIError{Kind: apperrors.ErrTransport, Err: err}
	}
	c.logger.Debug("request done", "method", call.Method, "path", call.Path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		failure := failureBody{}
		_ = json.Unmarshal([]byte(resp.Body), &failure)
		return &apperrors.APIError{
			Kind:    apperrors.StatusKind(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(failure.Message),
		}
	}
	if out == nil || strings.TrimSpace(resp.Body) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(resp.Body), out); err != nil {
		return &apperrors.APIError{Kind: apperrors.ErrServer, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
