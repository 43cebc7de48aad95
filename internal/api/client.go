package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Backend defines the storefront endpoints the store depends on.
// This interface is implemented by *Client and can be replaced in tests.
type Backend interface {
	FetchProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, token string, draft ProductDraft) (Product, error)
	Login(ctx context.Context, creds Credentials) (string, error)
	Signup(ctx context.Context, data SignupData) (string, error)
	CreateTransaction(ctx context.Context, token string, req TransactionRequest) (TransactionReceipt, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// StatusError reports a non-2xx response. Message carries the server's
// human-readable explanation when the body provided one.
type StatusError struct {
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// ServerMessage extracts the server-provided message from err, if any.
func ServerMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "http://localhost:5000"
	defaultUserAgent = "vogue/0.1"
	defaultTimeout   = 10 * time.Second
	maxBodyBytes     = 4 << 20
)

// NewClient builds a Client for the given base URL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchProducts retrieves the full catalog in backend order.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/products", "", nil, &raw); err != nil {
		return nil, err
	}
	return decodeCatalog(raw)
}

// CreateProduct submits a draft and returns the stored record with its
// server-assigned identity. A response that echoes only the id is completed
// from the draft.
func (c *Client) CreateProduct(ctx context.Context, token string, draft ProductDraft) (Product, error) {
	if c == nil {
		return Product{}, fmt.Errorf("client is nil")
	}
	var payload CreateProductResponse
	if err := c.do(ctx, http.MethodPost, "/api/products/create", token, draft, &payload); err != nil {
		return Product{}, err
	}
	if strings.TrimSpace(payload.Product.ID) == "" {
		return Product{}, fmt.Errorf("create product: response carried no id")
	}
	if strings.TrimSpace(payload.Product.Name) == "" {
		return draft.WithID(payload.Product.ID), nil
	}
	return payload.Product, nil
}

// Login exchanges credentials for an opaque token. An empty token means the
// backend accepted the request but granted nothing.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", creds, &raw); err != nil {
		return "", err
	}
	return decodeToken(raw), nil
}

// Signup registers a user and returns the issued token.
func (c *Client) Signup(ctx context.Context, data SignupData) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", data, &raw); err != nil {
		return "", err
	}
	return decodeToken(raw), nil
}

// CreateTransaction records a checkout.
func (c *Client) CreateTransaction(ctx context.Context, token string, req TransactionRequest) (TransactionReceipt, error) {
	if c == nil {
		return TransactionReceipt{}, fmt.Errorf("client is nil")
	}
	var receipt TransactionReceipt
	if err := c.do(ctx, http.MethodPost, "/api/transactions", token, req, &receipt); err != nil {
		return TransactionReceipt{}, err
	}
	return receipt, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Path: rel.String(), Status: resp.StatusCode, Message: decodeMessage(data)}
	}
	if dest == nil {
		return nil
	}
	if raw, ok := dest.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeCatalog accepts either a bare array or {"products": [...]}.
func decodeCatalog(raw json.RawMessage) ([]Product, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var products []Product
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return products, nil
	}
	var wrapped struct {
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return wrapped.Products, nil
}

// decodeToken accepts a JSON string, an object with a token field, or plain text.
func decodeToken(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var token string
		if err := json.Unmarshal(trimmed, &token); err != nil {
			return ""
		}
		return strings.TrimSpace(token)
	case '{':
		var wrapped struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return ""
		}
		return strings.TrimSpace(wrapped.Token)
	case '[':
		return ""
	}
	if string(trimmed) == "null" {
		return ""
	}
	return string(trimmed)
}

func decodeMessage(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(payload.Error)
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
