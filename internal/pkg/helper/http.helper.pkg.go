package helper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
)

type MethodEnum string

const (
	GET  MethodEnum = "GET"
	POST MethodEnum = "POST"
	PUT  MethodEnum = "PUT"
)

func (e MethodEnum) ToString() string {
	return string(e)
}

type HTTPRequestPayload struct {
	Method MethodEnum
	URL    string
	Params map[string]string
	Body   any
}

type BasicAuth struct {
	Username string
	Password string
}

type HTTPRequestConfig struct {
	Ctx     context.Context
	Headers http.Header
	Auth    *BasicAuth
}

type HTTPAPIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// HTTPClientConfig configures outbound calls to external backends.
type HTTPClientConfig struct {
	ProxyURL       string
	RequestTimeout time.Duration
}

type HTTPClient struct {
	Client *http.Client
	Config *HTTPClientConfig
}

func NewHTTPClient(cfg *HTTPClientConfig) *HTTPClient {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			logger.Error.Printf("Invalid proxy URL: %v", err)
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.Debug.Printf("Using proxy: %s", cfg.ProxyURL)
		}
	}

	return &HTTPClient{
		Client: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		Config: cfg,
	}
}

// Request performs a JSON request. Non-2xx responses are returned, not
// treated as errors; only transport failures are.
func (h *HTTPClient) Request(payload *HTTPRequestPayload, config *HTTPRequestConfig) (*HTTPAPIResponse, error) {
	body, err := handleRequestBody(payload)
	if err != nil {
		return nil, err
	}

	req, err := h.prepareRequest(payload, body, config)
	if err != nil {
		return nil, err
	}

	return h.executeRequest(req)
}

func handleRequestBody(payload *HTTPRequestPayload) (io.Reader, error) {
	if payload.Body == nil {
		return nil, nil
	}
	switch v := payload.Body.(type) {
	case []byte:
		return bytes.NewReader(v), nil
	case string:
		return bytes.NewReader([]byte(v)), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		return bytes.NewReader(b), nil
	}
}

func (h *HTTPClient) prepareRequest(payload *HTTPRequestPayload, body io.Reader, config *HTTPRequestConfig) (*http.Request, error) {
	ctx := config.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, payload.Method.ToString(), payload.URL, body)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range config.Headers {
		req.Header[key] = append(req.Header[key], values...)
	}

	if config.Auth != nil {
		req.SetBasicAuth(config.Auth.Username, config.Auth.Password)
	}

	if len(payload.Params) > 0 {
		q := req.URL.Query()
		for key, value := range payload.Params {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req, nil
}

func (h *HTTPClient) executeRequest(req *http.Request) (*HTTPAPIResponse, error) {
	logger.Debug.Printf("Making request to: %s", req.URL.String())

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug.Printf("Request completed with status: %d", resp.StatusCode)

	return &HTTPAPIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}
